package deps

import (
	"context"
	"errors"
	"strings"
)

// Tool describes an external executable a job relies on.
type Tool struct {
	Name        string
	Description string
	// Candidates are command names tried in priority order, e.g. "7zz", "7z".
	Candidates []string
	// ProbeArgs is passed to each candidate; a zero exit marks it usable.
	ProbeArgs []string
	Optional  bool
}

// Binding is a resolved executable. It is resolved once per run and reused for
// every item.
type Binding struct {
	Name    string
	Command string
	Source  string
}

// Status reports the availability of a tool.
type Status struct {
	Name        string
	Command     string
	Description string
	Source      string
	Optional    bool
	Available   bool
	Detail      string
}

// Check resolves every tool and reports availability without failing on the
// first missing one.
func (l *Locator) Check(ctx context.Context, tools []Tool, extraRoots []string) []Status {
	results := make([]Status, 0, len(tools))
	for _, tool := range tools {
		status := Status{
			Name:        tool.Name,
			Description: strings.TrimSpace(tool.Description),
			Optional:    tool.Optional,
		}
		binding, err := l.Resolve(ctx, tool, extraRoots)
		if err != nil {
			status.Command = strings.Join(cleanCandidates(tool.Candidates), ", ")
			var nf *NotFoundError
			if errors.As(err, &nf) {
				status.Detail = nf.Summary()
			} else {
				status.Detail = err.Error()
			}
			results = append(results, status)
			continue
		}
		status.Command = binding.Command
		status.Source = binding.Source
		status.Available = true
		results = append(results, status)
	}
	return results
}
