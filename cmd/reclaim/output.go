package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reclaim/internal/batch"
	"reclaim/internal/logging"
	"reclaim/internal/transform"
)

var titleCaser = cases.Title(language.Und)

// outcomePrinter writes one line per settled item and the final summary.
type outcomePrinter struct {
	out   io.Writer
	color bool
}

func newOutcomePrinter(out io.Writer) *outcomePrinter {
	return &outcomePrinter{out: out, color: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func statusLabel(status transform.Status) string {
	return titleCaser.String(status.String())
}

func reasonLabel(reason transform.Reason) string {
	if reason == transform.ReasonNone {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(string(reason), "_", " "))
}

func (p *outcomePrinter) paint(status transform.Status, label string) string {
	if !p.color {
		return label
	}
	switch status {
	case transform.StatusSucceeded:
		return text.FgGreen.Sprint(label)
	case transform.StatusFailed:
		return text.FgRed.Sprint(label)
	default:
		return text.FgYellow.Sprint(label)
	}
}

// Observe prints res as it is settled.
func (p *outcomePrinter) Observe(res batch.Result) {
	label := p.paint(res.Outcome.Status, fmt.Sprintf("%-9s", statusLabel(res.Outcome.Status)))
	line := fmt.Sprintf("%s %s", label, res.Entry.RelPath)
	if res.Outcome.Artifact != "" {
		line += " -> " + res.Outcome.Artifact
	}
	if reason := reasonLabel(res.Outcome.Reason); reason != "" {
		line += fmt.Sprintf(" (%s)", reason)
	}
	if res.Outcome.Err != nil {
		line += ": " + res.Outcome.Err.Error()
	}
	if res.RemoveErr != nil {
		line += fmt.Sprintf(" [source kept: %v]", res.RemoveErr)
	}
	fmt.Fprintln(p.out, line)
}

// Summary renders the aggregate table for report.
func (p *outcomePrinter) Summary(report batch.Report) {
	s := report.Summary()
	rows := [][]string{
		{"Items", fmt.Sprintf("%d", s.Total)},
		{statusLabel(transform.StatusSucceeded), fmt.Sprintf("%d", s.Succeeded)},
		{statusLabel(transform.StatusSkipped), fmt.Sprintf("%d", s.Skipped)},
		{statusLabel(transform.StatusFailed), fmt.Sprintf("%d", s.Failed)},
		{"Sources removed", fmt.Sprintf("%d", s.Removed)},
	}
	if s.RemoveErrors > 0 {
		rows = append(rows, []string{"Remove errors", fmt.Sprintf("%d", s.RemoveErrors)})
	}
	if s.Succeeded > 0 {
		rows = append(rows,
			[]string{"Source size", logging.FormatBytes(s.SourceBytes)},
			[]string{"Artifact size", logging.FormatBytes(s.ArtifactBytes)},
		)
	}
	rows = append(rows, []string{"Elapsed", report.Duration().Round(time.Millisecond).String()})

	title := titleCaser.String(report.Job)
	if report.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, tableSpec{
		Title:   title,
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight},
		Color:   p.color,
	}.render())
}
