package testsupport

import (
	"context"
	"strings"
	"sync"

	"reclaim/internal/services/process"
)

// Call records one invocation seen by FakeSpawner.
type Call struct {
	Binary string
	Args   []string
}

// String renders the call as a space separated command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Binary + " " + strings.Join(c.Args, " "))
}

// FakeSpawner records invocations and delegates the result to Handler. A nil
// Handler reports success for every call.
type FakeSpawner struct {
	Handler func(binary string, args []string) (process.Result, error)

	mu    sync.Mutex
	calls []Call
}

// Run implements process.Spawner.
func (f *FakeSpawner) Run(ctx context.Context, binary string, args ...string) (process.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Binary: binary, Args: append([]string(nil), args...)})
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return process.Result{}, err
	}
	if f.Handler == nil {
		return process.Result{}, nil
	}
	return f.Handler(binary, args)
}

// Calls returns a copy of the recorded invocations.
func (f *FakeSpawner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

var _ process.Spawner = (*FakeSpawner)(nil)
