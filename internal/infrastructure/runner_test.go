package infrastructure

import (
	"context"
	"sync"
)

type recordedCall struct {
	name string
	args []string
}

// fakeRunner records invocations and returns canned output
type fakeRunner struct {
	mu     sync.Mutex
	calls  []recordedCall
	output []byte
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{name: name, args: append([]string(nil), args...)})
	return f.output, f.err
}

func (f *fakeRunner) lastCall() recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return recordedCall{}
	}
	return f.calls[len(f.calls)-1]
}
