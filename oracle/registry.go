package oracle

import (
	"context"
	"os/exec"
	"sync"
	"sync/atomic"
)

// Handle is an opaque identifier for one in-flight oracle child process.
type Handle uint64

// Registry tracks in-flight oracle children so a single cancellation
// signal (found / unreliable / caller-cancelled) can reach every live
// child, per spec.md §9 ("Early termination across blocking oracle
// calls"). Each Run call registers its *exec.Cmd for the duration of the
// wait and unregisters it when it exits.
type Registry struct {
	mu      sync.Mutex
	next    uint64
	running map[Handle]*exec.Cmd
}

// NewRegistry creates an empty in-flight child registry.
func NewRegistry() *Registry {
	return &Registry{running: make(map[Handle]*exec.Cmd)}
}

// Register records a started command and returns the handle to unregister
// it with later.
func (r *Registry) Register(cmd *exec.Cmd) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := Handle(atomic.AddUint64(&r.next, 1))
	r.running[h] = cmd
	return h
}

// Unregister removes a handle once its command has exited.
func (r *Registry) Unregister(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.running, h)
}

// KillAll sends SIGKILL to every currently registered child. A search
// worker's oracle call is a single short-lived check, not a process that
// needs a chance to clean up, so KillAll does not attempt a graceful
// SIGTERM first. It is idempotent and safe to call multiple times.
func (r *Registry) KillAll() {
	r.mu.Lock()
	cmds := make([]*exec.Cmd, 0, len(r.running))
	for _, c := range r.running {
		cmds = append(cmds, c)
	}
	r.mu.Unlock()

	for _, c := range cmds {
		if c.Process == nil {
			continue
		}
		_ = c.Process.Kill()
	}
}

// Count returns the number of currently in-flight children, mostly useful
// for tests and diagnostics.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.running)
}

// WatchContext spawns a goroutine that calls KillAll as soon as ctx is
// done, and returns a function to stop watching once the caller no longer
// needs the registry (e.g. the search has returned).
func (r *Registry) WatchContext(ctx context.Context) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			r.KillAll()
		case <-done:
		}
	}()
	return func() { close(done) }
}
