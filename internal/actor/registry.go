package actor

import "sync"

// Registry is the local name registry: a single lock guarding both the
// name→pid and pid→names indexes so they never drift apart, grounded on
// spec.md §4.8.4's "Local" registry contract (the global, cross-node
// registry with the same first-writer-wins merge semantics lives in
// internal/dist, since it additionally has to survive node disconnects).
type Registry struct {
	mu       sync.RWMutex
	names    map[string]ProcessID
	pidNames map[ProcessID]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		names:    make(map[string]ProcessID),
		pidNames: make(map[ProcessID]map[string]struct{}),
	}
}

// Register binds name to pid. Fails if name is already taken.
func (r *Registry) Register(name string, pid ProcessID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.names[name]; taken {
		return false
	}
	r.names[name] = pid
	if r.pidNames[pid] == nil {
		r.pidNames[pid] = make(map[string]struct{})
	}
	r.pidNames[pid][name] = struct{}{}
	return true
}

// Unregister removes name, reporting whether it was registered.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	pid, ok := r.names[name]
	if !ok {
		return false
	}
	delete(r.names, name)
	delete(r.pidNames[pid], name)
	return true
}

// Whereis resolves name to a pid, lock-free from the caller's
// perspective beyond the read lock itself (spec.md §4.8.4).
func (r *Registry) Whereis(name string) (ProcessID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pid, ok := r.names[name]
	return pid, ok
}

// cleanupProcess removes every name owned by pid, called on process exit.
func (r *Registry) cleanupProcess(pid ProcessID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name := range r.pidNames[pid] {
		delete(r.names, name)
	}
	delete(r.pidNames, pid)
}

// Register and Whereis exposed on Context for convenience inside actor
// bodies.
func (c *Context) Register(name string) bool {
	return c.sched.registry.Register(name, c.self.Pid)
}

func (c *Context) Whereis(name string) (ProcessID, bool) {
	return c.sched.registry.Whereis(name)
}
