// Package dist implements cross-node distribution: a fully-replicated
// global name registry and the length-prefixed wire protocol nodes use
// to broadcast registrations to each other. Grounded verbatim on
// original_source/crates/snow-rt/src/dist/global.rs — the three maps
// under one lock, the register/whereis/unregister/cleanup/snapshot/merge
// surface, and first-writer-wins merge semantics all carry over
// unchanged; only the FxHashMap→map and RwLock→sync.RWMutex substitutions
// are Go-idiom swaps.
package dist

import "sync"

// Registration is one globally known name: which process owns it and
// which node that process lives on.
type Registration struct {
	Pid  uint64
	Node string
}

// GlobalRegistry is the cluster-wide name table every node holds a full
// replica of. Lookups never touch the network; only register/unregister
// broadcast.
type GlobalRegistry struct {
	mu        sync.RWMutex
	names     map[string]Registration
	pidNames  map[uint64][]string
	nodeNames map[string][]string
}

func NewGlobalRegistry() *GlobalRegistry {
	return &GlobalRegistry{
		names:     make(map[string]Registration),
		pidNames:  make(map[uint64][]string),
		nodeNames: make(map[string][]string),
	}
}

// RegisterError reports a name already claimed by another process.
type RegisterError struct {
	Name        string
	ExistingPid uint64
}

func (e *RegisterError) Error() string {
	return "name already globally registered: " + e.Name
}

// Register claims name for pid on node. Fails if already taken.
func (r *GlobalRegistry) Register(name string, pid uint64, node string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.names[name]; ok {
		return &RegisterError{Name: name, ExistingPid: existing.Pid}
	}

	r.names[name] = Registration{Pid: pid, Node: node}
	r.pidNames[pid] = append(r.pidNames[pid], name)
	r.nodeNames[node] = append(r.nodeNames[node], name)
	return nil
}

// Whereis resolves name, always locally.
func (r *GlobalRegistry) Whereis(name string) (uint64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.names[name]
	return reg.Pid, ok
}

// Unregister removes name from all three indexes.
func (r *GlobalRegistry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.names[name]
	if !ok {
		return false
	}
	delete(r.names, name)
	r.pidNames[reg.Pid] = removeString(r.pidNames[reg.Pid], name)
	if len(r.pidNames[reg.Pid]) == 0 {
		delete(r.pidNames, reg.Pid)
	}
	r.nodeNames[reg.Node] = removeString(r.nodeNames[reg.Node], name)
	if len(r.nodeNames[reg.Node]) == 0 {
		delete(r.nodeNames, reg.Node)
	}
	return true
}

// CleanupNode removes every name owned by node, returning what was
// removed so the caller can decide whether to broadcast unregisters.
func (r *GlobalRegistry) CleanupNode(node string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := r.nodeNames[node]
	delete(r.nodeNames, node)

	for _, name := range names {
		if reg, ok := r.names[name]; ok {
			delete(r.names, name)
			r.pidNames[reg.Pid] = removeString(r.pidNames[reg.Pid], name)
			if len(r.pidNames[reg.Pid]) == 0 {
				delete(r.pidNames, reg.Pid)
			}
		}
	}
	return names
}

// CleanupProcess removes every name owned by pid.
func (r *GlobalRegistry) CleanupProcess(pid uint64) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := r.pidNames[pid]
	delete(r.pidNames, pid)

	for _, name := range names {
		if reg, ok := r.names[name]; ok {
			delete(r.names, name)
			r.nodeNames[reg.Node] = removeString(r.nodeNames[reg.Node], name)
			if len(r.nodeNames[reg.Node]) == 0 {
				delete(r.nodeNames, reg.Node)
			}
		}
	}
	return names
}

// SnapshotEntry is one row of a full-registry snapshot exchanged on node
// connect.
type SnapshotEntry struct {
	Name string
	Pid  uint64
	Node string
}

// Snapshot returns every current registration.
func (r *GlobalRegistry) Snapshot() []SnapshotEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SnapshotEntry, 0, len(r.names))
	for name, reg := range r.names {
		out = append(out, SnapshotEntry{Name: name, Pid: reg.Pid, Node: reg.Node})
	}
	return out
}

// MergeSnapshot bulk-inserts a remote snapshot, skipping any name already
// registered locally — first-writer-wins, making the merge idempotent.
func (r *GlobalRegistry) MergeSnapshot(entries []SnapshotEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		if _, exists := r.names[e.Name]; exists {
			continue
		}
		r.names[e.Name] = Registration{Pid: e.Pid, Node: e.Node}
		r.pidNames[e.Pid] = append(r.pidNames[e.Pid], e.Name)
		r.nodeNames[e.Node] = append(r.nodeNames[e.Node], e.Name)
	}
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
