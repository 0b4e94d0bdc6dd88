package dist

import (
	"net"
	"sync"

	"github.com/google/uuid"
)

// NodeSession is one open connection to a peer node: the raw stream plus
// a mutex so concurrent broadcasts don't interleave frames on the wire.
// Grounded on global.rs's NodeSession (stream: Arc<Mutex<TcpStream>>).
type NodeSession struct {
	Conn net.Conn
	Name string
	mu   sync.Mutex
}

func NewNodeSession(conn net.Conn, name string) *NodeSession {
	return &NodeSession{Conn: conn, Name: name}
}

func (s *NodeSession) writeFrame(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WriteFrame(s.Conn, payload)
}

// NewNodeName mints a unique identifier for this process's node, e.g.
// for a cluster member that has no configured name.
func NewNodeName(host string) string {
	return host + "@" + uuid.NewString()
}

// Node owns the set of open sessions and the local replica of the
// global registry, and exposes the broadcast operations register/
// unregister/sync trigger.
type Node struct {
	Name     string
	Registry *GlobalRegistry

	mu       sync.RWMutex
	sessions map[string]*NodeSession
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Registry: NewGlobalRegistry(),
		sessions: make(map[string]*NodeSession),
	}
}

// AddSession registers a newly connected peer and exchanges a sync
// snapshot: this node sends its current registry to the peer.
func (n *Node) AddSession(sess *NodeSession) error {
	n.mu.Lock()
	n.sessions[sess.Name] = sess
	n.mu.Unlock()
	return sess.writeFrame(EncodeSync(n.Registry.Snapshot()))
}

// RemoveSession drops a peer session on disconnect and cleans up any
// names that peer's node owned.
func (n *Node) RemoveSession(name string) []string {
	n.mu.Lock()
	delete(n.sessions, name)
	n.mu.Unlock()
	return n.Registry.CleanupNode(name)
}

// Register registers name locally and broadcasts the registration to
// every connected peer.
func (n *Node) Register(name string, pid uint64) error {
	if err := n.Registry.Register(name, pid, n.Name); err != nil {
		return err
	}
	n.broadcast(EncodeRegister(name, pid, n.Name))
	return nil
}

// Unregister removes name locally and broadcasts the removal.
func (n *Node) Unregister(name string) bool {
	if !n.Registry.Unregister(name) {
		return false
	}
	n.broadcast(EncodeUnregister(name))
	return true
}

// HandleFrame applies a decoded wire message from a peer to the local
// registry — register/unregister apply directly, sync merges
// first-writer-wins.
func (n *Node) HandleFrame(msg WireMessage) {
	switch msg.Tag {
	case TagGlobalRegister:
		_ = n.Registry.Register(msg.Name, msg.Pid, msg.Node)
	case TagGlobalUnregister:
		n.Registry.Unregister(msg.Name)
	case TagGlobalSync:
		n.Registry.MergeSnapshot(msg.Entries)
	}
}

// broadcast collects session references under the read lock, drops the
// lock, then writes to each session outside any lock — grounded on
// global.rs's broadcast_global_register/unregister pattern ("collect
// session references, then drop sessions lock before writing").
func (n *Node) broadcast(payload []byte) {
	n.mu.RLock()
	sessions := make([]*NodeSession, 0, len(n.sessions))
	for _, s := range n.sessions {
		sessions = append(sessions, s)
	}
	n.mu.RUnlock()

	for _, s := range sessions {
		_ = s.writeFrame(payload)
	}
}
