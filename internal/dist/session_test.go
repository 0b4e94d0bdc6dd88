package dist

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeNameIncludesHostAndUUID(t *testing.T) {
	name := NewNodeName("worker1")
	assert.Contains(t, name, "worker1@")
	assert.Greater(t, len(name), len("worker1@"))

	other := NewNodeName("worker1")
	assert.NotEqual(t, name, other)
}

func TestAddSessionSendsSyncSnapshot(t *testing.T) {
	node := NewNode("node1@host")
	require.NoError(t, node.Register("svc", 1))

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	sess := NewNodeSession(server, "node2@host")
	go func() {
		_ = node.AddSession(sess)
	}()

	payload, err := ReadFrame(client)
	require.NoError(t, err)
	msg, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, TagGlobalSync, msg.Tag)
	require.Len(t, msg.Entries, 1)
	assert.Equal(t, "svc", msg.Entries[0].Name)
}

func TestRegisterBroadcastsToSessions(t *testing.T) {
	node := NewNode("node1@host")

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	node.mu.Lock()
	node.sessions["node2@host"] = NewNodeSession(server, "node2@host")
	node.mu.Unlock()

	done := make(chan struct{})
	go func() {
		payload, err := ReadFrame(client)
		require.NoError(t, err)
		msg, err := Decode(payload)
		require.NoError(t, err)
		assert.Equal(t, TagGlobalRegister, msg.Tag)
		assert.Equal(t, "svc", msg.Name)
		close(done)
	}()

	require.NoError(t, node.Register("svc", 5))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast never reached peer session")
	}
}

func TestRemoveSessionCleansUpNodeNames(t *testing.T) {
	node := NewNode("node1@host")
	require.NoError(t, node.Registry.Register("remote_svc", 9, "node2@host"))

	removed := node.RemoveSession("node2@host")
	assert.Equal(t, []string{"remote_svc"}, removed)

	_, ok := node.Registry.Whereis("remote_svc")
	assert.False(t, ok)
}

func TestHandleFrameAppliesRegisterUnregisterSync(t *testing.T) {
	node := NewNode("node1@host")

	node.HandleFrame(WireMessage{Tag: TagGlobalRegister, Name: "peer_svc", Pid: 3, Node: "node2@host"})
	pid, ok := node.Registry.Whereis("peer_svc")
	assert.True(t, ok)
	assert.Equal(t, uint64(3), pid)

	node.HandleFrame(WireMessage{Tag: TagGlobalUnregister, Name: "peer_svc"})
	_, ok = node.Registry.Whereis("peer_svc")
	assert.False(t, ok)

	node.HandleFrame(WireMessage{Tag: TagGlobalSync, Entries: []SnapshotEntry{
		{Name: "synced", Pid: 4, Node: "node3@host"},
	}})
	pid, ok = node.Registry.Whereis("synced")
	assert.True(t, ok)
	assert.Equal(t, uint64(4), pid)
}
