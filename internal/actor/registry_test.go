package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRegisterAndWhereis(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.Register("alice", 1))
	pid, ok := r.Whereis("alice")
	assert.True(t, ok)
	assert.Equal(t, ProcessID(1), pid)
}

func TestRegistryDuplicateNameFails(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.Register("alice", 1))
	assert.False(t, r.Register("alice", 2))
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", 1)
	assert.True(t, r.Unregister("alice"))
	_, ok := r.Whereis("alice")
	assert.False(t, ok)
}

func TestRegistryCleanupProcessRemovesAllNames(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", 1)
	r.Register("bob", 1)
	r.cleanupProcess(1)
	_, aliceOk := r.Whereis("alice")
	_, bobOk := r.Whereis("bob")
	assert.False(t, aliceOk)
	assert.False(t, bobOk)
}
