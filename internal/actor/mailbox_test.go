package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMailboxFIFOOrder(t *testing.T) {
	m := NewMailbox()
	m.Push(Message{Tag: 1, Payload: "a"})
	m.Push(Message{Tag: 2, Payload: "b"})

	first, ok := m.Receive(0)
	assert.True(t, ok)
	assert.Equal(t, "a", first.Payload)

	second, ok := m.Receive(0)
	assert.True(t, ok)
	assert.Equal(t, "b", second.Payload)
}

func TestMailboxReceiveZeroTimeoutOnEmpty(t *testing.T) {
	m := NewMailbox()
	_, ok := m.Receive(0)
	assert.False(t, ok)
}

func TestMailboxReceiveBlocksUntilPush(t *testing.T) {
	m := NewMailbox()
	go func() {
		time.Sleep(10 * time.Millisecond)
		m.Push(Message{Tag: 9, Payload: "late"})
	}()

	msg, ok := m.Receive(-1)
	assert.True(t, ok)
	assert.Equal(t, "late", msg.Payload)
}

func TestMailboxReceiveTimesOut(t *testing.T) {
	m := NewMailbox()
	_, ok := m.Receive(20 * time.Millisecond)
	assert.False(t, ok)
}

func TestReservedTagsAreDistinct(t *testing.T) {
	assert.NotEqual(t, TagExitSignal, TagJobResult)
	assert.Equal(t, TagExitSignal-1, TagJobResult)
}
