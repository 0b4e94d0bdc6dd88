// Package ws bridges a WebSocket connection to a Snow actor: one actor
// per connection plus one reader goroutine, grounded on spec.md §4.8.7
// and the reference implementation's ws/server.rs design (one actor, one
// OS reader thread per connection — here a goroutine takes the OS
// thread's place since Go doesn't need the distinction).
package ws

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/snowlang/snow/internal/actor"
)

// Event kinds pushed into the bridged actor's mailbox, occupying the
// descending tag range below actor.TagWSEventBase per spec.md §4.8.2.
const (
	EventConnect uint64 = iota
	EventDisconnect
	EventText
	EventBinary
)

func eventTag(kind uint64) uint64 {
	return actor.TagWSEventBase - kind
}

// Event is the payload of a WebSocket bridge message.
type Event struct {
	Kind uint64
	Data []byte
}

// Bridge owns one WebSocket connection: a writer guarded by a mutex (so
// concurrent sends from the actor don't interleave frames) and a reader
// goroutine that decodes frames into mailbox pushes.
type Bridge struct {
	conn     *websocket.Conn
	writeMu  sync.Mutex
	shutdown atomic.Bool
	target   *actor.Process
}

// NewBridge starts reading conn in a background goroutine, delivering
// every frame as a Message on target's mailbox, and returns the bridge
// handle the actor uses to write back.
func NewBridge(conn *websocket.Conn, target *actor.Process) *Bridge {
	b := &Bridge{conn: conn, target: target}
	target.Mailbox.Push(actor.Message{Tag: eventTag(EventConnect)})
	go b.readLoop()
	return b
}

// readLoop blocks on frame reads, polling the shutdown flag between
// reads with a bounded deadline so Close() can unstick it without an
// OS-level connection abort.
func (b *Bridge) readLoop() {
	for {
		if b.shutdown.Load() {
			return
		}
		b.conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		kind, data, err := b.conn.ReadMessage()
		if err != nil {
			if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
				continue
			}
			b.target.Mailbox.Push(actor.Message{Tag: eventTag(EventDisconnect)})
			return
		}
		switch kind {
		case websocket.TextMessage:
			b.target.Mailbox.Push(actor.Message{Tag: eventTag(EventText), Payload: Event{Kind: EventText, Data: data}})
		case websocket.BinaryMessage:
			b.target.Mailbox.Push(actor.Message{Tag: eventTag(EventBinary), Payload: Event{Kind: EventBinary, Data: data}})
		case websocket.CloseMessage:
			b.target.Mailbox.Push(actor.Message{Tag: eventTag(EventDisconnect)})
			return
		}
	}
}

// Send writes a text frame, serializing concurrent writers.
func (b *Bridge) Send(data []byte) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	return b.conn.WriteMessage(websocket.TextMessage, data)
}

// SendBinary writes a binary frame.
func (b *Bridge) SendBinary(data []byte) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	return b.conn.WriteMessage(websocket.BinaryMessage, data)
}

// ClosePanic sends a 1011 (internal error) close frame before the caller
// unwinds — the resolution spec.md §9's open question on actor-boundary
// panics while a connection is open, in favor of a clean close instead of
// silently dropping the socket.
func (b *Bridge) ClosePanic(reason string) {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, reason)
	b.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	b.conn.Close()
}

// Close stops the reader and closes the underlying connection cleanly.
func (b *Bridge) Close() {
	b.shutdown.Store(true)
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	b.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	b.conn.Close()
}
