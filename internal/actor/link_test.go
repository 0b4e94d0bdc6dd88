package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLinkPropagatesAbnormalExit(t *testing.T) {
	sched := NewScheduler(2, nil)
	sched.Start()
	defer sched.Shutdown()

	signalCh := make(chan ExitSignal, 1)
	watcher := sched.Spawn(func(ctx *Context) {
		ctx.TrapExits(true)
		msg, ok := ctx.Receive(2 * time.Second)
		if ok {
			if sig, ok := msg.Payload.(ExitSignal); ok {
				signalCh <- sig
			}
		}
	}, PriorityNormal)

	time.Sleep(10 * time.Millisecond)
	sched.Spawn(func(ctx *Context) {
		ctx.Link(watcher)
		panic("boom")
	}, PriorityNormal)

	select {
	case sig := <-signalCh:
		assert.Equal(t, ExitError, sig.Reason.Kind)
		assert.Equal(t, "boom", sig.Reason.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never received exit signal")
	}
}

func TestLinkIgnoresNormalExitWithoutTrap(t *testing.T) {
	sched := NewScheduler(2, nil)
	sched.Start()
	defer sched.Shutdown()

	watcher := sched.Spawn(func(ctx *Context) {
		time.Sleep(50 * time.Millisecond)
	}, PriorityNormal)

	sched.Spawn(func(ctx *Context) {
		ctx.Link(watcher)
	}, PriorityNormal)

	time.Sleep(100 * time.Millisecond)

	proc, ok := sched.GetProcess(watcher)
	if ok {
		assert.Equal(t, 0, proc.Mailbox.Len())
	}
}
