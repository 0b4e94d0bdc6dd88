package actor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOneForOneRestartsOnlyFailedChild(t *testing.T) {
	sched := NewScheduler(2, nil)
	sched.Start()
	defer sched.Shutdown()

	var starts atomic.Int64
	failOnce := atomic.Bool{}

	spec := SupervisorSpec{
		Strategy: OneForOne,
		Children: []ChildSpec{
			{
				Name:    "flaky",
				Restart: RestartPermanent,
				Start: func(ctx *Context) {
					n := starts.Add(1)
					if n == 1 && !failOnce.Load() {
						failOnce.Store(true)
						panic("first run fails")
					}
				},
			},
		},
	}

	sup := NewSupervisor(sched, spec, nil)
	sup.Start()

	assert.Eventually(t, func() bool {
		return starts.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTemporaryChildIsNotRestarted(t *testing.T) {
	sched := NewScheduler(2, nil)
	sched.Start()
	defer sched.Shutdown()

	var starts atomic.Int64
	spec := SupervisorSpec{
		Strategy: OneForOne,
		Children: []ChildSpec{
			{
				Name:    "one-shot",
				Restart: RestartTemporary,
				Start: func(ctx *Context) {
					starts.Add(1)
					panic("dies once")
				},
			},
		},
	}

	sup := NewSupervisor(sched, spec, nil)
	sup.Start()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), starts.Load())
}

func TestTransientChildRestartsOnlyOnAbnormalExit(t *testing.T) {
	sched := NewScheduler(2, nil)
	sched.Start()
	defer sched.Shutdown()

	var starts atomic.Int64
	spec := SupervisorSpec{
		Strategy: OneForOne,
		Children: []ChildSpec{
			{
				Name:    "clean-exit",
				Restart: RestartTransient,
				Start: func(ctx *Context) {
					starts.Add(1)
				},
			},
		},
	}

	sup := NewSupervisor(sched, spec, nil)
	sup.Start()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), starts.Load())
}
