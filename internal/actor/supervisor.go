package actor

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// RestartStrategy is the OTP-style supervision policy a supervisor
// restarts its children under. spec.md §7 names supervisor start/
// strategy/restart-type/shutdown-value errors but doesn't spell out the
// strategies themselves; these three are the standard ones every Erlang-
// family runtime the corpus is descended from offers, so they're
// supplemented here rather than invented from nothing.
type RestartStrategy int

const (
	// OneForOne restarts only the child that exited.
	OneForOne RestartStrategy = iota
	// OneForAll restarts every child whenever one exits.
	OneForAll
	// RestForOne restarts the exited child and every child started after it.
	RestForOne
)

// RestartType controls whether a child is restarted at all.
type RestartType int

const (
	RestartPermanent RestartType = iota // always restart
	RestartTransient                    // restart only on abnormal exit
	RestartTemporary                    // never restart
)

// ChildSpec describes one supervised child.
type ChildSpec struct {
	Name    string
	Start   Body
	Restart RestartType
}

// SupervisorSpec configures a supervisor: its strategy plus a bound on
// restart churn (maxRestarts within maxSeconds) past which the
// supervisor gives up and exits itself, propagating the failure to its
// own supervisor.
type SupervisorSpec struct {
	Strategy    RestartStrategy
	Children    []ChildSpec
	MaxRestarts int
	MaxSeconds  time.Duration
}

// Supervisor runs a supervision tree: it spawns each child, watches for
// exits via links with trapped exits, and restarts according to the
// configured strategy, capping restart bursts with a weighted semaphore
// so a child stuck in a crash loop can't spin the supervisor forever.
type Supervisor struct {
	spec  SupervisorSpec
	sched *Scheduler
	log   *zap.Logger

	mu       sync.Mutex
	children []runningChild

	restartGate *semaphore.Weighted
}

type runningChild struct {
	spec ChildSpec
	pid  ProcessID
}

// NewSupervisor builds a supervisor bound to sched. MaxRestarts defaults
// to 3 within MaxSeconds defaulting to 5s if unset, mirroring common OTP
// defaults.
func NewSupervisor(sched *Scheduler, spec SupervisorSpec, log *zap.Logger) *Supervisor {
	if spec.MaxRestarts <= 0 {
		spec.MaxRestarts = 3
	}
	if spec.MaxSeconds <= 0 {
		spec.MaxSeconds = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Supervisor{
		spec:        spec,
		sched:       sched,
		log:         log,
		restartGate: semaphore.NewWeighted(int64(spec.MaxRestarts)),
	}
}

// Start spawns the supervisor's own actor body, which in turn spawns
// and supervises every configured child. Returns the supervisor actor's
// PID.
func (sup *Supervisor) Start() ProcessID {
	return sup.sched.Spawn(func(ctx *Context) {
		ctx.TrapExits(true)
		for _, cs := range sup.spec.Children {
			sup.startChild(ctx, cs)
		}
		sup.watch(ctx)
	}, PriorityHigh)
}

func (sup *Supervisor) startChild(ctx *Context, cs ChildSpec) {
	pid := ctx.Spawn(cs.Start, PriorityNormal)
	ctx.Link(pid)
	sup.mu.Lock()
	sup.children = append(sup.children, runningChild{spec: cs, pid: pid})
	sup.mu.Unlock()
}

// watch loops receiving exit signals (trapped, since the supervisor
// calls TrapExits(true)) and applies the configured restart strategy.
func (sup *Supervisor) watch(ctx *Context) {
	for {
		msg, ok := ctx.Receive(-1)
		if !ok {
			return
		}
		sig, ok := msg.Payload.(ExitSignal)
		if msg.Tag != TagExitSignal || !ok {
			continue
		}
		sup.handleExit(ctx, sig)
	}
}

func (sup *Supervisor) handleExit(ctx *Context, sig ExitSignal) {
	sup.mu.Lock()
	idx := -1
	for i, c := range sup.children {
		if c.pid == sig.From {
			idx = i
			break
		}
	}
	var cs ChildSpec
	if idx >= 0 {
		cs = sup.children[idx].spec
	}
	sup.mu.Unlock()

	if idx < 0 {
		return
	}

	if !sup.shouldRestart(cs, sig.Reason) {
		sup.removeChild(idx)
		return
	}

	if !sup.restartGate.TryAcquire(1) {
		sup.log.Warn("supervisor restart intensity exceeded, giving up",
			zap.String("child", cs.Name))
		panic("supervisor restart intensity exceeded")
	}
	go func() {
		t := time.NewTimer(sup.spec.MaxSeconds)
		<-t.C
		sup.restartGate.Release(1)
	}()

	switch sup.spec.Strategy {
	case OneForOne:
		sup.restartOne(ctx, idx)
	case OneForAll:
		sup.restartRange(ctx, 0, len(sup.children))
	case RestForOne:
		sup.restartRange(ctx, idx, len(sup.children))
	}
}

func (sup *Supervisor) shouldRestart(cs ChildSpec, reason ExitReason) bool {
	switch cs.Restart {
	case RestartTemporary:
		return false
	case RestartTransient:
		return reason.Kind != ExitNormal
	default:
		return true
	}
}

func (sup *Supervisor) removeChild(idx int) {
	sup.mu.Lock()
	defer sup.mu.Unlock()
	sup.children = append(sup.children[:idx], sup.children[idx+1:]...)
}

func (sup *Supervisor) restartOne(ctx *Context, idx int) {
	sup.mu.Lock()
	cs := sup.children[idx].spec
	sup.mu.Unlock()
	sup.startChild(ctx, cs)
	sup.removeChild(idx)
}

func (sup *Supervisor) restartRange(ctx *Context, from, to int) {
	sup.mu.Lock()
	specs := make([]ChildSpec, 0, to-from)
	for i := from; i < to && i < len(sup.children); i++ {
		specs = append(specs, sup.children[i].spec)
	}
	remaining := append([]runningChild{}, sup.children[:from]...)
	sup.children = remaining
	sup.mu.Unlock()

	for _, cs := range specs {
		sup.startChild(ctx, cs)
	}
}
