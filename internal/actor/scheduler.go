package actor

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Body is an actor's entry point. It receives a Context scoped to this
// process so it can self-identify, spawn children (with work-stealing
// locality to the worker that's currently running it), send, and link —
// without any package-level globals for "the current process."
type Body func(ctx *Context)

// Context is the capability handle an actor body runs with. Spawning
// through a Context (rather than the package-level Scheduler.Spawn)
// lets the scheduler route the new spawn request onto the calling
// worker's own local deque for cache locality, matching
// scheduler.rs's "new work distributed, not running work" design —
// work spawned by a running actor prefers the worker that's already hot.
type Context struct {
	sched     *Scheduler
	self      *Process
	workerIdx int
}

func (c *Context) Self() ProcessID { return c.self.Pid }
func (c *Context) Process() *Process { return c.self }

// Spawn starts a new actor, preferring the current worker's local deque
// for Normal-priority work.
func (c *Context) Spawn(body Body, priority Priority) ProcessID {
	return c.sched.spawnAt(body, priority, c.workerIdx)
}

// Scheduler is the M:N work-stealing dispatcher: it owns a pool of
// worker goroutines that pull spawn requests from a shared injector, a
// high-priority channel, and each other's local deques, then launch the
// actor body as its own goroutine. Go's own runtime then does the actual
// multiplexing of that goroutine onto OS threads — the scheduler's job
// stops at "which request runs next and with how much locality,"
// mirroring scheduler.rs's division of labor between SpawnRequest
// distribution and coroutine execution.
type Scheduler struct {
	numWorkers   int
	injector     *deque
	highPriority chan SpawnRequestBody
	workers      []*deque

	mu        sync.RWMutex
	processes map[ProcessID]*Process
	pending   map[ProcessID]SpawnRequestBody

	registry *Registry

	shutdown    atomic.Bool
	activeCount atomic.Int64
	wg          sync.WaitGroup

	log *zap.Logger
}

// SpawnRequestBody pairs a SpawnRequest with the process it was created
// for and the body closure to run.
type SpawnRequestBody struct {
	SpawnRequest
	Body Body
	Proc *Process
}

// NewScheduler builds a scheduler with numWorkers worker goroutines (0
// defaults to runtime.NumCPU(), matching available_parallelism()).
func NewScheduler(numWorkers int, log *zap.Logger) *Scheduler {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{
		numWorkers:   numWorkers,
		injector:     newDeque(),
		highPriority: make(chan SpawnRequestBody, 4096),
		workers:      make([]*deque, numWorkers),
		processes:    make(map[ProcessID]*Process),
		registry:     NewRegistry(),
		log:          log,
	}
	for i := range s.workers {
		s.workers[i] = newDeque()
	}
	return s
}

// Registry returns the scheduler's local name registry.
func (s *Scheduler) Registry() *Registry { return s.registry }

// Start launches the worker pool.
func (s *Scheduler) Start() {
	for i := 0; i < s.numWorkers; i++ {
		s.wg.Add(1)
		go s.workerLoop(i)
	}
	s.log.Info("scheduler started", zap.Int("workers", s.numWorkers))
}

// Shutdown signals the worker pool to stop once all active processes
// have exited, and blocks until it does.
func (s *Scheduler) Shutdown() {
	s.shutdown.Store(true)
	s.wg.Wait()
	s.log.Info("scheduler stopped")
}

// Spawn starts a new top-level actor with no worker affinity; the
// request lands in the shared injector (Normal/Low) or the high-priority
// channel.
func (s *Scheduler) Spawn(body Body, priority Priority) ProcessID {
	return s.spawnAt(body, priority, -1)
}

func (s *Scheduler) spawnAt(body Body, priority Priority, affinityWorker int) ProcessID {
	pid := newProcessID()
	proc := newProcess(pid, priority)

	s.mu.Lock()
	s.processes[pid] = proc
	s.mu.Unlock()

	s.activeCount.Add(1)

	req := SpawnRequestBody{
		SpawnRequest: SpawnRequest{Pid: pid, Priority: priority},
		Body:         body,
		Proc:         proc,
	}

	switch priority {
	case PriorityHigh:
		s.highPriority <- req
	default:
		if affinityWorker >= 0 && affinityWorker < len(s.workers) {
			s.workers[affinityWorker].pushBottom(req.SpawnRequest)
			s.attachBody(req)
		} else {
			s.injector.pushBottom(req.SpawnRequest)
			s.attachBody(req)
		}
	}
	return pid
}

// bodyRegistry maps a SpawnRequest's identity back to its Body/Proc,
// since the deque only carries the Send-safe SpawnRequest shape (the
// reference implementation's fn_ptr/args_ptr split exists for the same
// reason: the payload placed in the shared deques must be plain
// data, not a closure capturing a mutex-guarded Process).
func (s *Scheduler) attachBody(req SpawnRequestBody) {
	s.mu.Lock()
	if s.pending == nil {
		s.pending = make(map[ProcessID]SpawnRequestBody)
	}
	s.pending[req.Pid] = req
	s.mu.Unlock()
}

func (s *Scheduler) takeBody(pid ProcessID) (SpawnRequestBody, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.pending[pid]
	if ok {
		delete(s.pending, pid)
	}
	return req, ok
}

// GetProcess looks up a process by PID.
func (s *Scheduler) GetProcess(pid ProcessID) (*Process, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.processes[pid]
	return p, ok
}

func (s *Scheduler) removeProcess(pid ProcessID) {
	s.mu.Lock()
	delete(s.processes, pid)
	s.mu.Unlock()
}

// ActiveCount reports the number of non-exited processes.
func (s *Scheduler) ActiveCount() int64 { return s.activeCount.Load() }

func (s *Scheduler) workerLoop(idx int) {
	defer s.wg.Done()

	spinCount := 0
	for {
		req, ok := s.tryGetRequest(idx)
		if ok {
			s.dispatch(idx, req)
			spinCount = 0
			continue
		}

		if s.shutdown.Load() && s.activeCount.Load() == 0 {
			return
		}

		spinCount++
		switch {
		case spinCount > 1000:
			time.Sleep(time.Millisecond)
		case spinCount > 100:
			time.Sleep(100 * time.Microsecond)
		default:
			runtime.Gosched()
		}
	}
}

// tryGetRequest follows scheduler.rs's priority order: high-priority
// channel, local LIFO pop, global injector, then round-robin stealing
// from other workers.
func (s *Scheduler) tryGetRequest(idx int) (SpawnRequestBody, bool) {
	select {
	case req := <-s.highPriority:
		return req, true
	default:
	}

	if r, ok := s.workers[idx].popBottom(); ok {
		if req, ok := s.takeBody(r.Pid); ok {
			return req, true
		}
	}

	if r, ok := s.injector.steal(); ok {
		if req, ok := s.takeBody(r.Pid); ok {
			return req, true
		}
	}

	for i := 1; i < len(s.workers); i++ {
		j := (idx + i) % len(s.workers)
		if r, ok := s.workers[j].steal(); ok {
			if req, ok := s.takeBody(r.Pid); ok {
				return req, true
			}
		}
	}

	return SpawnRequestBody{}, false
}

func (s *Scheduler) dispatch(workerIdx int, req SpawnRequestBody) {
	proc := req.Proc
	proc.setState(StateRunning)
	ctx := &Context{sched: s, self: proc, workerIdx: workerIdx}

	go func() {
		defer s.finishProcess(proc)
		req.Body(ctx)
	}()
}

// finishProcess runs once a body returns (normally or via recovered
// panic), synthesizing exit signals for every linked peer.
func (s *Scheduler) finishProcess(proc *Process) {
	reason := NormalExit
	if r := recover(); r != nil {
		reason = ExitReason{Kind: ExitError, Message: panicMessage(r)}
		s.log.Warn("actor panicked", zap.Uint64("pid", uint64(proc.Pid)), zap.String("reason", reason.Message))
	}
	proc.mu.Lock()
	proc.state = StateExited
	proc.ExitReason = &reason
	proc.mu.Unlock()

	proc.Mailbox.Close()
	s.propagateExit(proc, reason)
	s.registry.cleanupProcess(proc.Pid)
	s.removeProcess(proc.Pid)
	s.activeCount.Add(-1)
}

func panicMessage(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	if s, ok := r.(string); ok {
		return s
	}
	return "panic"
}
