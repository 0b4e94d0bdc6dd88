package actor

import (
	"errors"
	"time"
)

// JobResult is the Ok/Err outcome Job.Await and Job.AwaitTimeout produce,
// matching the tag-0-Ok/tag-1-Err SnowResult layout of job.rs without the
// byte-level encoding that layout exists for on the FFI boundary.
type JobResult struct {
	Ok    bool
	Value any
	Err   string
}

// Async spawns a linked actor that runs fn and sends its result back
// tagged TagJobResult, grounded on job.rs's snow_job_async/job_entry.
// The returned PID identifies the job actor; Await/AwaitTimeout don't
// filter by it (same as the reference implementation, which blocks on
// any message) — a caller awaiting multiple jobs concurrently should give
// each its own receiving actor.
func (c *Context) Async(fn func() any) ProcessID {
	caller := c.self.Pid
	return c.sched.Spawn(func(ctx *Context) {
		ctx.Link(caller)
		result := runJobFn(fn)
		ctx.sched.deliverTagged(caller, jobResultMessage(result))
	}, PriorityNormal)
}

// Await blocks until a job result or exit signal arrives and returns it
// as a JobResult, decoding an exit signal into Err(reason) the way
// decode_job_message does.
func (c *Context) Await() JobResult {
	return c.AwaitTimeout(-1)
}

// AwaitTimeout is Await with a deadline; it returns Err("timeout") if
// nothing arrives in time.
func (c *Context) AwaitTimeout(timeout time.Duration) JobResult {
	msg, ok := c.Receive(timeout)
	if !ok {
		return JobResult{Err: "timeout"}
	}
	return decodeJobMessage(msg)
}

func runJobFn(fn func() any) (result jobOutcome) {
	defer func() {
		if r := recover(); r != nil {
			result = jobOutcome{err: panicMessage(r)}
		}
	}()
	return jobOutcome{value: fn()}
}

type jobOutcome struct {
	value any
	err   string
}

func jobResultMessage(o jobOutcome) Message {
	if o.err != "" {
		return Message{Tag: TagExitSignal, Payload: ExitSignal{Reason: ExitReason{Kind: ExitError, Message: o.err}}}
	}
	return Message{Tag: TagJobResult, Payload: o.value}
}

// deliverTagged pushes msg onto pid's mailbox with its tag intact; send
// would wrap it as the untagged payload of a Tag 0 message.
func (s *Scheduler) deliverTagged(pid ProcessID, msg Message) {
	if p, ok := s.GetProcess(pid); ok {
		p.Mailbox.Push(msg)
	}
}

func decodeJobMessage(msg Message) JobResult {
	switch msg.Tag {
	case TagJobResult:
		return JobResult{Ok: true, Value: msg.Payload}
	case TagExitSignal:
		sig, _ := msg.Payload.(ExitSignal)
		return JobResult{Err: exitReasonString(sig.Reason)}
	default:
		return JobResult{Err: "unexpected message"}
	}
}

func exitReasonString(r ExitReason) string {
	switch r.Kind {
	case ExitNormal:
		return "normal"
	case ExitKilled:
		return "killed"
	case ExitShutdown:
		return "shutdown"
	case ExitError, ExitCustom:
		if r.Message != "" {
			return r.Message
		}
		return "job crashed"
	default:
		return "job crashed"
	}
}

// Map spawns one job per element of items, running fn(element) in
// parallel, then receives one result per job — grounded on job.rs's
// snow_job_map, minus the byte-packed args buffer (fn and element are
// passed as ordinary Go closure arguments here). Like the reference
// implementation, results land in completion order, not input order:
// the caller blocks on len(items) generic receives rather than
// filtering by job PID.
func (c *Context) Map(items []any, fn func(any) any) []JobResult {
	caller := c.self.Pid
	pids := make([]ProcessID, len(items))
	for i, item := range items {
		item := item
		pids[i] = c.sched.Spawn(func(ctx *Context) {
			ctx.Link(caller)
			result := runJobFn(func() any { return fn(item) })
			ctx.sched.deliverTagged(caller, jobResultMessage(result))
		}, PriorityNormal)
	}

	results := make([]JobResult, len(items))
	for i := range items {
		msg, ok := c.Receive(-1)
		if !ok {
			results[i] = JobResult{Err: "job map: no message received"}
			continue
		}
		results[i] = decodeJobMessage(msg)
	}
	_ = pids // kept for symmetry with the reference job-pid bookkeeping
	return results
}

// ErrTimeout is returned in string form by AwaitTimeout's JobResult.Err;
// exposed so callers can compare against a stable sentinel instead of a
// literal.
var ErrTimeout = errors.New("timeout")
