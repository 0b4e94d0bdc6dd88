package actor

import "time"

// Send delivers payload, as a Tag 0 message, to target's mailbox under
// the mailbox's own lock. It never blocks the sender.
func (c *Context) Send(target ProcessID, payload any) bool {
	return c.sched.send(target, payload)
}

func (s *Scheduler) send(target ProcessID, payload any) bool {
	proc, ok := s.GetProcess(target)
	if !ok {
		return false
	}
	proc.Mailbox.Push(Message{Tag: 0, Payload: payload})
	return true
}

// Receive blocks this actor for up to timeout waiting for the next
// message. timeout < 0 blocks indefinitely, 0 polls without blocking.
func (c *Context) Receive(timeout time.Duration) (Message, bool) {
	return c.self.Mailbox.Receive(timeout)
}
