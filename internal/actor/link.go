package actor

// Link makes pid and target each other's monitors: when either exits,
// the other receives an exit signal in its mailbox unless it's a Normal
// exit and the peer isn't trapping exits. Grounded on spec.md §4.8.3.
func (c *Context) Link(target ProcessID) bool {
	return c.sched.link(c.self.Pid, target)
}

// Unlink removes a previously established link in both directions.
func (c *Context) Unlink(target ProcessID) {
	c.sched.unlink(c.self.Pid, target)
}

// TrapExits toggles whether this actor also receives exit signals for
// Normal exits of linked peers. Abnormal exit signals reach the mailbox
// either way; the runtime does not terminate a non-trapping actor.
func (c *Context) TrapExits(trap bool) {
	c.self.mu.Lock()
	c.self.TrapExits = trap
	c.self.mu.Unlock()
}

func (s *Scheduler) link(a, b ProcessID) bool {
	pa, ok := s.GetProcess(a)
	if !ok {
		return false
	}
	pb, ok := s.GetProcess(b)
	if !ok {
		return false
	}
	pa.mu.Lock()
	pa.links[b] = struct{}{}
	pa.mu.Unlock()
	pb.mu.Lock()
	pb.links[a] = struct{}{}
	pb.mu.Unlock()
	return true
}

func (s *Scheduler) unlink(a, b ProcessID) {
	if pa, ok := s.GetProcess(a); ok {
		pa.mu.Lock()
		delete(pa.links, b)
		pa.mu.Unlock()
	}
	if pb, ok := s.GetProcess(b); ok {
		pb.mu.Lock()
		delete(pb.links, a)
		pb.mu.Unlock()
	}
}

// propagateExit synthesizes an exit signal for every process linked to
// proc. A Normal exit is silently ignored by peers that aren't trapping
// exits; any other reason delivers a TagExitSignal message carrying that
// reason to every peer, trapping or not. A non-trapping peer is not
// terminated: it keeps running until its own body returns.
func (s *Scheduler) propagateExit(proc *Process, reason ExitReason) {
	proc.mu.Lock()
	peers := make([]ProcessID, 0, len(proc.links))
	for pid := range proc.links {
		peers = append(peers, pid)
	}
	proc.mu.Unlock()

	for _, peerPid := range peers {
		peer, ok := s.GetProcess(peerPid)
		if !ok {
			continue
		}
		peer.mu.Lock()
		trapping := peer.TrapExits
		delete(peer.links, proc.Pid)
		peer.mu.Unlock()

		if reason.Kind == ExitNormal && !trapping {
			continue
		}

		signal := Message{
			Tag: TagExitSignal,
			Payload: ExitSignal{
				From:   proc.Pid,
				Reason: reason,
			},
		}

		if trapping {
			peer.Mailbox.Push(signal)
			continue
		}

		// Non-trapping peer: the signal is pushed the same way and the
		// peer's own body sees it at its next mailbox check; nothing
		// here stops or unwinds the peer's goroutine.
		peer.Mailbox.Push(signal)
	}
}

// ExitSignal is the payload of a TagExitSignal message.
type ExitSignal struct {
	From   ProcessID
	Reason ExitReason
}
