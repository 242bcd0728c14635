// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

// A queue holds the function calls waiting for expansion,
// in registration order. Each call is held at most once and
// leaves the queue exactly once: by being popped for execution,
// or by being rolled back after a failed speculative evaluation.
//
// During a speculative evaluation the queue also journals how to undo
// every other registration (headings, definitions, media, links),
// so that a rollback leaves the document as if the attempt never ran.
type queue struct {
	calls  []*FunctionCall
	seq    int // sequence number of the last registered call
	locked int // nesting depth of Locked sections

	speculating int      // nesting depth of speculative evaluations
	undo        []func() // reverts registrations, oldest first
}

// enqueue appends call unless the queue is locked
// or the call was already registered.
func (q *queue) enqueue(call *FunctionCall) {
	if q.locked > 0 || call.seq != 0 || call.done {
		return
	}
	q.seq++
	call.seq = q.seq
	q.calls = append(q.calls, call)
}

// pop removes and returns the oldest call.
func (q *queue) pop() (*FunctionCall, bool) {
	if len(q.calls) == 0 {
		return nil, false
	}
	call := q.calls[0]
	q.calls[0] = nil
	q.calls = q.calls[1:]
	return call, true
}

// remove removes call, compared by identity.
func (q *queue) remove(call *FunctionCall) bool {
	for i, x := range q.calls {
		if x == call {
			q.calls = append(q.calls[:i], q.calls[i+1:]...)
			call.seq = 0
			return true
		}
	}
	return false
}

// A mark is a point to which a speculative evaluation can roll back.
type mark struct {
	seq  int
	undo int
}

// mark starts a speculative evaluation, ended by commit or rollback.
func (q *queue) mark() mark {
	q.speculating++
	return mark{seq: q.seq, undo: len(q.undo)}
}

// record saves fn, which reverts a registration just made,
// if a speculative evaluation is running.
func (q *queue) record(fn func()) {
	if q.speculating > 0 {
		q.undo = append(q.undo, fn)
	}
}

// commit ends the speculative evaluation started at m, keeping
// its registrations. An enclosing evaluation can still revert them.
func (q *queue) commit(m mark) {
	q.speculating--
	if q.speculating == 0 {
		q.undo = nil
	}
}

// rollback ends the speculative evaluation started at m,
// removing the calls registered after m and reverting
// every other registration made since.
func (q *queue) rollback(m mark) {
	keep := q.calls[:0]
	for _, call := range q.calls {
		if call.seq <= m.seq {
			keep = append(keep, call)
		} else {
			call.seq = 0
		}
	}
	for i := len(keep); i < len(q.calls); i++ {
		q.calls[i] = nil
	}
	q.calls = keep

	for i := len(q.undo) - 1; i >= m.undo; i-- {
		q.undo[i]()
		q.undo[i] = nil
	}
	q.undo = q.undo[:m.undo]
	q.speculating--
	if q.speculating == 0 {
		q.undo = nil
	}
}

// Len returns the number of calls waiting for expansion.
func (q *queue) Len() int { return len(q.calls) }

// Pending returns the calls waiting for expansion, oldest first.
func (c *Context) Pending() []*FunctionCall {
	return append([]*FunctionCall(nil), c.s.queue.calls...)
}

// Dequeue removes call from the queue of pending calls
// and reports whether it was there.
func (c *Context) Dequeue(call *FunctionCall) bool {
	return c.s.queue.remove(call)
}

// Locked runs fn with registration disabled: nodes parsed
// during fn are not registered with the context.
func (c *Context) Locked(fn func() error) error {
	c.s.queue.locked++
	defer func() { c.s.queue.locked-- }()
	return fn()
}
