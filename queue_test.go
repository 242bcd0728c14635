// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quarkdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueRollback(t *testing.T) {
	var q queue
	var log []string
	q.record(func() { t.Fatal("recorded outside speculation") })
	assert.Empty(t, q.undo)

	first := &FunctionCall{Name: "first"}
	q.enqueue(first)
	outer := q.mark()
	q.enqueue(&FunctionCall{Name: "second"})
	q.record(func() { log = append(log, "outer") })

	inner := q.mark()
	q.record(func() { log = append(log, "inner") })
	q.commit(inner)
	assert.Len(t, q.undo, 2, "committed inner registrations stay revertible")

	q.rollback(outer)
	assert.Equal(t, []string{"inner", "outer"}, log)
	assert.Equal(t, []*FunctionCall{first}, q.calls)
	assert.Equal(t, 0, q.speculating)
	assert.Empty(t, q.undo)
}

func TestQueueCommit(t *testing.T) {
	var q queue
	m := q.mark()
	q.record(func() { t.Fatal("committed registration reverted") })
	q.commit(m)
	assert.Empty(t, q.undo)
	assert.Equal(t, 0, q.speculating)
}
