// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import "code.hybscloud.com/atomix"

var _ DuplexTimeoutStream[int] = (*QueueRef[int])(nil)

// QueueRef is a reference-counted handle to a shared Queue. All queue
// operations are available through the handle. The queue is closed when
// the last handle is closed.
type QueueRef[T any] struct {
	*Queue[T]
	refs     *atomix.Uint32
	released atomix.Uint32
}

// Share wraps q in its first reference. The caller must not close q
// directly afterwards.
func Share[T any](q *Queue[T]) *QueueRef[T] {
	refs := new(atomix.Uint32)
	refs.Add(1)
	return &QueueRef[T]{Queue: q, refs: refs}
}

// Clone returns a new handle to the same queue. It panics if r has been
// closed.
func (r *QueueRef[T]) Clone() *QueueRef[T] {
	if r.Queue == nil {
		panic("taskq: clone of closed queue handle")
	}
	r.refs.Add(1)
	return &QueueRef[T]{Queue: r.Queue, refs: r.refs}
}

// Close drops this handle's reference and detaches the handle from the
// queue, so later use of r panics even while other handles keep the queue
// alive. Only the first call on a handle has an effect; closing the last
// handle closes the queue.
func (r *QueueRef[T]) Close() {
	if r.released.Add(1) != 1 {
		return
	}
	q := r.Queue
	r.Queue = nil
	if r.refs.Add(^uint32(0)) == 0 {
		q.Close()
	}
}
