// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"encoding/binary"
	"fmt"
	"runtime"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// ticketSize is the kernel element size of every queue: a 4-byte slot index
// followed by a 4-byte slot generation.
const ticketSize = 8

// Releaser is implemented by values that own resources which must be
// released when a queue or cell discards them.
type Releaser interface {
	Release()
}

func release[T any](v T) {
	if r, ok := any(v).(Releaser); ok {
		r.Release()
	}
}

// slot is one resident value. A slot is immutable once published.
type slot[T any] struct {
	gen uint32
	val T
}

// Queue is a bounded blocking FIFO of T built on an untyped Kernel queue.
//
// Values are kept in a typed slot arena owned by the Queue. Only slot tickets
// cross the kernel, so the kernel stays untyped while every pointer held by T
// remains visible to the garbage collector. Free slot indices circulate
// through a lock-free lfq queue; a send first claims a free slot (bounded by
// its timeout) and then appends the ticket, which cannot block because a
// claimed slot guarantees kernel room.
//
// All methods are safe for concurrent use by any number of goroutines.
type Queue[T any] struct {
	kernel    Kernel
	handle    Handle
	maxLength uint32
	slots     []atomix.Pointer[slot[T]]
	free      lfq.QueueIndirect
	gen       atomix.Uint32
	closed    atomix.Uint32
	serial    Serial
	cleanup   runtime.Cleanup
}

// NewQueue creates a queue holding up to maxLength values on the default
// kernel. It panics if the kernel cannot create the queue.
func NewQueue[T any](maxLength uint32) *Queue[T] {
	return NewQueueOn[T](defaultKernel, maxLength)
}

// NewQueueOn creates a queue holding up to maxLength values on k.
// Kernel allocation failure, including a zero maxLength, is fatal: it panics
// rather than return a queue with no backing storage.
func NewQueueOn[T any](k Kernel, maxLength uint32) *Queue[T] {
	h, err := k.Create(maxLength, ticketSize)
	if err != nil {
		panic(fmt.Sprintf("taskq: create queue of %d: %v", maxLength, err))
	}
	q := &Queue[T]{
		kernel:    k,
		handle:    h,
		maxLength: maxLength,
		slots:     make([]atomix.Pointer[slot[T]], maxLength),
		free:      lfq.New(max(int(maxLength), 2)).Compact().BuildIndirect(),
		serial:    nextSerial(),
	}
	for i := range maxLength {
		if err := q.free.Enqueue(uintptr(i)); err != nil {
			panic("taskq: slot free list too small")
		}
	}
	q.cleanup = runtime.AddCleanup(q, reclaim[T], orphan[T]{kernel: k, handle: h, slots: q.slots})
	return q
}

// orphan is what the cleanup of an unreachable, unclosed queue needs.
// It must not refer to the Queue itself.
type orphan[T any] struct {
	kernel Kernel
	handle Handle
	slots  []atomix.Pointer[slot[T]]
}

func reclaim[T any](o orphan[T]) {
	for i := range o.slots {
		if s := o.slots[i].SwapAcqRel(nil); s != nil {
			release(s.val)
		}
	}
	o.kernel.Destroy(o.handle)
}

// Serial returns the process-unique serial assigned at construction.
func (q *Queue[T]) Serial() Serial {
	return q.serial
}

// Prepend places v at the front of the queue, ahead of queued values,
// waiting up to timeout for room. On iox.ErrWouldBlock the queue keeps no
// reference to v.
func (q *Queue[T]) Prepend(v T, timeout Timeout) error {
	return q.send(v, timeout, true)
}

// Append places v at the back of the queue, waiting up to timeout for room.
// On iox.ErrWouldBlock the queue keeps no reference to v.
func (q *Queue[T]) Append(v T, timeout Timeout) error {
	return q.send(v, timeout, false)
}

func (q *Queue[T]) send(v T, timeout Timeout, front bool) error {
	dl := timeout.deadline()
	idx, ok := q.acquire(timeout)
	if !ok {
		return iox.ErrWouldBlock
	}
	s := &slot[T]{gen: q.gen.Add(1), val: v}
	q.slots[idx].StoreRelease(s)

	var t [ticketSize]byte
	binary.LittleEndian.PutUint32(t[0:4], idx)
	binary.LittleEndian.PutUint32(t[4:8], s.gen)
	var sent bool
	if front {
		sent = q.kernel.Prepend(q.handle, t[:], dl.remaining())
	} else {
		sent = q.kernel.Append(q.handle, t[:], dl.remaining())
	}
	if !sent {
		q.slots[idx].StoreRelease(nil)
		q.release(idx)
		return iox.ErrWouldBlock
	}
	return nil
}

// acquire claims a free slot index, waiting up to timeout.
func (q *Queue[T]) acquire(timeout Timeout) (uint32, bool) {
	var idx uintptr
	ok := await(timeout, func() bool {
		i, err := q.free.Dequeue()
		if err != nil {
			return false
		}
		idx = i
		return true
	})
	return uint32(idx), ok
}

// release returns idx to the free list. The list never holds more than
// maxLength indices, so a refusal is transient and retried.
func (q *Queue[T]) release(idx uint32) {
	var bo iox.Backoff
	for q.free.Enqueue(uintptr(idx)) != nil {
		bo.Wait()
	}
}

// QueueReceive removes and returns the front value, waiting up to timeout
// for one to arrive. It returns iox.ErrWouldBlock with the queue unchanged
// when nothing arrived in time.
func (q *Queue[T]) QueueReceive(timeout Timeout) (T, error) {
	var t [ticketSize]byte
	if !q.kernel.Receive(q.handle, t[:], timeout) {
		var zero T
		return zero, iox.ErrWouldBlock
	}
	idx := binary.LittleEndian.Uint32(t[0:4])
	gen := binary.LittleEndian.Uint32(t[4:8])
	s := q.slots[idx].SwapAcqRel(nil)
	if s == nil || s.gen != gen {
		panic("taskq: kernel returned a stale slot ticket")
	}
	q.release(idx)
	return s.val, nil
}

// Peek returns a copy of the front value without removing it, waiting up to
// timeout for one to arrive. The copy is shallow: reference fields are shared
// with the queued value.
func (q *Queue[T]) Peek(timeout Timeout) (T, error) {
	dl := timeout.deadline()
	var t [ticketSize]byte
	var bo iox.Backoff
	for {
		if !q.kernel.Peek(q.handle, t[:], dl.remaining()) {
			break
		}
		idx := binary.LittleEndian.Uint32(t[0:4])
		gen := binary.LittleEndian.Uint32(t[4:8])
		if s := q.slots[idx].LoadAcquire(); s != nil && s.gen == gen {
			return s.val, nil
		}
		// Consumed between the kernel peek and the slot read.
		if dl.expired() {
			break
		}
		bo.Wait()
	}
	var zero T
	return zero, iox.ErrWouldBlock
}

// Len returns the number of queued values. The count may be stale as soon
// as it is returned.
func (q *Queue[T]) Len() uint32 {
	return q.kernel.CountWaiting(q.handle)
}

// MaxLen returns the capacity fixed at construction.
func (q *Queue[T]) MaxLen() uint32 {
	return q.maxLength
}

// Clear drains the queue, releasing each drained value that implements
// Releaser exactly once.
func (q *Queue[T]) Clear() {
	for {
		v, err := q.QueueReceive(NoWait)
		if err != nil {
			return
		}
		release(v)
	}
}

// Close drains the queue and releases its kernel resources. Only the first
// call has an effect. The queue must not be used after Close.
func (q *Queue[T]) Close() {
	if q.closed.Add(1) != 1 {
		return
	}
	q.cleanup.Stop()
	q.Clear()
	q.kernel.Destroy(q.handle)
}
