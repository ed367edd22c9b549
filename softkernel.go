// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"fmt"
	"sync"
)

// SoftKernel is a software Kernel. Each queue is a byte ring guarded by
// its own mutex; blocking calls poll with iox.Backoff until their timeout.
//
// The zero value is not usable; construct with NewSoftKernel.
type SoftKernel struct {
	mu     sync.RWMutex
	queues map[Handle]*softQueue
	next   Handle
	limit  uint64
	used   uint64
}

// SoftKernelOption configures a SoftKernel.
type SoftKernelOption func(*SoftKernel)

// WithMemoryLimit caps the total ring storage, in bytes, across all live
// queues. Create fails with ErrKernelMemory once the cap would be exceeded.
// Zero means unlimited.
func WithMemoryLimit(bytes uint64) SoftKernelOption {
	return func(k *SoftKernel) {
		k.limit = bytes
	}
}

// NewSoftKernel creates an empty software kernel.
func NewSoftKernel(opts ...SoftKernelOption) *SoftKernel {
	k := &SoftKernel{queues: make(map[Handle]*softQueue)}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Create allocates a ring of capacity elements of elemSize bytes.
func (k *SoftKernel) Create(capacity, elemSize uint32) (Handle, error) {
	if capacity == 0 {
		return 0, ErrZeroCapacity
	}
	size := uint64(capacity) * uint64(elemSize)

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.limit != 0 && k.used+size > k.limit {
		return 0, fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrKernelMemory, size, k.used, k.limit)
	}
	k.used += size
	k.next++
	h := k.next
	k.queues[h] = &softQueue{
		buf:      make([]byte, size),
		elemSize: int(elemSize),
		capacity: int(capacity),
	}
	return h, nil
}

// Destroy releases the queue behind h. Values still in the ring are
// discarded as raw bytes. Callers still waiting on h panic.
func (k *SoftKernel) Destroy(h Handle) {
	k.mu.Lock()
	q, ok := k.queues[h]
	if ok {
		delete(k.queues, h)
		k.used -= uint64(len(q.buf))
	}
	k.mu.Unlock()
	if !ok {
		panic("taskq: invalid kernel handle")
	}
	q.mu.Lock()
	q.dead = true
	q.mu.Unlock()
}

// Append copies elem to the back of the queue.
func (k *SoftKernel) Append(h Handle, elem []byte, timeout Timeout) bool {
	q := k.lookup(h, len(elem))
	return await(timeout, func() bool { return q.push(elem, false) })
}

// Prepend copies elem to the front of the queue.
func (k *SoftKernel) Prepend(h Handle, elem []byte, timeout Timeout) bool {
	q := k.lookup(h, len(elem))
	return await(timeout, func() bool { return q.push(elem, true) })
}

// Receive moves the front element into dst.
func (k *SoftKernel) Receive(h Handle, dst []byte, timeout Timeout) bool {
	q := k.lookup(h, len(dst))
	return await(timeout, func() bool { return q.pop(dst, true) })
}

// Peek copies the front element into dst without removing it.
func (k *SoftKernel) Peek(h Handle, dst []byte, timeout Timeout) bool {
	q := k.lookup(h, len(dst))
	return await(timeout, func() bool { return q.pop(dst, false) })
}

// CountWaiting returns the number of queued elements.
func (k *SoftKernel) CountWaiting(h Handle) uint32 {
	q := k.lookup(h, -1)
	q.mu.Lock()
	defer q.mu.Unlock()
	return uint32(q.count)
}

// Live returns the number of queues that have been created and not yet
// destroyed.
func (k *SoftKernel) Live() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.queues)
}

// lookup resolves h. size is the caller's element buffer length, checked
// against the queue's element size unless negative.
func (k *SoftKernel) lookup(h Handle, size int) *softQueue {
	k.mu.RLock()
	q, ok := k.queues[h]
	k.mu.RUnlock()
	if !ok {
		panic("taskq: invalid kernel handle")
	}
	if size >= 0 && size != q.elemSize {
		panic(fmt.Sprintf("taskq: element buffer is %d bytes, queue element size is %d", size, q.elemSize))
	}
	return q
}

// softQueue is a fixed ring of capacity slots, elemSize bytes each.
type softQueue struct {
	mu       sync.Mutex
	buf      []byte
	elemSize int
	capacity int
	head     int
	count    int
	dead     bool
}

func (q *softQueue) slot(i int) []byte {
	off := (i % q.capacity) * q.elemSize
	return q.buf[off : off+q.elemSize]
}

func (q *softQueue) push(elem []byte, front bool) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.dead {
		panic("taskq: kernel queue destroyed while in use")
	}
	if q.count == q.capacity {
		return false
	}
	if front {
		q.head = (q.head + q.capacity - 1) % q.capacity
		copy(q.slot(q.head), elem)
	} else {
		copy(q.slot(q.head+q.count), elem)
	}
	q.count++
	return true
}

func (q *softQueue) pop(dst []byte, remove bool) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.dead {
		panic("taskq: kernel queue destroyed while in use")
	}
	if q.count == 0 {
		return false
	}
	s := q.slot(q.head)
	copy(dst, s)
	if remove {
		clear(s)
		q.head = (q.head + 1) % q.capacity
		q.count--
	}
	return true
}
