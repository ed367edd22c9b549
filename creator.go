// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"math"
	"unsafe"
)

// Storage budgets of the preset creators.
const (
	Budget1K  = 1 << 10
	Budget16K = 1 << 14
)

var _ StreamCreator[int, *QueueRef[int], *QueueRef[int]] = QueueCreator[int]{}

// QueueCreator creates queue-backed streams sized from a byte budget.
type QueueCreator[T any] struct {
	kernel Kernel
	budget uintptr
}

// NewQueueCreator1K returns a creator whose queues hold at least 1 KiB of T.
// A nil k selects the default kernel.
func NewQueueCreator1K[T any](k Kernel) QueueCreator[T] {
	return NewQueueCreator[T](k, Budget1K)
}

// NewQueueCreator16K returns a creator whose queues hold at least 16 KiB of T.
// A nil k selects the default kernel.
func NewQueueCreator16K[T any](k Kernel) QueueCreator[T] {
	return NewQueueCreator[T](k, Budget16K)
}

// NewQueueCreator returns a creator with an arbitrary byte budget.
func NewQueueCreator[T any](k Kernel, budget uintptr) QueueCreator[T] {
	if k == nil {
		k = defaultKernel
	}
	return QueueCreator[T]{kernel: k, budget: budget}
}

// Capacity returns the element count of created queues:
// budget/sizeof(T) + 1, counting a zero-sized T as one byte.
// The result is never zero.
func (c QueueCreator[T]) Capacity() uint32 {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		size = 1
	}
	n := uint64(c.budget/size) + 1
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}

// CreateStream creates one queue and returns two handles to it: the first
// for sending, the second for receiving. Closing either leaves the queue
// alive for the other.
func (c QueueCreator[T]) CreateStream() (*QueueRef[T], *QueueRef[T]) {
	tx := Share(NewQueueOn[T](c.kernel, c.Capacity()))
	return tx, tx.Clone()
}
