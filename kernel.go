// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import "errors"

// Handle is an opaque reference to a kernel queue.
// The zero Handle never refers to a live queue.
type Handle uintptr

// Kernel is the untyped, fixed-capacity, blocking queue service provided by
// the runtime. It knows element sizes only; element buffers passed to it must
// be exactly the size given at Create.
//
// Every method must be safe for concurrent use: the kernel serializes access
// to each queue internally. Append, Prepend, Receive and Peek may suspend the
// caller for up to timeout and report whether the operation happened.
type Kernel interface {
	Create(capacity, elemSize uint32) (Handle, error)
	Destroy(h Handle)
	Append(h Handle, elem []byte, timeout Timeout) bool
	Prepend(h Handle, elem []byte, timeout Timeout) bool
	Receive(h Handle, dst []byte, timeout Timeout) bool
	Peek(h Handle, dst []byte, timeout Timeout) bool
	CountWaiting(h Handle) uint32
}

var (
	// ErrZeroCapacity is returned by Kernel.Create for a zero-length queue.
	ErrZeroCapacity = errors.New("taskq: zero queue capacity")
	// ErrKernelMemory is returned by Kernel.Create when the kernel cannot
	// allocate storage for the queue.
	ErrKernelMemory = errors.New("taskq: kernel out of queue memory")
)

// defaultKernel is the process-wide kernel. It is created once and never
// replaced.
var defaultKernel = NewSoftKernel()

// DefaultKernel returns the process-wide software kernel used by NewQueue
// and by creators constructed without an explicit kernel.
func DefaultKernel() Kernel {
	return defaultKernel
}
