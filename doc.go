// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package taskq provides typed, ownership-safe message passing between
// tasks on top of an untyped, fixed-capacity, blocking kernel queue.
//
// # Architecture
//
//   - Kernel: [Kernel] is the untyped queue service (create, destroy, append,
//     prepend, receive, peek, count). [SoftKernel] is a software kernel;
//     [DefaultKernel] returns the process-wide instance.
//   - Queue: [Queue] is a bounded blocking FIFO of T. Values live in a typed
//     slot arena; only slot tickets cross the kernel. Free slots circulate
//     through a lock-free [code.hybscloud.com/lfq] queue.
//   - Streams: [SendStream], [SendTimeoutStream], [ReceiveStream] and
//     [ReceiveTimeoutStream] are the capabilities the rest of a program
//     codes against. [Compose] and [ComposeTimeout] join a send leg and a
//     receive leg into one duplex stream.
//   - Creators: [QueueCreator] produces linked sender/receiver handles
//     ([QueueRef]) sharing one reference-counted queue.
//   - Cell: [Cell] is a lock-free single slot exchanged only by [Cell.Swap].
//   - Protocols: typed protocols over a duplex [Endpoint] as algebraic
//     effects on [code.hybscloud.com/kont].
//
// # Timeouts and Failures
//
// Blocking calls take a [Timeout]: [Forever], [NoWait], or a bound built with
// [After]. A send or receive that runs out of time returns
// [code.hybscloud.com/iox.ErrWouldBlock]; a failed send keeps no reference to
// the value. Waits back off adaptively with [code.hybscloud.com/iox.Backoff].
// [ExecTimeout] bounds a whole protocol run by one such deadline.
// Kernel allocation failure and infinite waits that fail anyway are defects
// and panic.
//
// # Example
//
//	q := taskq.NewQueue[int](2)
//	defer q.Close()
//	_ = q.Append(1, taskq.Forever)
//	_ = q.Append(2, taskq.Forever)
//	err := q.Append(3, taskq.After(100*time.Millisecond)) // iox.ErrWouldBlock
//	v, _ := q.QueueReceive(taskq.NoWait)                   // 1
package taskq
