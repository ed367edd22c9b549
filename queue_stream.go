// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import "time"

var _ DuplexTimeoutStream[int] = (*Queue[int])(nil)

// Send appends v, waiting indefinitely for room.
func (q *Queue[T]) Send(v T) {
	if err := q.Append(v, Forever); err != nil {
		panic("taskq: send without timeout failed")
	}
}

// SendSlice appends each element of s in order.
func (q *Queue[T]) SendSlice(s []T) {
	for _, v := range s {
		q.Send(v)
	}
}

// SendVec appends each element of v in order.
func (q *Queue[T]) SendVec(v []T) {
	q.SendSlice(v)
}

// SendTimeout appends v, waiting up to d for room.
func (q *Queue[T]) SendTimeout(v T, d time.Duration) error {
	return q.Append(v, After(d))
}

// SendSliceTimeout appends the elements of s within d and returns the
// number not accepted.
func (q *Queue[T]) SendSliceTimeout(s []T, d time.Duration) int {
	return len(s) - q.appendWithin(s, After(d))
}

// SendVecTimeout appends the elements of v within d and returns the unsent
// tail.
func (q *Queue[T]) SendVecTimeout(v []T, d time.Duration) []T {
	n := q.appendWithin(v, After(d))
	if n == len(v) {
		return nil
	}
	return v[n:]
}

// appendWithin appends s in order under one deadline and returns the number
// of elements sent.
func (q *Queue[T]) appendWithin(s []T, timeout Timeout) int {
	dl := timeout.deadline()
	for i, v := range s {
		if q.Append(v, dl.remaining()) != nil {
			return i
		}
	}
	return len(s)
}

// TryReceive removes the front value without waiting.
func (q *Queue[T]) TryReceive() (T, error) {
	return q.QueueReceive(NoWait)
}

// Receive waits indefinitely for the front value.
func (q *Queue[T]) Receive() T {
	v, err := q.QueueReceive(Forever)
	if err != nil {
		panic("taskq: receive without timeout returned nothing")
	}
	return v
}

// ReceiveSlice fills buf from values queued now.
func (q *Queue[T]) ReceiveSlice(buf []T) int {
	return q.receiveWithin(buf, NoWait)
}

// ReceiveAll waits until buf is full.
func (q *Queue[T]) ReceiveAll(buf []T) {
	for i := range buf {
		buf[i] = q.Receive()
	}
}

// ReceiveVec returns up to limit values queued now.
func (q *Queue[T]) ReceiveVec(limit int) []T {
	return q.collectWithin(limit, NoWait)
}

// ReceiveTimeout waits up to d for the front value.
func (q *Queue[T]) ReceiveTimeout(d time.Duration) (T, error) {
	return q.QueueReceive(After(d))
}

// ReceiveSliceTimeout fills buf until it is full or d elapses.
func (q *Queue[T]) ReceiveSliceTimeout(buf []T, d time.Duration) int {
	return q.receiveWithin(buf, After(d))
}

// ReceiveVecTimeout collects up to limit values until d elapses.
func (q *Queue[T]) ReceiveVecTimeout(limit int, d time.Duration) []T {
	return q.collectWithin(limit, After(d))
}

func (q *Queue[T]) receiveWithin(buf []T, timeout Timeout) int {
	dl := timeout.deadline()
	for i := range buf {
		v, err := q.QueueReceive(dl.remaining())
		if err != nil {
			return i
		}
		buf[i] = v
	}
	return len(buf)
}

func (q *Queue[T]) collectWithin(limit int, timeout Timeout) []T {
	if limit <= 0 {
		return nil
	}
	dl := timeout.deadline()
	out := make([]T, 0, min(limit, int(q.maxLength)))
	for len(out) < limit {
		v, err := q.QueueReceive(dl.remaining())
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return out
}
