// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import "time"

// SendStream accepts values, waiting as long as it takes.
//
// Send never reports failure: an infinite wait that fails anyway is a
// defect and panics.
type SendStream[T any] interface {
	// Send transfers v, waiting indefinitely for room.
	Send(v T)
	// SendSlice sends a copy of each element of s in order.
	SendSlice(s []T)
	// SendVec sends each element of v in order. The caller gives up v.
	SendVec(v []T)
}

// SendTimeoutStream is a SendStream whose sends can be bounded in time.
// Batch forms share one deadline across all elements.
type SendTimeoutStream[T any] interface {
	SendStream[T]
	// SendTimeout transfers v, waiting up to d. On iox.ErrWouldBlock the
	// stream keeps no reference to v.
	SendTimeout(v T, d time.Duration) error
	// SendSliceTimeout sends the elements of s in order until one times
	// out. It returns how many elements were not accepted.
	SendSliceTimeout(s []T, d time.Duration) int
	// SendVecTimeout sends the elements of v in order until one times out.
	// It returns the unsent tail of v, or nil when every element was sent.
	SendVecTimeout(v []T, d time.Duration) []T
}

// ReceiveStream produces values.
//
// Receive and ReceiveAll assume eventual supply; an infinite wait that
// fails anyway is a defect and panics.
type ReceiveStream[T any] interface {
	// TryReceive returns the next value if one is available now, or
	// iox.ErrWouldBlock.
	TryReceive() (T, error)
	// Receive waits indefinitely for the next value.
	Receive() T
	// ReceiveSlice fills buf from values available now and returns the
	// number filled.
	ReceiveSlice(buf []T) int
	// ReceiveAll waits until every element of buf has been filled.
	ReceiveAll(buf []T)
	// ReceiveVec returns up to limit values available now.
	ReceiveVec(limit int) []T
}

// ReceiveTimeoutStream is a ReceiveStream whose receives can be bounded in
// time. Batch forms share one deadline across all elements.
type ReceiveTimeoutStream[T any] interface {
	ReceiveStream[T]
	// ReceiveTimeout waits up to d for the next value.
	ReceiveTimeout(d time.Duration) (T, error)
	// ReceiveSliceTimeout fills buf until it is full or d elapses and
	// returns the number filled.
	ReceiveSliceTimeout(buf []T, d time.Duration) int
	// ReceiveVecTimeout collects up to limit values until d elapses.
	ReceiveVecTimeout(limit int, d time.Duration) []T
}

// DuplexStream both sends and receives values of T.
type DuplexStream[T any] interface {
	SendStream[T]
	ReceiveStream[T]
}

// DuplexTimeoutStream both sends and receives values of T with bounded waits.
type DuplexTimeoutStream[T any] interface {
	SendTimeoutStream[T]
	ReceiveTimeoutStream[T]
}

// StreamCreator produces a linked sender and receiver: what is sent on S is
// received on R.
type StreamCreator[T any, S SendStream[T], R ReceiveStream[T]] interface {
	CreateStream() (S, R)
}
