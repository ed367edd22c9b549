// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"time"

	"code.hybscloud.com/kont"
)

// Send is the effect operation for sending a value of type T.
// Perform(Send[T]{Value: v}) sends v on the endpoint's stream.
type Send[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// DispatchStream sends on the endpoint's send leg, waiting up to timeout
// for room. It returns iox.ErrWouldBlock when the leg stays full.
func (s Send[T]) DispatchStream(ctx *streamContext, timeout Timeout) (kont.Resumed, error) {
	if timeout.IsForever() {
		ctx.stream.Send(s.Value)
		return struct{}{}, nil
	}
	if err := ctx.stream.SendTimeout(s.Value, time.Duration(timeout)); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// Recv is the effect operation for receiving a value of type T.
// It resumes with a delivery box; RecvBind and ExprRecvBind unwrap it.
type Recv[T any] struct {
	kont.Phantom[delivery[T]]
}

// delivery carries a received value through the continuation, so that a
// nil interface value resumes as a non-nil box.
type delivery[T any] struct {
	v T
}

// DispatchStream receives from the endpoint's receive leg, waiting up to
// timeout. It returns iox.ErrWouldBlock when nothing arrives. A non-nil
// value of another type is a protocol mismatch and panics.
func (Recv[T]) DispatchStream(ctx *streamContext, timeout Timeout) (kont.Resumed, error) {
	var v any
	if timeout.IsForever() {
		v = ctx.stream.Receive()
	} else {
		var err error
		if v, err = ctx.stream.ReceiveTimeout(time.Duration(timeout)); err != nil {
			return nil, err
		}
	}
	if v == nil {
		// A nil interface sent as an interface-typed T.
		return delivery[T]{}, nil
	}
	return delivery[T]{v: v.(T)}, nil
}

// Close is the effect operation for releasing the endpoint's stream.
type Close struct {
	kont.Phantom[struct{}]
}

// DispatchStream releases the endpoint. It never waits.
func (Close) DispatchStream(ctx *streamContext, _ Timeout) (kont.Resumed, error) {
	ctx.release()
	return struct{}{}, nil
}
