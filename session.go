// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/kont"
)

// streamContext is the transport of one endpoint.
type streamContext struct {
	stream DuplexTimeoutStream[any]
	closed atomix.Uint32
}

// release closes the endpoint's stream once.
func (ctx *streamContext) release() {
	if ctx.closed.Add(1) != 1 {
		return
	}
	if c, ok := ctx.stream.(closer); ok {
		c.Close()
	}
}

// streamDispatcher is the structural interface for protocol operations.
// DispatchStream waits up to timeout and returns iox.ErrWouldBlock when
// the stream cannot make progress in that time.
type streamDispatcher interface {
	DispatchStream(ctx *streamContext, timeout Timeout) (kont.Resumed, error)
}

// streamHandler implements kont.Handler for protocol effects. All
// operations of one run share a single deadline; the first operation that
// runs out of it ends the run with Left.
type streamHandler[R any] struct {
	ctx *streamContext
	dl  deadline
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h streamHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(streamDispatcher)
	if !ok {
		panic("taskq: unhandled effect in streamHandler")
	}
	v, err := sop.DispatchStream(h.ctx, h.dl.remaining())
	if err != nil {
		return kont.Left[error, R](err), false
	}
	return v, true
}

// Endpoint runs protocols over one duplex stream of values.
type Endpoint struct {
	ctx    streamContext
	serial Serial
}

// Serial returns the serial of the endpoint's pair, or of the endpoint
// itself when it was attached on its own.
func (ep *Endpoint) Serial() Serial {
	return ep.serial
}

// Stream returns the duplex stream the endpoint runs on.
func (ep *Endpoint) Stream() DuplexTimeoutStream[any] {
	return ep.ctx.stream
}

// Close releases the endpoint's stream. Only the first call, or the first
// dispatched Close operation, has an effect.
func (ep *Endpoint) Close() {
	ep.ctx.release()
}

// Attach returns an endpoint running on s. Closing the endpoint closes s if
// s has a Close method.
func Attach(s DuplexTimeoutStream[any]) *Endpoint {
	return &Endpoint{ctx: streamContext{stream: s}, serial: nextSerial()}
}

// New creates a connected pair of endpoints. Each direction is a queue from
// a 1 KiB creator; each endpoint composes its own send leg with the peer's
// receive leg, so either endpoint can close without cutting off values the
// peer has yet to receive.
func New() (*Endpoint, *Endpoint) {
	creator := NewQueueCreator1K[any](nil)
	abTx, abRx := creator.CreateStream()
	baTx, baRx := creator.CreateStream()

	s := nextSerial()
	a := &Endpoint{ctx: streamContext{stream: ComposeTimeout[any](abTx, baRx)}, serial: s}
	b := &Endpoint{ctx: streamContext{stream: ComposeTimeout[any](baTx, abRx)}, serial: s}
	return a, b
}
