// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

var (
	_ DuplexStream[int]         = (*ComposedStream[int])(nil)
	_ DuplexTimeoutStream[int]  = (*ComposedTimeoutStream[int])(nil)
	_ SendTimeoutStream[int]    = (*ComposedSendTimeoutStream[int])(nil)
	_ ReceiveStream[int]        = (*ComposedSendTimeoutStream[int])(nil)
	_ SendStream[int]           = (*ComposedReceiveTimeoutStream[int])(nil)
	_ ReceiveTimeoutStream[int] = (*ComposedReceiveTimeoutStream[int])(nil)
)

// closer is satisfied by legs that own resources, such as *QueueRef.
type closer interface {
	Close()
}

// Leg interfaces are embedded unexported, so a composed stream exposes the
// leg methods without exposing the legs as fields.
type (
	sendLeg[T any]        interface{ SendStream[T] }
	recvLeg[T any]        interface{ ReceiveStream[T] }
	sendTimeoutLeg[T any] interface{ SendTimeoutStream[T] }
	recvTimeoutLeg[T any] interface{ ReceiveTimeoutStream[T] }
)

func closeLegs(send, recv any) {
	if sc, ok := send.(closer); ok {
		sc.Close()
	}
	if rc, ok := recv.(closer); ok {
		rc.Close()
	}
}

// ComposedStream joins a send leg and a receive leg into one DuplexStream.
// Send methods go to the send leg and receive methods to the receive leg.
type ComposedStream[T any] struct {
	sendLeg[T]
	recvLeg[T]
}

// Compose pairs s and r. Ownership of each leg passes to the result.
func Compose[T any](s SendStream[T], r ReceiveStream[T]) *ComposedStream[T] {
	return &ComposedStream[T]{s, r}
}

// Sender returns the send leg.
func (c *ComposedStream[T]) Sender() SendStream[T] { return c.sendLeg }

// Receiver returns the receive leg.
func (c *ComposedStream[T]) Receiver() ReceiveStream[T] { return c.recvLeg }

// Close closes each leg that has a Close method.
func (c *ComposedStream[T]) Close() { closeLegs(c.sendLeg, c.recvLeg) }

// ComposedTimeoutStream joins legs that both support bounded waits into one
// DuplexTimeoutStream.
type ComposedTimeoutStream[T any] struct {
	sendTimeoutLeg[T]
	recvTimeoutLeg[T]
}

// ComposeTimeout pairs s and r. Ownership of each leg passes to the result.
func ComposeTimeout[T any](s SendTimeoutStream[T], r ReceiveTimeoutStream[T]) *ComposedTimeoutStream[T] {
	return &ComposedTimeoutStream[T]{s, r}
}

// Sender returns the send leg.
func (c *ComposedTimeoutStream[T]) Sender() SendTimeoutStream[T] { return c.sendTimeoutLeg }

// Receiver returns the receive leg.
func (c *ComposedTimeoutStream[T]) Receiver() ReceiveTimeoutStream[T] { return c.recvTimeoutLeg }

// Close closes each leg that has a Close method.
func (c *ComposedTimeoutStream[T]) Close() { closeLegs(c.sendTimeoutLeg, c.recvTimeoutLeg) }

// ComposedSendTimeoutStream joins a bounded send leg with an unbounded
// receive leg. Only its sends take a timeout.
type ComposedSendTimeoutStream[T any] struct {
	sendTimeoutLeg[T]
	recvLeg[T]
}

// ComposeSendTimeout pairs s and r. Ownership of each leg passes to the
// result.
func ComposeSendTimeout[T any](s SendTimeoutStream[T], r ReceiveStream[T]) *ComposedSendTimeoutStream[T] {
	return &ComposedSendTimeoutStream[T]{s, r}
}

// Sender returns the send leg.
func (c *ComposedSendTimeoutStream[T]) Sender() SendTimeoutStream[T] { return c.sendTimeoutLeg }

// Receiver returns the receive leg.
func (c *ComposedSendTimeoutStream[T]) Receiver() ReceiveStream[T] { return c.recvLeg }

// Close closes each leg that has a Close method.
func (c *ComposedSendTimeoutStream[T]) Close() { closeLegs(c.sendTimeoutLeg, c.recvLeg) }

// ComposedReceiveTimeoutStream joins an unbounded send leg with a bounded
// receive leg. Only its receives take a timeout.
type ComposedReceiveTimeoutStream[T any] struct {
	sendLeg[T]
	recvTimeoutLeg[T]
}

// ComposeReceiveTimeout pairs s and r. Ownership of each leg passes to the
// result.
func ComposeReceiveTimeout[T any](s SendStream[T], r ReceiveTimeoutStream[T]) *ComposedReceiveTimeoutStream[T] {
	return &ComposedReceiveTimeoutStream[T]{s, r}
}

// Sender returns the send leg.
func (c *ComposedReceiveTimeoutStream[T]) Sender() SendStream[T] { return c.sendLeg }

// Receiver returns the receive leg.
func (c *ComposedReceiveTimeoutStream[T]) Receiver() ReceiveTimeoutStream[T] { return c.recvTimeoutLeg }

// Close closes each leg that has a Close method.
func (c *ComposedReceiveTimeoutStream[T]) Close() { closeLegs(c.sendLeg, c.recvTimeoutLeg) }
