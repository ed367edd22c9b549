// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"code.hybscloud.com/kont"
)

// errorDispatcher is the structural interface of kont error operations.
type errorDispatcher[E any] interface {
	DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
}

// raise dispatches an error operation in a fresh context. thrown reports a
// Throw that escaped every Catch.
func raise[E any](eop errorDispatcher[E]) (v kont.Resumed, e E, thrown bool) {
	var ctx kont.ErrorContext[E]
	v, _ = eop.DispatchError(&ctx)
	return v, ctx.Err, ctx.HasErr
}

// streamErrorHandler blocks on stream operations and ends the run with Left
// on an uncaught Throw.
type streamErrorHandler[E, A any] struct {
	ctx *streamContext
}

// Dispatch implements kont.Handler, trying stream operations first.
func (h streamErrorHandler[E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	switch o := op.(type) {
	case streamDispatcher:
		v, _ := o.DispatchStream(h.ctx, Forever)
		return v, true
	case errorDispatcher[E]:
		v, e, thrown := raise(o)
		if thrown {
			return kont.Left[E, A](e), false
		}
		return v, true
	}
	panic("taskq: unhandled effect in streamErrorHandler")
}

// ExecError runs a Cont-world protocol with error effects on ep.
// It returns Right on success and Left with the thrown error otherwise.
func ExecError[E, R any](ep *Endpoint, protocol kont.Eff[R]) kont.Either[E, R] {
	return kont.Handle(kont.Map[kont.Resumed, R, kont.Either[E, R]](protocol, kont.Right[E, R]),
		streamErrorHandler[E, R]{ctx: &ep.ctx})
}

// ExecErrorExpr is ExecError for Expr-world protocols.
func ExecErrorExpr[E, R any](ep *Endpoint, protocol kont.Expr[R]) kont.Either[E, R] {
	return kont.HandleExpr(kont.ExprMap(protocol, kont.Right[E, R]), streamErrorHandler[E, R]{ctx: &ep.ctx})
}

// RunError is Run with error effects: each result is Right on success and
// Left with the thrown error otherwise.
func RunError[E, A, B any](a kont.Eff[A], b kont.Eff[B]) (kont.Either[E, A], kont.Either[E, B]) {
	return RunErrorExpr[E](kont.Reify(a), kont.Reify(b))
}

// RunErrorExpr is RunError for Expr-world protocols.
func RunErrorExpr[E, A, B any](a kont.Expr[A], b kont.Expr[B]) (kont.Either[E, A], kont.Either[E, B]) {
	epA, epB := New()
	defer epA.Close()
	defer epB.Close()

	outA, pendA := StepError[E](a)
	outB, pendB := StepError[E](b)
	interleave(
		func() (bool, bool) { return stepOn(epA, &outA, &pendA, AdvanceError[E, A]) },
		func() (bool, bool) { return stepOn(epB, &outB, &pendB, AdvanceError[E, B]) },
	)
	return outA, outB
}

// StepError is Step for protocols that may throw E.
func StepError[E, R any](protocol kont.Expr[R]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]]) {
	return kont.StepExpr(kont.ExprMap(protocol, kont.Right[E, R]))
}

// AdvanceError is Advance for protocols that may throw E. An uncaught Throw
// discards the suspension and completes with Left.
func AdvanceError[E, R any](ep *Endpoint, susp *kont.Suspension[kont.Either[E, R]]) (kont.Either[E, R], *kont.Suspension[kont.Either[E, R]], error) {
	switch o := susp.Op().(type) {
	case streamDispatcher:
		return tryResume(ep, susp, o)
	case errorDispatcher[E]:
		v, e, thrown := raise(o)
		if thrown {
			susp.Discard()
			return kont.Left[E, R](e), nil, nil
		}
		r, next := susp.Resume(v)
		return r, next, nil
	}
	panic("taskq: unhandled effect in AdvanceError")
}
