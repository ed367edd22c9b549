// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run creates an endpoint pair, runs a on one side and b on the other, and
// returns both results. Both sides are interleaved on the calling goroutine,
// backing off when neither can make progress. Both endpoints are closed on
// return.
func Run[A, B any](a kont.Eff[A], b kont.Eff[B]) (A, B) {
	return RunExpr(kont.Reify(a), kont.Reify(b))
}

// RunExpr is Run for Expr-world protocols.
func RunExpr[A, B any](a kont.Expr[A], b kont.Expr[B]) (A, B) {
	epA, epB := New()
	defer epA.Close()
	defer epB.Close()

	resultA, suspA := Step[A](a)
	resultB, suspB := Step[B](b)
	interleave(
		func() (bool, bool) { return stepOn(epA, &resultA, &suspA, Advance[A]) },
		func() (bool, bool) { return stepOn(epB, &resultB, &suspB, Advance[B]) },
	)
	return resultA, resultB
}

// advanceFunc is Advance or an instantiation of AdvanceError.
type advanceFunc[R any] func(*Endpoint, *kont.Suspension[R]) (R, *kont.Suspension[R], error)

// stepOn advances *susp once on ep, storing the outcome through result and
// susp. It reports whether the protocol is still pending and whether this
// call made progress.
func stepOn[R any](ep *Endpoint, result *R, susp **kont.Suspension[R], advance advanceFunc[R]) (pending, progressed bool) {
	if *susp == nil {
		return false, false
	}
	r, next, err := advance(ep, *susp)
	if err != nil {
		return true, false
	}
	*result, *susp = r, next
	return next != nil, true
}

// interleave alternates two stepping functions until neither is pending,
// backing off while neither makes progress.
func interleave(a, b func() (pending, progressed bool)) {
	var bo iox.Backoff
	for {
		pendingA, progressedA := a()
		pendingB, progressedB := b()
		if !pendingA && !pendingB {
			return
		}
		if progressedA || progressedB {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
}
