// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"code.hybscloud.com/kont"
)

// Step evaluates protocol up to its first send, receive or close. A nil
// suspension means the protocol already finished with the returned result.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance makes one attempt at the suspended operation on ep.
//
// On success the suspension is consumed and the protocol moves to its next
// operation or completes. On iox.ErrWouldBlock the same suspension is
// returned unconsumed and may be retried once the peer has made progress.
func Advance[R any](ep *Endpoint, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	sop, ok := susp.Op().(streamDispatcher)
	if !ok {
		panic("taskq: unhandled effect in Advance")
	}
	return tryResume(ep, susp, sop)
}

// tryResume dispatches sop on ep once and resumes susp with the outcome.
// susp is left untouched when the stream cannot take the operation now.
func tryResume[R any](ep *Endpoint, susp *kont.Suspension[R], sop streamDispatcher) (R, *kont.Suspension[R], error) {
	v, err := sop.DispatchStream(&ep.ctx, NoWait)
	if err != nil {
		var pending R
		return pending, susp, err
	}
	r, next := susp.Resume(v)
	return r, next, nil
}
