// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"code.hybscloud.com/kont"
)

// Exec runs a Cont-world protocol on ep, blocking on each send and receive
// until it completes. It does not spawn goroutines.
func Exec[R any](ep *Endpoint, protocol kont.Eff[R]) R {
	r, _ := ExecTimeout(ep, protocol, Forever)
	return r
}

// ExecExpr is Exec for Expr-world protocols.
func ExecExpr[R any](ep *Endpoint, protocol kont.Expr[R]) R {
	r, _ := ExecExprTimeout(ep, protocol, Forever)
	return r
}

// ExecTimeout runs a Cont-world protocol on ep within timeout, shared by
// all of its operations. When a send or receive cannot finish in the
// remaining time the run stops there and returns iox.ErrWouldBlock; the
// endpoint stays open.
func ExecTimeout[R any](ep *Endpoint, protocol kont.Eff[R], timeout Timeout) (R, error) {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, kont.Right[error, R])
	h := streamHandler[R]{ctx: &ep.ctx, dl: timeout.deadline()}
	return settle(kont.Handle(wrapped, h))
}

// ExecExprTimeout is ExecTimeout for Expr-world protocols.
func ExecExprTimeout[R any](ep *Endpoint, protocol kont.Expr[R], timeout Timeout) (R, error) {
	wrapped := kont.ExprMap(protocol, kont.Right[error, R])
	h := streamHandler[R]{ctx: &ep.ctx, dl: timeout.deadline()}
	return settle(kont.HandleExpr(wrapped, h))
}

func settle[R any](e kont.Either[error, R]) (R, error) {
	if err, ok := e.GetLeft(); ok {
		var zero R
		return zero, err
	}
	r, _ := e.GetRight()
	return r, nil
}
