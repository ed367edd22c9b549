// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"code.hybscloud.com/kont"
)

// Loop repeats step from initial: Left(next) runs another round with next,
// Right(result) finishes with result.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	var next func(kont.Either[S, A]) kont.Eff[A]
	next = func(e kont.Either[S, A]) kont.Eff[A] {
		if s, ok := e.GetLeft(); ok {
			return kont.Bind(step(s), next)
		}
		a, _ := e.GetRight()
		return kont.Pure(a)
	}
	return kont.Bind(step(initial), next)
}

// ExprLoop is Loop for Expr-world protocols. Rounds that finish without
// suspending run in place, so a long run of them does not grow the stack.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	var next func(kont.Either[S, A]) kont.Expr[A]
	round := func(s S) kont.Expr[A] {
		for {
			m := step(s)
			if _, ok := m.Frame.(kont.ReturnFrame); !ok {
				return kont.ExprBind(m, next)
			}
			left, ok := m.Value.GetLeft()
			if !ok {
				a, _ := m.Value.GetRight()
				return kont.ExprReturn(a)
			}
			s = left
		}
	}
	next = func(e kont.Either[S, A]) kont.Expr[A] {
		if s, ok := e.GetLeft(); ok {
			return round(s)
		}
		a, _ := e.GetRight()
		return kont.ExprReturn(a)
	}
	return round(initial)
}
