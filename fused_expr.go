// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package taskq

import (
	"code.hybscloud.com/kont"
)

// ExprSendThen sends v and continues with next.
func ExprSendThen[T, B any](v T, next kont.Expr[B]) kont.Expr[B] {
	return kont.ExprThen(kont.ExprPerform(Send[T]{Value: v}), next)
}

// ExprRecvBind receives a value and passes it to f.
func ExprRecvBind[T, B any](f func(T) kont.Expr[B]) kont.Expr[B] {
	return kont.ExprBind(kont.ExprPerform(Recv[T]{}), func(d delivery[T]) kont.Expr[B] {
		return f(d.v)
	})
}

// ExprCloseDone releases the endpoint and returns a.
func ExprCloseDone[A any](a A) kont.Expr[A] {
	return kont.ExprThen(kont.ExprPerform(Close{}), kont.ExprReturn(a))
}
