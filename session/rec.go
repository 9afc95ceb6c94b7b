// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"code.hybscloud.com/kont"
)

// Loop drives a cyclic protocol (Cont-world), one lap per step.
// step returns Left(acc) to go around the cycle again or Right(result) to
// leave it. Each lap is bound lazily, so an unbounded protocol does not grow
// the program before it runs.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if acc, ok := e.GetLeft(); ok {
			return Loop(acc, step)
		}
		result, _ := e.GetRight()
		return kont.Pure(result)
	})
}

// ExprLoop drives a cyclic protocol (Expr-world).
// step returns Left(acc) to continue or Right(result) to finish.
// Laps that complete without suspending are unrolled in place; otherwise
// ExprBind is fused inline to avoid the type-erasing wrapper closure.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	lap := step(initial)
	for {
		if _, ok := lap.Frame.(kont.ReturnFrame); !ok {
			break
		}
		acc, ok := lap.Value.GetLeft()
		if !ok {
			result, _ := lap.Value.GetRight()
			return kont.ExprReturn(result)
		}
		lap = step(acc)
	}
	bf := kont.AcquireBindFrame()
	bf.F = func(a kont.Erased) kont.Expr[kont.Erased] {
		e := a.(kont.Either[S, A])
		if acc, ok := e.GetLeft(); ok {
			next := ExprLoop(acc, step)
			return kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
		}
		result, _ := e.GetRight()
		return kont.Expr[kont.Erased]{Value: kont.Erased(result), Frame: exprReturnFrame}
	}
	bf.Next = exprReturnFrame
	var zero A
	return kont.Expr[A]{
		Value: zero,
		Frame: kont.ChainFrames(lap.Frame, bf),
	}
}
