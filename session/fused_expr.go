// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"fmt"

	"code.hybscloud.com/kont"
)

// Pre-allocated erased operations and frames to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprClose       kont.Erased = Close{}
	exprRecv        kont.Erased = Recv{}
)

// identityResume is the identity resume function for EffectFrame construction.
// Named function produces a static function value, consistent with kont convention.
func identityResume(v kont.Erased) kont.Erased { return v }

// ExprSendThen sends msg and then continues with next.
// Fuses ExprPerform(msg) + ExprThen.
func ExprSendThen[B any](msg Send, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = msg
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func recvBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(Packet) kont.Expr[B])
	result := f(current.(Packet))
	return kont.Erased(result.Value), result.Frame
}

// ExprRecvBind receives a message and passes it to f.
// Fuses ExprPerform(Recv{}) + ExprBind.
func ExprRecvBind[B any](f func(Packet) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = recvBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprRecv
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

func branchUnwind[A any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	cases := data.(map[string]func(Packet) kont.Expr[A])
	p := current.(Packet)
	f, ok := cases[p.Label]
	if !ok {
		fail := kont.ExprPerform(failOp[A]{err: fmt.Errorf("%w: %q", ErrUnhandledLabel, p.Label)})
		return kont.Erased(fail.Value), fail.Frame
	}
	result := f(p)
	return kont.Erased(result.Value), result.Frame
}

// ExprBranch receives a message and continues with the case for its label.
// A label without a case fails the program with ErrUnhandledLabel.
// Fuses ExprPerform(Recv{}) + ExprBind + label dispatch.
func ExprBranch[A any](cases map[string]func(Packet) kont.Expr[A]) kont.Expr[A] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = cases
	bf.Unwind = branchUnwind[A]
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprRecv
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[A](ef)
}

// ExprCloseDone closes the session and returns a.
// Fuses ExprPerform(Close{}) + ExprThen + ExprReturn.
func ExprCloseDone[A any](a A) kont.Expr[A] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(a), Frame: exprReturnFrame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = exprClose
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[A](ef)
}
