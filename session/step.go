// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Step evaluates a session protocol until the first effect suspension.
// Returns (Either[error, R], nil) on completion, or (zero, suspension)
// if pending.
func Step[R any](protocol kont.Expr[R]) (kont.Either[error, R], *kont.Suspension[kont.Either[error, R]]) {
	wrapped := kont.ExprMap(protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	return kont.StepExpr(wrapped)
}

// Advance dispatches the suspended operation on the endpoint.
// Session ops are non-blocking: on iox.ErrWouldBlock the suspension is
// returned unconsumed together with the error and may be retried after the
// peer makes progress. Any other session failure, and a Throw, discards
// the suspension and returns Left with a nil error.
func Advance[R any](ep *Endpoint, susp *kont.Suspension[kont.Either[error, R]]) (kont.Either[error, R], *kont.Suspension[kont.Either[error, R]], error) {
	// Session ops: non-blocking dispatch
	if sop, ok := susp.Op().(sessionDispatcher); ok {
		v, err := sop.DispatchSession(&ep.ctx)
		if err != nil {
			if iox.IsWouldBlock(err) {
				var zero kont.Either[error, R]
				return zero, susp, err
			}
			susp.Discard()
			return kont.Left[error, R](err), nil, nil
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	// Error ops: eager dispatch
	if eop, ok := susp.Op().(errorDispatcher); ok {
		var ctx kont.ErrorContext[error]
		v, _ := eop.DispatchError(&ctx)
		if ctx.HasErr {
			susp.Discard()
			return kont.Left[error, R](ctx.Err), nil, nil
		}
		result, next := susp.Resume(v)
		return result, next, nil
	}
	panic("session: unhandled effect in Advance")
}
