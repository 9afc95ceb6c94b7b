// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"errors"
	"fmt"

	"code.hybscloud.com/kont"
)

var (
	// ErrViolation is the sentinel matched by every *ViolationError.
	ErrViolation = errors.New("session: protocol violation")

	// ErrPeerDone reports that an endpoint waited on a peer whose program
	// has already finished.
	ErrPeerDone = errors.New("session: peer finished")

	// ErrEmptyProtocol reports a protocol without states, which has no start.
	ErrEmptyProtocol = errors.New("session: protocol has no states")

	// ErrDuplicateLabel reports a state declaring the same message label
	// more than once; a receiver could not tell the transitions apart.
	ErrDuplicateLabel = errors.New("session: duplicate message label")

	// ErrUnhandledLabel reports a received label that a Branch has no case for.
	ErrUnhandledLabel = errors.New("session: unhandled label")
)

// ViolationError describes an operation that does not fit the endpoint's
// current protocol state. The operation has no effect on the transport.
type ViolationError struct {
	Protocol string
	Serial   Serial
	Dual     bool
	State    string // empty once the session has ended
	Label    string
	Reason   string
}

func (e *ViolationError) Error() string {
	side := "endpoint"
	if e.Dual {
		side = "dual endpoint"
	}
	at := "after end"
	if e.State != "" {
		at = "in state " + e.State
	}
	if e.Label == "" {
		return fmt.Sprintf("session %d: %s %s of %s: %s", e.Serial, side, at, e.Protocol, e.Reason)
	}
	return fmt.Sprintf("session %d: %s %s of %s: %q: %s", e.Serial, side, at, e.Protocol, e.Label, e.Reason)
}

func (e *ViolationError) Unwrap() error { return ErrViolation }

// errorDispatcher is the structural interface of kont error operations
// (ThrowError, CatchError) specialized to error values.
type errorDispatcher interface {
	DispatchError(ctx *kont.ErrorContext[error]) (kont.Resumed, bool)
}

// sessionHandler handles both session and error effects.
// Session ops wait on ErrWouldBlock via iox.Backoff and short-circuit on
// any other failure. Error ops short-circuit on Throw.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type sessionHandler[A any] struct {
	ctx    *sessionContext
	errCtx *kont.ErrorContext[error]
}

// Dispatch implements kont.Handler for the composed Session+Error handler.
// Dispatch order: Session → Error.
func (h sessionHandler[A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if sop, ok := op.(sessionDispatcher); ok {
		v, err := dispatchWait(h.ctx, sop)
		if err != nil {
			return kont.Left[error, A](err), false
		}
		return v, true
	}
	if eop, ok := op.(errorDispatcher); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[error, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("session: unhandled effect in sessionHandler")
}
