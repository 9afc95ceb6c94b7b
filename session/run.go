// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run creates an endpoint pair for m, runs a on the endpoint that follows
// the protocol and b on its dual, and returns both results. Interleaves
// execution of both sides on the calling goroutine using adaptive backoff
// (iox.Backoff) when neither side can make progress. Does not spawn
// goroutines or create channels.
func Run[A, B any](m *Machine, a kont.Eff[A], b kont.Eff[B]) (kont.Either[error, A], kont.Either[error, B]) {
	return RunExpr(m, Reify(a), Reify(b))
}

// RunExpr is Run for Expr-world protocols.
//
// When one side has finished and the other is still waiting on the
// transport, the waiting side can never make progress again: it fails
// with ErrPeerDone.
func RunExpr[A, B any](m *Machine, a kont.Expr[A], b kont.Expr[B]) (kont.Either[error, A], kont.Either[error, B]) {
	epA, epB := New(m)
	resultA, suspA := Step(a)
	resultB, suspB := Step(b)
	var bo iox.Backoff
	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = Advance(epA, suspA)
			if err == nil {
				progress = true
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = Advance(epB, suspB)
			if err == nil {
				progress = true
			}
		}
		if progress {
			bo.Reset()
			continue
		}
		switch {
		case suspA == nil:
			suspB.Discard()
			resultB, suspB = kont.Left[error, B](ErrPeerDone), nil
		case suspB == nil:
			suspA.Discard()
			resultA, suspA = kont.Left[error, A](ErrPeerDone), nil
		default:
			bo.Wait()
		}
	}
	return resultA, resultB
}
