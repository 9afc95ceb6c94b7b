// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"fmt"

	"code.hybscloud.com/kont"
)

// SendThen sends msg and then continues with next.
// Fuses Perform(msg) + Then.
func SendThen[B any](msg Send, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(msg), next)
}

// RecvBind receives a message and passes it to f.
// Fuses Perform(Recv{}) + Bind.
func RecvBind[B any](f func(Packet) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Recv{}), f)
}

// Branch receives a message and continues with the case for its label.
// A label without a case fails the program with ErrUnhandledLabel.
// Fuses Perform(Recv{}) + Bind + label dispatch.
func Branch[A any](cases map[string]func(Packet) kont.Eff[A]) kont.Eff[A] {
	return kont.Bind(kont.Perform(Recv{}), func(p Packet) kont.Eff[A] {
		if f, ok := cases[p.Label]; ok {
			return f(p)
		}
		return kont.Perform(failOp[A]{err: fmt.Errorf("%w: %q", ErrUnhandledLabel, p.Label)})
	})
}

// CloseDone closes the session and returns a.
// Fuses Perform(Close{}) + Then + Pure.
func CloseDone[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Close{}), kont.Pure(a))
}
