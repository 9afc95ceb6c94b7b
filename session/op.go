// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"fmt"

	"code.hybscloud.com/kont"

	"code.hybscloud.com/pipes"
)

// Send is the effect operation for sending one message.
// Perform(Send{Label: l, Values: vs}) sends the message labeled l and
// moves the endpoint along that message's transition.
type Send struct {
	kont.Phantom[struct{}]
	Label  string
	Values []any
}

// Msg builds a Send for label carrying values.
func Msg(label string, values ...any) Send {
	return Send{Label: label, Values: values}
}

// DispatchSession handles Send on the session transport.
// The message is checked against the current state first: the endpoint
// must be sending, the label must be declared, and the value count must
// match the payload arity.
// Non-blocking: returns iox.ErrWouldBlock if the bounded SPSC queue is full;
// the state does not advance until the message is enqueued.
func (s Send) DispatchSession(ctx *sessionContext) (kont.Resumed, error) {
	if err := ctx.expect(pipes.Send, s.Label); err != nil {
		return nil, err
	}
	e, ok := ctx.m.rows[ctx.cur].find(s.Label)
	if !ok {
		return nil, ctx.violation(s.Label, "no such message")
	}
	if len(s.Values) != e.arity {
		return nil, ctx.violation(s.Label, fmt.Sprintf("got %d values, want %d", len(s.Values), e.arity))
	}
	ctx.sendSlot = Packet{Label: s.Label, Values: s.Values}
	if err := ctx.sendQ.Enqueue(&ctx.sendSlot); err != nil {
		return nil, err
	}
	ctx.cur = e.target
	return struct{}{}, nil
}

// Recv is the effect operation for receiving one message.
// Perform(Recv{}) returns the Packet the peer sent; its label tells which
// transition was taken.
type Recv struct {
	kont.Phantom[Packet]
}

// DispatchSession handles Recv on the session transport.
// Non-blocking: returns iox.ErrWouldBlock if the bounded SPSC queue is empty.
func (Recv) DispatchSession(ctx *sessionContext) (kont.Resumed, error) {
	if err := ctx.expect(pipes.Recv, ""); err != nil {
		return nil, err
	}
	p, err := ctx.recvQ.Dequeue()
	if err != nil {
		return nil, err
	}
	e, ok := ctx.m.rows[ctx.cur].find(p.Label)
	if !ok {
		return nil, ctx.violation(p.Label, "peer sent undeclared message")
	}
	ctx.cur = e.target
	return p, nil
}

// Close is the effect operation for closing the session.
// Perform(Close{}) signals session termination. It is legal only once the
// endpoint has reached the end of its protocol.
type Close struct {
	kont.Phantom[struct{}]
}

// DispatchSession handles Close on the session transport.
// Atomically increments the shared close counter. Never blocks.
func (Close) DispatchSession(ctx *sessionContext) (kont.Resumed, error) {
	if !ctx.terminal() {
		return nil, ctx.violation("", "close before end of protocol")
	}
	ctx.closed.Add(1)
	return struct{}{}, nil
}

// failOp is a session operation that always fails with err. Branch
// performs it when no case matches the received label.
type failOp[A any] struct {
	kont.Phantom[A]
	err error
}

func (f failOp[A]) DispatchSession(*sessionContext) (kont.Resumed, error) {
	return nil, f.err
}
