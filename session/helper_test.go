// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session_test

import (
	"testing"

	"code.hybscloud.com/kont"

	"code.hybscloud.com/pipes"
	"code.hybscloud.com/pipes/session"
)

var str = []pipes.Type{"string"}

func to(name string) *pipes.NextState {
	return &pipes.NextState{State: name}
}

// echo: Ask(Send) -q(string)-> Answer(Recv) -a(string)-> end.
func echo() *pipes.Protocol {
	b := pipes.New("echo", pipes.Span{})
	b.AddState("Ask", pipes.Send).AddMessage("q", pipes.Span{}, str, to("Answer"))
	b.AddState("Answer", pipes.Recv).AddMessage("a", pipes.Span{}, str, nil)
	return b.Build()
}

// stream: Stream(Send) -item(int)-> Stream, -fin-> end.
func stream() *pipes.Protocol {
	b := pipes.New("stream", pipes.Span{})
	s := b.AddState("Stream", pipes.Send)
	s.AddMessage("item", pipes.Span{}, []pipes.Type{"int"}, to("Stream"))
	s.AddMessage("fin", pipes.Span{}, nil, nil)
	return b.Build()
}

// choice: Pick(Send) -left(int)-> Left(Recv) -ok-> end,
// Pick -right(string)-> Right, which has no messages.
func choice() *pipes.Protocol {
	b := pipes.New("choice", pipes.Span{})
	pick := b.AddState("Pick", pipes.Send)
	pick.AddMessage("left", pipes.Span{}, []pipes.Type{"int"}, to("Left"))
	pick.AddMessage("right", pipes.Span{}, str, to("Right"))
	b.AddState("Left", pipes.Recv).AddMessage("ok", pipes.Span{}, nil, nil)
	b.AddState("Right", pipes.Recv)
	return b.Build()
}

func mustCompile(tb testing.TB, p *pipes.Protocol) *session.Machine {
	tb.Helper()
	m, err := session.Compile(p)
	if err != nil {
		tb.Fatalf("Compile(%s): %v", p.Name(), err)
	}
	return m
}

// right unwraps a Right result or fails the test with the Left error.
func right[R any](tb testing.TB, who string, e kont.Either[error, R]) R {
	tb.Helper()
	if err, ok := e.GetLeft(); ok {
		tb.Fatalf("%s: got Left(%v), want Right", who, err)
	}
	v, _ := e.GetRight()
	return v
}

// left unwraps a Left result or fails the test.
func left[R any](tb testing.TB, who string, e kont.Either[error, R]) error {
	tb.Helper()
	err, ok := e.GetLeft()
	if !ok {
		v, _ := e.GetRight()
		tb.Fatalf("%s: got Right(%v), want Left", who, v)
	}
	return err
}

// execExpr drives a protocol to completion on ep via Step+Advance loop.
// Retries on iox.ErrWouldBlock (peer not ready yet).
// Used by stepping tests to exercise the non-blocking path.
func execExpr[R any](ep *session.Endpoint, protocol kont.Expr[R]) kont.Either[error, R] {
	result, susp := session.Step(protocol)
	for susp != nil {
		var err error
		result, susp, err = session.Advance(ep, susp)
		if err != nil {
			continue
		}
	}
	return result
}

// sendAll sends every value of items as an item message, then fin.
func sendAll(items []int) kont.Eff[struct{}] {
	return session.Loop(items, func(s []int) kont.Eff[kont.Either[[]int, struct{}]] {
		if len(s) == 0 {
			return session.SendThen(session.Msg("fin"),
				session.CloseDone(kont.Right[[]int, struct{}](struct{}{})))
		}
		return session.SendThen(session.Msg("item", s[0]),
			kont.Pure(kont.Left[[]int, struct{}](s[1:])))
	})
}

// collect receives item messages until fin.
func collect() kont.Eff[[]int] {
	return session.Loop([]int(nil), func(acc []int) kont.Eff[kont.Either[[]int, []int]] {
		return session.Branch(map[string]func(session.Packet) kont.Eff[kont.Either[[]int, []int]]{
			"item": func(p session.Packet) kont.Eff[kont.Either[[]int, []int]] {
				return kont.Pure(kont.Left[[]int, []int](append(acc, p.Values[0].(int))))
			},
			"fin": func(session.Packet) kont.Eff[kont.Either[[]int, []int]] {
				return session.CloseDone(kont.Right[[]int, []int](acc))
			},
		})
	})
}
