// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"code.hybscloud.com/kont"

	"code.hybscloud.com/pipes"
	"code.hybscloud.com/pipes/session"
)

func TestSendRecv(t *testing.T) {
	skipRace(t)
	m := mustCompile(t, echo())
	// !q(string).?a(string).end ↔ ?q(string).!a(string).end
	client := session.SendThen(session.Msg("q", "hello"),
		session.RecvBind(func(p session.Packet) kont.Eff[string] {
			return session.CloseDone(p.Values[0].(string))
		}),
	)
	server := session.RecvBind(func(p session.Packet) kont.Eff[string] {
		return session.SendThen(session.Msg("a", fmt.Sprintf("echo %s", p.Values[0])),
			session.CloseDone(p.Label),
		)
	})

	clientResult, serverResult := session.Run(m, client, server)
	if got := right(t, "client", clientResult); got != "echo hello" {
		t.Fatalf("client got %q, want %q", got, "echo hello")
	}
	if got := right(t, "server", serverResult); got != "q" {
		t.Fatalf("server got %q, want %q", got, "q")
	}
}

func TestStream(t *testing.T) {
	skipRace(t)
	m := mustCompile(t, stream())
	_, received := session.Run(m, sendAll([]int{3, 1, 4, 1, 5}), collect())
	if diff := cmp.Diff([]int{3, 1, 4, 1, 5}, right(t, "receiver", received)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestBranchLeft(t *testing.T) {
	skipRace(t)
	m := mustCompile(t, choice())
	client := session.SendThen(session.Msg("left", 7),
		session.RecvBind(func(p session.Packet) kont.Eff[string] {
			return session.CloseDone(p.Label)
		}),
	)
	server := session.Branch(map[string]func(session.Packet) kont.Eff[string]{
		"left": func(p session.Packet) kont.Eff[string] {
			return session.SendThen(session.Msg("ok"),
				session.CloseDone(fmt.Sprintf("left:%d", p.Values[0])))
		},
		"right": func(p session.Packet) kont.Eff[string] {
			return session.CloseDone("right:" + p.Values[0].(string))
		},
	})

	clientResult, serverResult := session.Run(m, client, server)
	if got := right(t, "client", clientResult); got != "ok" {
		t.Fatalf("client got %q, want %q", got, "ok")
	}
	if got := right(t, "server", serverResult); got != "left:7" {
		t.Fatalf("server got %q, want %q", got, "left:7")
	}
}

func TestBranchRight(t *testing.T) {
	skipRace(t)
	m := mustCompile(t, choice())
	// Right has no messages, so both sides may close right away.
	client := session.SendThen(session.Msg("right", "hi"), session.CloseDone("right"))
	server := session.Branch(map[string]func(session.Packet) kont.Eff[string]{
		"left": func(session.Packet) kont.Eff[string] {
			return session.CloseDone("left")
		},
		"right": func(p session.Packet) kont.Eff[string] {
			return session.CloseDone("right:" + p.Values[0].(string))
		},
	})

	clientResult, serverResult := session.Run(m, client, server)
	if got := right(t, "client", clientResult); got != "right" {
		t.Fatalf("client got %q, want %q", got, "right")
	}
	if got := right(t, "server", serverResult); got != "right:hi" {
		t.Fatalf("server got %q, want %q", got, "right:hi")
	}
}

func TestCloseOnly(t *testing.T) {
	b := pipes.New("idle", pipes.Span{})
	b.AddState("Idle", pipes.Send)
	m := mustCompile(t, b.Build())

	epA, epB := session.New(m)
	if !epA.Done() || !epB.Done() {
		t.Fatal("state without messages should be done")
	}
	right(t, "a", session.Exec(epA, session.CloseDone(1)))
	right(t, "b", session.Exec(epB, session.CloseDone(2)))
	if got := epA.Closed(); got != 2 {
		t.Fatalf("Closed got %d, want 2", got)
	}
}

func TestExecPair(t *testing.T) {
	skipRace(t)
	m := mustCompile(t, echo())
	epA, epB := session.New(m)

	done := make(chan kont.Either[error, string])
	go func() {
		done <- session.Exec(epB, session.RecvBind(func(p session.Packet) kont.Eff[string] {
			return session.SendThen(session.Msg("a", p.Values[0]), session.CloseDone("served"))
		}))
	}()
	got := right(t, "client", session.Exec(epA, session.SendThen(session.Msg("q", "x"),
		session.RecvBind(func(p session.Packet) kont.Eff[string] {
			return session.CloseDone(p.Values[0].(string))
		}))))
	if got != "x" {
		t.Fatalf("client got %q, want %q", got, "x")
	}
	if got := right(t, "server", <-done); got != "served" {
		t.Fatalf("server got %q, want %q", got, "served")
	}
	if epA.State() != "" || !epA.Done() {
		t.Fatalf("client should have ended, state %q", epA.State())
	}
}

func TestEndpointState(t *testing.T) {
	m := mustCompile(t, echo())
	epA, epB := session.New(m)

	if epA.Dual() || !epB.Dual() {
		t.Fatalf("Dual got %v/%v, want false/true", epA.Dual(), epB.Dual())
	}
	if epA.State() != "Ask" || epB.State() != "Ask" {
		t.Fatalf("State got %q/%q, want Ask/Ask", epA.State(), epB.State())
	}
	if epA.Direction() != pipes.Send || epB.Direction() != pipes.Recv {
		t.Fatalf("Direction got %v/%v, want Send/Recv", epA.Direction(), epB.Direction())
	}
	if epA.Done() {
		t.Fatal("fresh endpoint should not be done")
	}
	if epA.Closed() != 0 {
		t.Fatalf("Closed got %d, want 0", epA.Closed())
	}
}

func TestEndpointAdvancesOnSend(t *testing.T) {
	skipRace(t)
	m := mustCompile(t, echo())
	epA, _ := session.New(m)

	_, susp := session.Step(session.ExprSendThen(session.Msg("q", "x"), kont.ExprReturn(0)))
	if _, _, err := session.Advance(epA, susp); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if epA.State() != "Answer" || epA.Direction() != pipes.Recv {
		t.Fatalf("got %q/%v, want Answer/Recv", epA.State(), epA.Direction())
	}
}
