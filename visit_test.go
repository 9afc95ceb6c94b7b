// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"code.hybscloud.com/pipes"
)

// tableGen renders each state as "Name(Dir): m1->T, m2" and the protocol
// as the list of state lines.
type tableGen struct{}

func (tableGen) VisitMessage(name string, _ pipes.Span, payload []pipes.Type, _ *pipes.State, next *pipes.NextState) string {
	s := name
	if len(payload) > 0 {
		s += fmt.Sprint(payload)
	}
	if next != nil {
		s += "->" + next.String()
	}
	return s
}

func (tableGen) VisitState(s *pipes.State, ms []string) string {
	return fmt.Sprintf("%s(%v): %s", s.TypeName(), s.Direction(), strings.Join(ms, ", "))
}

func (tableGen) VisitProto(p *pipes.Protocol, ss []string) []string {
	return append([]string{p.Name()}, ss...)
}

func TestVisitOrder(t *testing.T) {
	b := pipes.New("order", pipes.Span{})
	a := b.AddStatePoly("A", "A", pipes.Send, pipes.TypeParam{Name: "T"})
	a.AddMessage("m1", pipes.Span{}, []pipes.Type{"T"}, to("B"))
	a.AddMessage("m2", pipes.Span{}, nil, to("A", "int"))
	a.AddMessage("m3", pipes.Span{}, nil, nil)
	bs := b.AddState("B", pipes.Recv)
	bs.AddMessage("back", pipes.Span{}, nil, to("A", "string"))
	b.AddState("End", pipes.Recv)
	p := b.Build()

	got := pipes.Visit[[]string, string, string](p, tableGen{})
	want := []string{
		"order",
		"A[T](Send): m1[T]->B, m2->A[int], m3",
		"B(Recv): back->A[string]",
		"End(Recv): ",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Visit mismatch (-want +got):\n%s", diff)
	}
}

func TestVisitMutualRecursionTerminates(t *testing.T) {
	b := pipes.New("mutual", pipes.Span{})
	a := b.AddState("A", pipes.Send)
	bb := b.AddState("B", pipes.Recv)
	a.AddMessage("toB", pipes.Span{}, nil, to("B"))
	bb.AddMessage("toA", pipes.Span{}, nil, to("A"))
	p := b.Build()

	visited := map[string]int{}
	n := pipes.Visit[int, string, struct{}](p, pipes.VisitFuncs[int, string, struct{}]{
		State: func(s *pipes.State, _ []struct{}) string {
			visited[s.Name()]++
			return s.Name()
		},
		Proto: func(_ *pipes.Protocol, ss []string) int {
			return len(ss)
		},
	})
	if n != 2 {
		t.Fatalf("got %d state results, want 2", n)
	}
	if diff := cmp.Diff(map[string]int{"A": 1, "B": 1}, visited); diff != "" {
		t.Fatalf("visit counts (-want +got):\n%s", diff)
	}

	// Both directions of the cycle are reachable one hop at a time.
	got, err := reached(mustState(p, "A"))
	if err != nil || len(got) != 1 || got[0] != "B" {
		t.Fatalf("A reaches %v, %v", got, err)
	}
	got, err = reached(mustState(p, "B"))
	if err != nil || len(got) != 1 || got[0] != "A" {
		t.Fatalf("B reaches %v, %v", got, err)
	}
}

func TestVisitPassesOwningState(t *testing.T) {
	p := pingPong().Build()
	owners := pipes.Visit[[][]string, []string, string](p, pipes.VisitFuncs[[][]string, []string, string]{
		Message: func(name string, _ pipes.Span, _ []pipes.Type, this *pipes.State, _ *pipes.NextState) string {
			return this.Name() + "." + name
		},
		State: func(_ *pipes.State, ms []string) []string { return ms },
		Proto: func(_ *pipes.Protocol, ss [][]string) [][]string { return ss },
	})
	want := [][]string{{"Ping.ping"}, {"Pong.pong"}}
	if diff := cmp.Diff(want, owners); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestVisitFuncsNilClosures(t *testing.T) {
	p := pingPong().Build()
	got := pipes.Visit[string, int, int](p, pipes.VisitFuncs[string, int, int]{})
	if got != "" {
		t.Fatalf("got %q, want zero value", got)
	}
}

var errBadLabel = errors.New("bad label")

type strictGen struct {
	messages int
}

func (g *strictGen) VisitMessage(name string, _ pipes.Span, _ []pipes.Type, _ *pipes.State, _ *pipes.NextState) (string, error) {
	g.messages++
	if name == "" {
		return "", errBadLabel
	}
	return name, nil
}

func (g *strictGen) VisitState(s *pipes.State, ms []string) (string, error) {
	if s.Direction() == pipes.Recv && len(ms) == 0 {
		return "", fmt.Errorf("state %s: no messages", s.Name())
	}
	return s.Name(), nil
}

func (g *strictGen) VisitProto(p *pipes.Protocol, ss []string) (string, error) {
	if len(ss) == 0 {
		return "", errors.New("no states")
	}
	return strings.Join(ss, "|"), nil
}

func TestVisitError(t *testing.T) {
	g := &strictGen{}
	got, err := pipes.VisitError[string, string, string](pingPong().Build(), g)
	if err != nil {
		t.Fatalf("VisitError: %v", err)
	}
	if got != "Ping|Pong" {
		t.Fatalf("got %q, want %q", got, "Ping|Pong")
	}

	b := pipes.New("bad", pipes.Span{})
	s := b.AddState("A", pipes.Send)
	s.AddMessage("ok", pipes.Span{}, nil, nil)
	s.AddMessage("", pipes.Span{}, nil, nil)
	s.AddMessage("never", pipes.Span{}, nil, nil)
	g = &strictGen{}
	_, err = pipes.VisitError[string, string, string](b.Build(), g)
	if !errors.Is(err, errBadLabel) {
		t.Fatalf("got %v, want errBadLabel", err)
	}
	var te *pipes.TraversalError
	if !errors.As(err, &te) || te.State != 0 || te.Message != 1 {
		t.Fatalf("got %#v", err)
	}
	if g.messages != 2 {
		t.Fatalf("visited %d messages after failure, want 2", g.messages)
	}

	b = pipes.New("deadrecv", pipes.Span{})
	b.AddState("R", pipes.Recv)
	_, err = pipes.VisitError[string, string, string](b.Build(), &strictGen{})
	if !errors.As(err, &te) || te.State != 0 || te.Message != -1 {
		t.Fatalf("got %#v", err)
	}

	_, err = pipes.VisitError[string, string, string](pipes.New("none", pipes.Span{}).Build(), &strictGen{})
	if !errors.As(err, &te) || te.State != -1 {
		t.Fatalf("got %#v", err)
	}
	if !strings.Contains(err.Error(), "pipes: visit none: no states") {
		t.Fatalf("message got %q", err.Error())
	}
}
