// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package check

import (
	"fmt"

	"code.hybscloud.com/pipes"
)

// Unresolved reports every transition naming a state that is not
// registered in the protocol.
var Unresolved = Pass{Name: "unresolved", Run: unresolved}

// Duplicates reports state names registered more than once, which lookups
// shadow, and message labels repeated within a state, which a receiver
// cannot tell apart.
var Duplicates = Pass{Name: "duplicates", Run: duplicates}

// Directions warns about transitions into a state with the same direction
// as their source. Consecutive sends or receives are legal; the warning
// flags protocols that were meant to alternate.
var Directions = Pass{Name: "directions", Run: directions}

// DeadStates warns about states that no session starting in state 0 can
// ever reach.
var DeadStates = Pass{Name: "dead-states", Run: deadStates}

func unresolved(p *pipes.Protocol) []*Diagnostic {
	var out []*Diagnostic
	for s := range p.States() {
		for _, m := range s.Messages() {
			_, err := m.Target()
			if err != nil {
				next, _ := m.Next()
				out = append(out, &Diagnostic{
					Pass:     "unresolved",
					Severity: Error,
					Protocol: p.Name(),
					State:    s.Name(),
					Span:     m.Span(),
					Msg:      fmt.Sprintf("message %q transitions to unknown state %q", m.Name(), next.State),
					Cause:    err,
				})
			}
		}
	}
	return out
}

func duplicates(p *pipes.Protocol) []*Diagnostic {
	var out []*Diagnostic
	for s := range p.States() {
		if first, _ := p.State(s.Name()); first != s {
			out = append(out, &Diagnostic{
				Pass:     "duplicates",
				Severity: Error,
				Protocol: p.Name(),
				State:    s.Name(),
				Span:     s.Span(),
				Msg:      fmt.Sprintf("state %d redeclares state %d", s.ID(), first.ID()),
			})
		}
		labels := make(map[string]int, s.NumMessages())
		for i, m := range s.Messages() {
			if j, dup := labels[m.Name()]; dup {
				out = append(out, &Diagnostic{
					Pass:     "duplicates",
					Severity: Error,
					Protocol: p.Name(),
					State:    s.Name(),
					Span:     m.Span(),
					Msg:      fmt.Sprintf("message %q (#%d) repeats message #%d", m.Name(), i, j),
				})
				continue
			}
			labels[m.Name()] = i
		}
	}
	return out
}

func directions(p *pipes.Protocol) []*Diagnostic {
	var out []*Diagnostic
	for s := range p.States() {
		for _, m := range s.Messages() {
			t, err := m.Target()
			if err != nil || t == nil {
				continue
			}
			if t.Direction() == s.Direction() {
				out = append(out, &Diagnostic{
					Pass:     "directions",
					Severity: Warning,
					Protocol: p.Name(),
					State:    s.Name(),
					Span:     m.Span(),
					Msg:      fmt.Sprintf("message %q keeps direction %v into state %q", m.Name(), s.Direction(), t.Name()),
				})
			}
		}
	}
	return out
}

func deadStates(p *pipes.Protocol) []*Diagnostic {
	if p.NumStates() == 0 {
		return nil
	}
	ids, _ := looseGraph(p).reach(0) // a loose graph never fails
	live := make([]bool, p.NumStates())
	for _, id := range ids {
		live[id] = true
	}
	var out []*Diagnostic
	for s := range p.States() {
		if live[s.ID()] {
			continue
		}
		out = append(out, &Diagnostic{
			Pass:     "dead-states",
			Severity: Warning,
			Protocol: p.Name(),
			State:    s.Name(),
			Span:     s.Span(),
			Msg:      "unreachable from the start state",
		})
	}
	return out
}
