// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"fmt"

	"code.hybscloud.com/pipes"
)

// end is the target of a message that ends the session.
const end = -1

// Machine is a protocol compiled into a transition table. It is immutable
// and may back any number of endpoint pairs.
type Machine struct {
	proto *pipes.Protocol
	rows  []row
}

// row is one state of the table.
type row struct {
	name  string
	dir   pipes.Direction
	edges []edge
}

// edge is one message of a row.
type edge struct {
	label  string
	arity  int
	target int
}

// Compile builds the transition table of p. It fails when p has no states,
// when a transition names an unregistered state, or when a state declares
// the same label twice.
func Compile(p *pipes.Protocol) (*Machine, error) {
	if p.NumStates() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyProtocol, p.Name())
	}
	rows, err := pipes.VisitError[[]row, row, edge](p, compiler{})
	if err != nil {
		return nil, err
	}
	return &Machine{proto: p, rows: rows}, nil
}

// compiler is the pipes.ErrorVisitor that lowers a protocol to rows.
type compiler struct{}

func (compiler) VisitMessage(name string, span pipes.Span, payload []pipes.Type, this *pipes.State, next *pipes.NextState) (edge, error) {
	e := edge{label: name, arity: len(payload), target: end}
	if next == nil {
		return e, nil
	}
	p := this.Protocol()
	if !p.HasState(next.State) {
		return edge{}, &pipes.UnknownStateError{Protocol: p.Name(), Name: next.State, Span: span}
	}
	t, _ := p.State(next.State)
	e.target = t.ID()
	return e, nil
}

func (compiler) VisitState(s *pipes.State, edges []edge) (row, error) {
	for i := range edges {
		for j := range i {
			if edges[j].label == edges[i].label {
				return row{}, fmt.Errorf("%w: state %s label %q", ErrDuplicateLabel, s.Name(), edges[i].label)
			}
		}
	}
	return row{name: s.Name(), dir: s.Direction(), edges: edges}, nil
}

func (compiler) VisitProto(_ *pipes.Protocol, rows []row) ([]row, error) {
	return rows, nil
}

// Protocol returns the protocol the machine was compiled from.
func (m *Machine) Protocol() *pipes.Protocol {
	return m.proto
}

// Start returns the name of the start state, state 0.
func (m *Machine) Start() string {
	return m.rows[0].name
}

func (r *row) find(label string) (edge, bool) {
	for _, e := range r.edges {
		if e.label == label {
			return e, true
		}
	}
	return edge{}, false
}
