// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"fmt"
	"iter"
)

// Protocol is a frozen session-type specification: a named, ordered
// collection of states. It is produced by Builder.Build, has no mutators,
// and may be read concurrently.
type Protocol struct {
	name       string
	span       Span
	states     []State
	index      map[string]int
	bounded    bool
	boundedSet bool
}

// Name returns the protocol name.
func (p *Protocol) Name() string {
	return p.name
}

// Span returns the location of the protocol declaration.
func (p *Protocol) Span() Span {
	return p.span
}

// Filename returns a name that is unique and stable for the protocol,
// for generators that key output by source.
func (p *Protocol) Filename() string {
	return "proto://" + p.name
}

// NumStates returns the number of states.
func (p *Protocol) NumStates() int {
	return len(p.states)
}

// State returns the first state registered under name, or an
// *UnknownStateError.
func (p *Protocol) State(name string) (*State, error) {
	return p.resolve(name, p.span)
}

// HasState reports whether a state named name exists.
func (p *Protocol) HasState(name string) bool {
	_, ok := p.index[name]
	return ok
}

// StateByID returns the state with the given id.
func (p *Protocol) StateByID(id int) (*State, error) {
	if id < 0 || id >= len(p.states) {
		return nil, &UnknownStateError{Protocol: p.name, Name: fmt.Sprintf("#%d", id), Span: p.span}
	}
	return &p.states[id], nil
}

// States iterates the states in id order.
func (p *Protocol) States() iter.Seq[*State] {
	return func(yield func(*State) bool) {
		for i := range p.states {
			if !yield(&p.states[i]) {
				return
			}
		}
	}
}

// HasTypeParams reports whether any state declares generic parameters,
// in which case a generated channel type needs type parameters too.
func (p *Protocol) HasTypeParams() bool {
	for i := range p.states {
		if len(p.states[i].generics) > 0 {
			return true
		}
	}
	return false
}

// IsBounded returns the bounded flag supplied before Build. A protocol is
// bounded when every reachable cycle is guaranteed to terminate. The flag
// is never computed here; see check.Bounded.
func (p *Protocol) IsBounded() (bool, error) {
	if !p.boundedSet {
		return false, fmt.Errorf("%w: protocol %s", ErrMissingBoundedFlag, p.name)
	}
	return p.bounded, nil
}

func (p *Protocol) resolve(name string, at Span) (*State, error) {
	id, ok := p.index[name]
	if !ok {
		return nil, &UnknownStateError{Protocol: p.name, Name: name, Span: at}
	}
	return &p.states[id], nil
}
