// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"iter"
	"slices"
	"strings"
)

// State is one point in a session: a direction and the ordered messages
// that may be exchanged there. States are owned by their Protocol.
type State struct {
	proto    *Protocol
	id       int
	name     string
	ident    string
	span     Span
	dir      Direction
	generics []TypeParam
	messages []Message
}

// ID returns the state's dense, 0-based registration index.
func (s *State) ID() int {
	return s.id
}

func (s *State) Name() string {
	return s.name
}

// Ident returns the identifier generators use for the state's data type.
func (s *State) Ident() string {
	return s.ident
}

func (s *State) Span() Span {
	return s.span
}

func (s *State) Direction() Direction {
	return s.dir
}

// Generics returns a copy of the state's generic parameters.
func (s *State) Generics() []TypeParam {
	return cloneParams(s.generics)
}

// Protocol returns the owning protocol.
func (s *State) Protocol() *Protocol {
	return s.proto
}

// Filename delegates to the owning protocol.
func (s *State) Filename() string {
	return s.proto.Filename()
}

// TypeName returns a stable type descriptor for the state: its name,
// followed by its generic parameter names in brackets when it has any.
func (s *State) TypeName() string {
	if len(s.generics) == 0 {
		return s.name
	}
	names := make([]string, len(s.generics))
	for i, g := range s.generics {
		names[i] = g.Name
	}
	return s.name + "[" + strings.Join(names, ", ") + "]"
}

// NumMessages returns the number of messages declared in the state.
func (s *State) NumMessages() int {
	return len(s.messages)
}

// Message returns the i-th message in declaration order.
func (s *State) Message(i int) *Message {
	return &s.messages[i]
}

// Messages iterates the messages in declaration order.
func (s *State) Messages() iter.Seq2[int, *Message] {
	return func(yield func(int, *Message) bool) {
		for i := range s.messages {
			if !yield(i, &s.messages[i]) {
				return
			}
		}
	}
}

// IsTerminal reports whether the session ends in this state.
func (s *State) IsTerminal() bool {
	return len(s.messages) == 0
}

// Reachable calls yield with each state reachable from s in one message,
// in message declaration order. A target reached by several messages is
// reported once. Iteration stops as soon as yield returns false, in which
// case Reachable returns false; otherwise it returns true.
//
// Reachable never follows more than one hop. Multi-hop searches drive
// repeated calls with their own visited set. A transition naming an
// unregistered state stops the walk with an *UnknownStateError.
func (s *State) Reachable(yield func(*State) bool) (bool, error) {
	var seen []int
	for i := range s.messages {
		m := &s.messages[i]
		if m.next == nil {
			continue
		}
		t, err := s.proto.resolve(m.next.State, m.span)
		if err != nil {
			return false, err
		}
		if slices.Contains(seen, t.id) {
			continue
		}
		seen = append(seen, t.id)
		if !yield(t) {
			return false, nil
		}
	}
	return true, nil
}
