// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

// Message is one labeled edge of a state: a name, the payload type
// descriptors it carries, and an optional transition.
type Message struct {
	state   *State
	name    string
	span    Span
	payload []Type
	next    *NextState
}

func (m *Message) Name() string {
	return m.name
}

func (m *Message) Span() Span {
	return m.span
}

// Payload returns a copy of the payload type descriptors.
func (m *Message) Payload() []Type {
	return cloneTypes(m.payload)
}

// Arity returns the number of payload values the message carries.
func (m *Message) Arity() int {
	return len(m.payload)
}

// Next returns the transition, or false if the message ends the session.
func (m *Message) Next() (NextState, bool) {
	if m.next == nil {
		return NextState{}, false
	}
	return *cloneNext(m.next), true
}

// State returns the state the message belongs to.
func (m *Message) State() *State {
	return m.state
}

// Generics returns the generic parameters in scope for the message,
// those of its owning state.
func (m *Message) Generics() []TypeParam {
	return m.state.Generics()
}

// Target resolves the transition against the owning protocol. It returns
// (nil, nil) for a message without transition.
func (m *Message) Target() (*State, error) {
	if m.next == nil {
		return nil, nil
	}
	return m.state.proto.resolve(m.next.State, m.span)
}
