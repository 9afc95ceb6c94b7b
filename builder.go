// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

// Builder is the mutable phase of a protocol. Front ends append states and
// messages in declaration order, then call Build to obtain an immutable
// Protocol. A Builder is not safe for concurrent use.
type Builder struct {
	name       string
	span       Span
	states     []stateDecl
	bounded    bool
	boundedSet bool
}

type stateDecl struct {
	name     string
	ident    string
	span     Span
	dir      Direction
	generics []TypeParam
	messages []messageDecl
}

type messageDecl struct {
	name    string
	span    Span
	payload []Type
	next    *NextState
}

// New creates an empty protocol builder.
func New(name string, span Span) *Builder {
	return &Builder{name: name, span: span}
}

// Name returns the protocol name.
func (b *Builder) Name() string {
	return b.name
}

// AddStatePoly registers a new state and returns a handle for appending its
// messages. The state's id is the number of states registered before it,
// and its span is the protocol's.
// Names are not checked for uniqueness; see check.Duplicates.
func (b *Builder) AddStatePoly(name, ident string, dir Direction, generics ...TypeParam) *StateBuilder {
	return b.AddStatePolyAt(name, ident, b.span, dir, generics...)
}

// AddStatePolyAt is AddStatePoly for front ends that know where the state
// is declared.
func (b *Builder) AddStatePolyAt(name, ident string, span Span, dir Direction, generics ...TypeParam) *StateBuilder {
	id := len(b.states)
	b.states = append(b.states, stateDecl{
		name:     name,
		ident:    ident,
		span:     span,
		dir:      dir,
		generics: cloneParams(generics),
	})
	return &StateBuilder{b: b, id: id}
}

// AddState registers a non-generic state whose data name is its name.
func (b *Builder) AddState(name string, dir Direction) *StateBuilder {
	return b.AddStatePoly(name, name, dir)
}

// SetBounded records the boundedness of the protocol as determined by the
// front end or by an analysis such as check.Bounded.
func (b *Builder) SetBounded(bounded bool) {
	b.bounded = bounded
	b.boundedSet = true
}

// NumStates returns the number of states registered so far.
func (b *Builder) NumStates() int {
	return len(b.states)
}

// HasState reports whether a state named name is registered so far.
func (b *Builder) HasState(name string) bool {
	return b.find(name) >= 0
}

// State returns the first state registered under name. The lookup always
// reflects the current contents of the builder.
func (b *Builder) State(name string) (*StateBuilder, error) {
	id := b.find(name)
	if id < 0 {
		return nil, &UnknownStateError{Protocol: b.name, Name: name, Span: b.span}
	}
	return &StateBuilder{b: b, id: id}, nil
}

func (b *Builder) find(name string) int {
	for i := range b.states {
		if b.states[i].name == name {
			return i
		}
	}
	return -1
}

// Build freezes the current contents into a Protocol. The result shares no
// memory with the builder: appending to the builder afterwards does not
// change protocols it has already built.
func (b *Builder) Build() *Protocol {
	p := &Protocol{
		name:       b.name,
		span:       b.span,
		bounded:    b.bounded,
		boundedSet: b.boundedSet,
		states:     make([]State, len(b.states)),
		index:      make(map[string]int, len(b.states)),
	}
	for i := range b.states {
		d := &b.states[i]
		s := &p.states[i]
		*s = State{
			proto:    p,
			id:       i,
			name:     d.name,
			ident:    d.ident,
			span:     d.span,
			dir:      d.dir,
			generics: cloneParams(d.generics),
			messages: make([]Message, len(d.messages)),
		}
		for j, m := range d.messages {
			s.messages[j] = Message{
				state:   s,
				name:    m.name,
				span:    m.span,
				payload: cloneTypes(m.payload),
				next:    cloneNext(m.next),
			}
		}
		if _, dup := p.index[d.name]; !dup {
			p.index[d.name] = i
		}
	}
	return p
}

// StateBuilder appends messages to one state of a Builder. It refers to
// the state by id, so handles stay valid as more states are registered.
type StateBuilder struct {
	b  *Builder
	id int
}

// ID returns the state's id, its 0-based registration index.
func (s *StateBuilder) ID() int {
	return s.id
}

// Name returns the state's name.
func (s *StateBuilder) Name() string {
	return s.b.states[s.id].name
}

// Direction returns the state's direction.
func (s *StateBuilder) Direction() Direction {
	return s.b.states[s.id].dir
}

// NumMessages returns the number of messages appended so far.
func (s *StateBuilder) NumMessages() int {
	return len(s.b.states[s.id].messages)
}

// AddMessage appends a message. next is nil for a message that ends the
// session. Nothing is validated: an empty name, a duplicate label or a
// transition to a state that is never registered are all accepted and
// surface only when resolved.
func (s *StateBuilder) AddMessage(name string, span Span, payload []Type, next *NextState) {
	d := &s.b.states[s.id]
	d.messages = append(d.messages, messageDecl{
		name:    name,
		span:    span,
		payload: cloneTypes(payload),
		next:    cloneNext(next),
	})
}
