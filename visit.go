// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

// Visitor produces a generator result bottom-up: one M per message, one S
// per state from its messages' results, and one P from the states' results.
//
// Payload and next are copies owned by the callee. this is the owning
// state; producers may query it but must not retain assumptions about
// traversal order beyond the guarantees of Visit.
type Visitor[P, S, M any] interface {
	VisitMessage(name string, span Span, payload []Type, this *State, next *NextState) M
	VisitState(state *State, messages []M) S
	VisitProto(proto *Protocol, states []S) P
}

// ErrorVisitor is a Visitor whose producers may fail.
type ErrorVisitor[P, S, M any] interface {
	VisitMessage(name string, span Span, payload []Type, this *State, next *NextState) (M, error)
	VisitState(state *State, messages []M) (S, error)
	VisitProto(proto *Protocol, states []S) (P, error)
}

// Visit folds p into a result. States are visited in id order and the
// messages of each state in declaration order; the results of a state's
// messages are complete before the state is visited, and all states before
// the protocol. Transitions are passed through as data and never followed,
// so Visit terminates in O(states + messages) for any transition graph.
func Visit[P, S, M any](p *Protocol, v Visitor[P, S, M]) P {
	states := make([]S, len(p.states))
	for i := range p.states {
		s := &p.states[i]
		msgs := make([]M, len(s.messages))
		for j := range s.messages {
			m := &s.messages[j]
			msgs[j] = v.VisitMessage(m.name, m.span, cloneTypes(m.payload), s, cloneNext(m.next))
		}
		states[i] = v.VisitState(s, msgs)
	}
	return v.VisitProto(p, states)
}

// VisitError is Visit for producers that may fail. It stops at the first
// error and returns it wrapped in a *TraversalError.
func VisitError[P, S, M any](p *Protocol, v ErrorVisitor[P, S, M]) (P, error) {
	var zero P
	states := make([]S, len(p.states))
	for i := range p.states {
		s := &p.states[i]
		msgs := make([]M, len(s.messages))
		for j := range s.messages {
			m := &s.messages[j]
			r, err := v.VisitMessage(m.name, m.span, cloneTypes(m.payload), s, cloneNext(m.next))
			if err != nil {
				return zero, &TraversalError{Protocol: p.name, State: i, Message: j, Err: err}
			}
			msgs[j] = r
		}
		r, err := v.VisitState(s, msgs)
		if err != nil {
			return zero, &TraversalError{Protocol: p.name, State: i, Message: -1, Err: err}
		}
		states[i] = r
	}
	r, err := v.VisitProto(p, states)
	if err != nil {
		return zero, &TraversalError{Protocol: p.name, State: -1, Message: -1, Err: err}
	}
	return r, nil
}

// VisitFuncs adapts three closures to Visitor. A nil closure produces the
// zero value.
type VisitFuncs[P, S, M any] struct {
	Message func(name string, span Span, payload []Type, this *State, next *NextState) M
	State   func(state *State, messages []M) S
	Proto   func(proto *Protocol, states []S) P
}

func (f VisitFuncs[P, S, M]) VisitMessage(name string, span Span, payload []Type, this *State, next *NextState) M {
	if f.Message == nil {
		var zero M
		return zero
	}
	return f.Message(name, span, payload, this, next)
}

func (f VisitFuncs[P, S, M]) VisitState(state *State, messages []M) S {
	if f.State == nil {
		var zero S
		return zero
	}
	return f.State(state, messages)
}

func (f VisitFuncs[P, S, M]) VisitProto(proto *Protocol, states []S) P {
	if f.Proto == nil {
		var zero P
		return zero
	}
	return f.Proto(proto, states)
}
