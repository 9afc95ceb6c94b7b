// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package check

import (
	"code.hybscloud.com/pipes"
)

// Reach returns from followed by every state reachable from it through any
// number of transitions, in breadth-first order. It drives State.Reachable
// one hop at a time with its own visited set, so cyclic protocols
// terminate. An unresolved transition out of a state the walk reaches is
// an error; states it never reaches are not inspected.
func Reach(p *pipes.Protocol, from *pipes.State) ([]*pipes.State, error) {
	if from == nil || from.Protocol() != p {
		name := "<nil>"
		if from != nil {
			name = from.Name()
		}
		return nil, &pipes.UnknownStateError{Protocol: p.Name(), Name: name, Span: p.Span()}
	}
	g := strictGraph(p)
	ids, err := g.reach(from.ID())
	if err != nil {
		return nil, err
	}
	return g.states(ids), nil
}

// Cycles returns the cycles of p's transition graph, one per back edge of
// a depth-first search started from each state in id order. Each cycle
// lists its states in transition order; a self-loop is a cycle of one.
// Every state is a root, so any unresolved transition is an error.
func Cycles(p *pipes.Protocol) ([][]*pipes.State, error) {
	g := strictGraph(p)
	roots := make([]int, p.NumStates())
	for i := range roots {
		roots[i] = i
	}
	cs, err := g.cycles(roots, false)
	if err != nil {
		return nil, err
	}
	var out [][]*pipes.State
	for _, c := range cs {
		out = append(out, g.states(c))
	}
	return out, nil
}

// Bounded reports whether no cycle is reachable from the start state,
// state 0, so that every session following p terminates. A protocol
// without states is bounded. Only transitions out of states reachable from
// the start are resolved. The result is meant for Builder.SetBounded.
func Bounded(p *pipes.Protocol) (bool, error) {
	if p.NumStates() == 0 {
		return true, nil
	}
	cs, err := strictGraph(p).cycles([]int{0}, true)
	if err != nil {
		return false, err
	}
	return len(cs) == 0, nil
}
