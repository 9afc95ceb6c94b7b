// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package check

import (
	"slices"

	"code.hybscloud.com/pipes"
)

// graph is the transition graph of a protocol as adjacency lists of state
// ids, in message declaration order without duplicates. A strict graph
// resolves a state's transitions with State.Reachable the first time a
// walk leaves that state, so only visited states can fail.
type graph struct {
	p      *pipes.Protocol
	succ   [][]int
	known  []bool
	strict bool
}

func strictGraph(p *pipes.Protocol) *graph {
	n := p.NumStates()
	return &graph{p: p, succ: make([][]int, n), known: make([]bool, n), strict: true}
}

// looseGraph builds the graph skipping unresolved transitions. Passes use
// it so that one broken reference is reported once, by Unresolved.
func looseGraph(p *pipes.Protocol) *graph {
	g := &graph{p: p, succ: make([][]int, p.NumStates()), known: make([]bool, p.NumStates())}
	for s := range p.States() {
		var out []int
		for _, m := range s.Messages() {
			t, err := m.Target()
			if err != nil || t == nil {
				continue
			}
			if !slices.Contains(out, t.ID()) {
				out = append(out, t.ID())
			}
		}
		g.succ[s.ID()] = out
		g.known[s.ID()] = true
	}
	return g
}

// next returns the successors of id, resolving them on first use.
func (g *graph) next(id int) ([]int, error) {
	if g.known[id] {
		return g.succ[id], nil
	}
	s, err := g.p.StateByID(id)
	if err != nil {
		return nil, err
	}
	var out []int
	if _, err := s.Reachable(func(t *pipes.State) bool {
		out = append(out, t.ID())
		return true
	}); err != nil {
		return nil, err
	}
	g.succ[id] = out
	g.known[id] = true
	return out, nil
}

// reach returns from and every state reachable from it, breadth first.
func (g *graph) reach(from int) ([]int, error) {
	seen := make([]bool, len(g.succ))
	seen[from] = true
	order := []int{from}
	for i := 0; i < len(order); i++ {
		succ, err := g.next(order[i])
		if err != nil {
			return nil, err
		}
		for _, t := range succ {
			if !seen[t] {
				seen[t] = true
				order = append(order, t)
			}
		}
	}
	return order, nil
}

type frame struct {
	id   int
	next int
}

// cycles runs an iterative depth-first search from each root in order and
// returns one cycle per back edge, as the state ids on the search stack
// from the edge's target to its source. stopFirst ends the search at the
// first cycle found.
func (g *graph) cycles(roots []int, stopFirst bool) ([][]int, error) {
	const (
		white = iota
		grey
		black
	)
	color := make([]uint8, len(g.succ))
	var found [][]int
	var stack []frame
	for _, root := range roots {
		if color[root] != white {
			continue
		}
		color[root] = grey
		stack = append(stack[:0], frame{id: root})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ, err := g.next(top.id)
			if err != nil {
				return nil, err
			}
			if top.next == len(succ) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			t := succ[top.next]
			top.next++
			switch color[t] {
			case white:
				color[t] = grey
				stack = append(stack, frame{id: t})
			case grey:
				found = append(found, cyclePath(stack, t))
				if stopFirst {
					return found, nil
				}
			}
		}
	}
	return found, nil
}

func cyclePath(stack []frame, start int) []int {
	for i := range stack {
		if stack[i].id == start {
			path := make([]int, 0, len(stack)-i)
			for _, f := range stack[i:] {
				path = append(path, f.id)
			}
			return path
		}
	}
	return nil
}

func (g *graph) states(ids []int) []*pipes.State {
	out := make([]*pipes.State, len(ids))
	for i, id := range ids {
		out[i], _ = g.p.StateByID(id)
	}
	return out
}
