// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pipes is an intermediate representation for session-typed,
// directional message-passing protocols, and a bottom-up traversal engine
// that code generators fold into concrete channel implementations.
//
// A protocol is a graph of states. Each state carries a [Direction] and an
// ordered list of labeled messages; a message may name the state reached
// after it is exchanged. Transitions are references by name, so the graph
// may loop forever, refer to itself, or recurse mutually between states.
//
// # Architecture
//
//   - Building: [New] returns a [Builder]. Front ends append states with
//     [Builder.AddStatePoly] and messages with [StateBuilder.AddMessage] in
//     declaration order. Nothing is ever removed or reordered.
//   - Freezing: [Builder.Build] produces an immutable [Protocol]. A built
//     Protocol has no mutators and may be shared by any number of goroutines.
//   - Ownership: a Protocol owns its states in an arena indexed by a dense
//     id; a state owns its messages. The state→protocol back-reference and
//     the message→state transition are non-owning, the latter resolved by
//     name on use.
//   - Generation: [Visit] and [VisitError] fold the ownership tree
//     (protocol → states → messages) and never follow transitions, so they
//     terminate in O(states + messages) regardless of cycles.
//   - Analysis: [State.Reachable] follows transitions one hop. Multi-hop
//     walks, cycle search and boundedness live in package check.
//
// # Errors
//
// Failed lookups return [*UnknownStateError] (matching [ErrUnknownState])
// carrying the missing name and the location of the reference. Reading the
// bounded flag before a front end has supplied it returns
// [ErrMissingBoundedFlag]. Neither condition aborts the process, so one
// malformed declaration does not prevent unrelated protocols from being
// processed.
//
// # Example
//
//	b := pipes.New("pingpong", pipes.Span{})
//	ping := b.AddState("Ping", pipes.Send)
//	pong := b.AddState("Pong", pipes.Recv)
//	ping.AddMessage("ping", pipes.Span{}, nil, &pipes.NextState{State: "Pong"})
//	pong.AddMessage("pong", pipes.Span{}, nil, &pipes.NextState{State: "Ping"})
//	b.SetBounded(false)
//	p := b.Build()
//	s, _ := p.State("Ping")
//	s.Reachable(func(t *pipes.State) bool {
//		fmt.Println(t.Name()) // Pong
//		return true
//	})
package pipes
