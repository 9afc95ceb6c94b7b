// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes_test

import "code.hybscloud.com/pipes"

// to builds a transition to the named state.
func to(name string, args ...pipes.Type) *pipes.NextState {
	return &pipes.NextState{State: name, Args: args}
}

// pingPong builds Ping(Send) -ping-> Pong(Recv) -pong-> Ping.
// The bounded flag is left unset.
func pingPong() *pipes.Builder {
	b := pipes.New("pingpong", pipes.Span{File: "pingpong.yaml", Line: 1, Column: 1})
	ping := b.AddState("Ping", pipes.Send)
	pong := b.AddState("Pong", pipes.Recv)
	ping.AddMessage("ping", pipes.Span{File: "pingpong.yaml", Line: 4, Column: 9}, nil, to("Pong"))
	pong.AddMessage("pong", pipes.Span{File: "pingpong.yaml", Line: 8, Column: 9}, nil, to("Ping"))
	return b
}

// mustState looks up name and panics if it is missing.
func mustState(p *pipes.Protocol, name string) *pipes.State {
	s, err := p.State(name)
	if err != nil {
		panic(err)
	}
	return s
}

// reached collects the one-hop targets of s.
func reached(s *pipes.State) ([]string, error) {
	var names []string
	_, err := s.Reachable(func(t *pipes.State) bool {
		names = append(names, t.Name())
		return true
	})
	return names, err
}
