// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package decl reads protocol declarations from YAML and replays them as
// [pipes.Builder] calls.
//
// A declaration file holds a list of protocols:
//
//	protocols:
//	  - name: pingpong
//	    bounded: false     # optional; computed with check.Bounded when absent
//	    states:
//	      - name: Ping
//	        dir: send      # send | recv
//	        generics: [T]  # "T" or "T: Bound + Bound"
//	        messages:
//	          - name: ping
//	            payload: [T]
//	            next: Pong
//	            args: [T]
//
// Positions of the YAML nodes become [pipes.Span] values. Each protocol is
// decoded and built on its own: a malformed protocol is reported as a
// [*DeclError] and never keeps the others from loading.
package decl

import (
	"strings"

	"gopkg.in/yaml.v3"

	"code.hybscloud.com/pipes"
)

// file is the document root.
type file struct {
	Protocols []yaml.Node `yaml:"protocols"`
}

type protoDecl struct {
	Name    string      `yaml:"name"`
	Bounded *bool       `yaml:"bounded"`
	States  []stateDecl `yaml:"states"`

	line, column int
}

type stateDecl struct {
	Name     string        `yaml:"name"`
	Ident    string        `yaml:"ident"`
	Dir      string        `yaml:"dir"`
	Generics []string      `yaml:"generics"`
	Messages []messageDecl `yaml:"messages"`

	line, column int
}

type messageDecl struct {
	Name    string   `yaml:"name"`
	Payload []string `yaml:"payload"`
	Next    string   `yaml:"next"`
	Args    []string `yaml:"args"`

	line, column int
}

func (d *protoDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain protoDecl
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.line, d.column = value.Line, value.Column
	return nil
}

func (d *stateDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain stateDecl
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.line, d.column = value.Line, value.Column
	return nil
}

func (d *messageDecl) UnmarshalYAML(value *yaml.Node) error {
	type plain messageDecl
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.line, d.column = value.Line, value.Column
	return nil
}

func parseDirection(s string) (pipes.Direction, bool) {
	switch strings.ToLower(s) {
	case "send", "!":
		return pipes.Send, true
	case "recv", "receive", "?":
		return pipes.Recv, true
	}
	return 0, false
}

// parseTypeParam reads "T" or "T: A + B".
func parseTypeParam(s string) (pipes.TypeParam, bool) {
	name, bounds, found := strings.Cut(s, ":")
	tp := pipes.TypeParam{Name: strings.TrimSpace(name)}
	if tp.Name == "" {
		return tp, false
	}
	if !found {
		return tp, true
	}
	for b := range strings.SplitSeq(bounds, "+") {
		b = strings.TrimSpace(b)
		if b == "" {
			return tp, false
		}
		tp.Bounds = append(tp.Bounds, b)
	}
	return tp, true
}

func types(ss []string) []pipes.Type {
	if len(ss) == 0 {
		return nil
	}
	out := make([]pipes.Type, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
