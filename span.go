// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"fmt"
	"strings"
)

// Span identifies where a construct was declared. It is carried through the
// IR for diagnostics only and is never interpreted.
type Span struct {
	File   string
	Line   int
	Column int
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) String() string {
	switch {
	case s.IsZero():
		return "-"
	case s.Line == 0:
		return s.File
	case s.File == "":
		return fmt.Sprintf("%d:%d", s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// Type is an opaque payload type descriptor. Front ends store whatever
// representation their back ends understand; the IR never inspects it.
type Type = any

// TypeParam describes one generic parameter of a state.
type TypeParam struct {
	Name   string
	Bounds []Type
}

// NextState is a transition: the name of the state reached after a message
// is exchanged, and the type arguments instantiating that state's generics.
// The name is resolved lazily against the owning protocol.
type NextState struct {
	State string
	Args  []Type
}

func (n NextState) String() string {
	if len(n.Args) == 0 {
		return n.State
	}
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = fmt.Sprint(a)
	}
	return n.State + "[" + strings.Join(args, ", ") + "]"
}

func cloneNext(n *NextState) *NextState {
	if n == nil {
		return nil
	}
	return &NextState{State: n.State, Args: cloneTypes(n.Args)}
}

func cloneTypes(ts []Type) []Type {
	if len(ts) == 0 {
		return nil
	}
	return append([]Type(nil), ts...)
}

func cloneParams(ps []TypeParam) []TypeParam {
	if len(ps) == 0 {
		return nil
	}
	out := make([]TypeParam, len(ps))
	for i, p := range ps {
		out[i] = TypeParam{Name: p.Name, Bounds: cloneTypes(p.Bounds)}
	}
	return out
}
