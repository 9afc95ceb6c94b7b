// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package check holds the validation passes and analyses that the pipes IR
// leaves to separate collaborators: unresolved transitions, duplicate
// names, direction alternation, unreachable states, multi-hop
// reachability, cycle search and boundedness.
//
// Every pass is optional. Passes report findings as data and never stop at
// the first one, so a front end can print all diagnostics for a protocol
// and carry on with the next.
package check

import (
	"errors"
	"fmt"

	"code.hybscloud.com/pipes"
)

// Severity ranks a diagnostic.
type Severity uint8

const (
	// Error findings make a protocol unusable by back ends.
	Error Severity = iota
	// Warning findings are legal but likely unintended.
	Warning
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is one finding of a pass.
type Diagnostic struct {
	Pass     string
	Severity Severity
	Protocol string
	State    string
	Span     pipes.Span
	Msg      string
	Cause    error // underlying error, if the finding came from one
}

func (d *Diagnostic) Error() string {
	if d.State == "" {
		return fmt.Sprintf("%s: %s: %s: %s: %s", d.Span, d.Severity, d.Pass, d.Protocol, d.Msg)
	}
	return fmt.Sprintf("%s: %s: %s: %s.%s: %s", d.Span, d.Severity, d.Pass, d.Protocol, d.State, d.Msg)
}

func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

// A Pass inspects a protocol and reports findings.
type Pass struct {
	Name string
	Run  func(p *pipes.Protocol) []*Diagnostic
}

// Passes returns every pass in the order Run applies them by default.
func Passes() []Pass {
	return []Pass{Unresolved, Duplicates, Directions, DeadStates}
}

// Lookup returns the pass with the given name.
func Lookup(name string) (Pass, bool) {
	for _, p := range Passes() {
		if p.Name == name {
			return p, true
		}
	}
	return Pass{}, false
}

// Run applies passes to p, or every pass when none is given, and returns
// the findings in pass order.
func Run(p *pipes.Protocol, passes ...Pass) []*Diagnostic {
	if len(passes) == 0 {
		passes = Passes()
	}
	var out []*Diagnostic
	for _, pass := range passes {
		out = append(out, pass.Run(p)...)
	}
	return out
}

// HasErrors reports whether any diagnostic has Error severity.
func HasErrors(ds []*Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Err joins the Error-severity diagnostics into one error, or returns nil.
func Err(ds []*Diagnostic) error {
	var errs []error
	for _, d := range ds {
		if d.Severity == Error {
			errs = append(errs, d)
		}
	}
	return errors.Join(errs...)
}
