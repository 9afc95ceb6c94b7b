// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipes

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownState is matched by every failed state lookup,
	// including unresolved transitions.
	ErrUnknownState = errors.New("pipes: unknown state")

	// ErrMissingBoundedFlag is returned by IsBounded when no front end or
	// analysis has supplied the flag.
	ErrMissingBoundedFlag = errors.New("pipes: bounded flag not set")
)

// UnknownStateError reports a lookup for a state name that is not
// registered in the protocol. Span is the location of the reference when
// it came from a transition, otherwise the protocol's own location.
type UnknownStateError struct {
	Protocol string
	Name     string
	Span     Span
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("%s: protocol %s: unknown state %q", e.Span, e.Protocol, e.Name)
}

func (e *UnknownStateError) Unwrap() error {
	return ErrUnknownState
}

// TraversalError wraps an error returned by an ErrorVisitor producer with the
// position in the ownership tree where it happened. State is -1 for an
// error from VisitProto; Message is -1 for errors outside VisitMessage.
type TraversalError struct {
	Protocol string
	State    int
	Message  int
	Err      error
}

func (e *TraversalError) Error() string {
	switch {
	case e.State < 0:
		return fmt.Sprintf("pipes: visit %s: %v", e.Protocol, e.Err)
	case e.Message < 0:
		return fmt.Sprintf("pipes: visit %s state %d: %v", e.Protocol, e.State, e.Err)
	}
	return fmt.Sprintf("pipes: visit %s state %d message %d: %v", e.Protocol, e.State, e.Message, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}
