// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decl

import (
	"errors"
	"fmt"

	"code.hybscloud.com/pipes"
)

var (
	ErrMissingName       = errors.New("decl: missing name")
	ErrBadDirection      = errors.New("decl: direction must be send or recv")
	ErrBadTypeParam      = errors.New("decl: malformed type parameter")
	ErrDuplicateProtocol = errors.New("decl: duplicate protocol")
	ErrCheckFailed       = errors.New("decl: check failed")
	ErrArgsWithoutNext   = errors.New("decl: args given without next")
)

// DeclError reports why one protocol of a declaration file was skipped.
type DeclError struct {
	Protocol string // empty when the protocol has no usable name
	Span     pipes.Span
	Err      error
}

func (e *DeclError) Error() string {
	if e.Protocol == "" {
		return fmt.Sprintf("%s: %v", e.Span, e.Err)
	}
	return fmt.Sprintf("%s: protocol %s: %v", e.Span, e.Protocol, e.Err)
}

func (e *DeclError) Unwrap() error {
	return e.Err
}
