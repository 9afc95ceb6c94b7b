// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package decl

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"code.hybscloud.com/pipes"
	"code.hybscloud.com/pipes/check"
)

// Option configures Load.
type Option func(*loader)

// WithLogger sets the logger Load reports progress to. The default
// discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(l *loader) { l.log = log }
}

// WithStrict makes Load run the default check passes on every protocol and
// reject those with error diagnostics.
func WithStrict(strict bool) Option {
	return func(l *loader) { l.strict = strict }
}

// WithFilename sets the file name recorded in spans.
func WithFilename(name string) Option {
	return func(l *loader) { l.file = name }
}

type loader struct {
	log    zerolog.Logger
	strict bool
	file   string
}

// LoadFile is Load on the named file, with spans naming path.
func LoadFile(path string, opts ...Option) ([]*pipes.Protocol, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, append([]Option{WithFilename(path)}, opts...)...)
}

// Load decodes a declaration document and builds its protocols in order.
// It returns the protocols that built, and an errors.Join of a *DeclError
// for each one that did not. A document that is not valid YAML yields no
// protocols.
func Load(r io.Reader, opts ...Option) ([]*pipes.Protocol, error) {
	l := &loader{log: zerolog.Nop()}
	for _, o := range opts {
		o(l)
	}

	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decl: %s: %w", l.name(), err)
	}

	var (
		out  []*pipes.Protocol
		errs []error
		seen = make(map[string]bool, len(doc.Protocols))
	)
	for i := range doc.Protocols {
		node := &doc.Protocols[i]
		var d protoDecl
		if err := node.Decode(&d); err != nil {
			errs = append(errs, &DeclError{Span: l.span(node.Line, node.Column), Err: err})
			continue
		}
		if seen[d.Name] {
			errs = append(errs, &DeclError{Protocol: d.Name, Span: l.span(d.line, d.column), Err: ErrDuplicateProtocol})
			continue
		}
		p, err := l.build(&d)
		if err != nil {
			l.log.Warn().Err(err).Msg("skipping protocol")
			errs = append(errs, err)
			continue
		}
		seen[d.Name] = true
		out = append(out, p)
	}
	return out, errors.Join(errs...)
}

func (l *loader) name() string {
	if l.file == "" {
		return "<input>"
	}
	return l.file
}

func (l *loader) span(line, column int) pipes.Span {
	return pipes.Span{File: l.file, Line: line, Column: column}
}

func (l *loader) build(d *protoDecl) (*pipes.Protocol, error) {
	at := l.span(d.line, d.column)
	fail := func(span pipes.Span, err error) (*pipes.Protocol, error) {
		return nil, &DeclError{Protocol: d.Name, Span: span, Err: err}
	}
	if d.Name == "" {
		return fail(at, ErrMissingName)
	}

	b := pipes.New(d.Name, at)
	for i := range d.States {
		sd := &d.States[i]
		sat := l.span(sd.line, sd.column)
		if sd.Name == "" {
			return fail(sat, fmt.Errorf("state #%d: %w", i, ErrMissingName))
		}
		dir, ok := parseDirection(sd.Dir)
		if !ok {
			return fail(sat, fmt.Errorf("state %s: %w, got %q", sd.Name, ErrBadDirection, sd.Dir))
		}
		var generics []pipes.TypeParam
		for _, g := range sd.Generics {
			tp, ok := parseTypeParam(g)
			if !ok {
				return fail(sat, fmt.Errorf("state %s: %w %q", sd.Name, ErrBadTypeParam, g))
			}
			generics = append(generics, tp)
		}
		ident := sd.Ident
		if ident == "" {
			ident = sd.Name
		}
		sb := b.AddStatePolyAt(sd.Name, ident, sat, dir, generics...)
		for j := range sd.Messages {
			md := &sd.Messages[j]
			mat := l.span(md.line, md.column)
			if md.Name == "" {
				return fail(mat, fmt.Errorf("state %s message #%d: %w", sd.Name, j, ErrMissingName))
			}
			if md.Next == "" && len(md.Args) > 0 {
				return fail(mat, fmt.Errorf("state %s message %s: %w", sd.Name, md.Name, ErrArgsWithoutNext))
			}
			var next *pipes.NextState
			if md.Next != "" {
				next = &pipes.NextState{State: md.Next, Args: types(md.Args)}
			}
			sb.AddMessage(md.Name, mat, types(md.Payload), next)
		}
	}

	if d.Bounded != nil {
		b.SetBounded(*d.Bounded)
	} else if bounded, err := check.Bounded(b.Build()); err == nil {
		b.SetBounded(bounded)
	} else {
		// Left unset; IsBounded reports it.
		l.log.Debug().Str("protocol", d.Name).Err(err).Msg("bounded flag not computed")
	}
	p := b.Build()

	if l.strict {
		ds := check.Run(p)
		for _, diag := range ds {
			l.log.Debug().Str("protocol", d.Name).Str("pass", diag.Pass).Msg(diag.Msg)
		}
		if err := check.Err(ds); err != nil {
			return fail(at, fmt.Errorf("%w: %w", ErrCheckFailed, err))
		}
	}

	bounded, _ := p.IsBounded()
	l.log.Debug().
		Str("protocol", p.Name()).
		Int("states", p.NumStates()).
		Bool("bounded", bounded).
		Bool("generic", p.HasTypeParams()).
		Msg("loaded protocol")
	return p, nil
}
