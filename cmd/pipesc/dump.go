// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"code.hybscloud.com/pipes"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	ps, loadErr := loadAll(cfg.MainConfig, cc.In, args)
	if err := dumpProtocols(cc.Out, ps); err != nil {
		return err
	}
	return loadErr
}

func dumpProtocols(w io.Writer, ps []*pipes.Protocol) error {
	for i, p := range ps {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, table(p)); err != nil {
			return fmt.Errorf("error writing %s: %w", p.Name(), err)
		}
	}
	return nil
}

// table renders p as a state table, one state per block and one message
// per line.
func table(p *pipes.Protocol) string {
	return pipes.Visit[string, string, string](p, pipes.VisitFuncs[string, string, string]{
		Message: func(name string, _ pipes.Span, payload []pipes.Type, _ *pipes.State, next *pipes.NextState) string {
			var sb strings.Builder
			sb.WriteString("    ")
			sb.WriteString(name)
			if len(payload) > 0 {
				sb.WriteByte('(')
				for i, t := range payload {
					if i > 0 {
						sb.WriteString(", ")
					}
					fmt.Fprint(&sb, t)
				}
				sb.WriteByte(')')
			}
			sb.WriteString(" -> ")
			if next == nil {
				sb.WriteString("end")
			} else {
				sb.WriteString(next.String())
			}
			sb.WriteByte('\n')
			return sb.String()
		},
		State: func(s *pipes.State, messages []string) string {
			var sb strings.Builder
			fmt.Fprintf(&sb, "  %d %s %s", s.ID(), s.TypeName(), strings.ToLower(s.Direction().String()))
			if s.IsTerminal() {
				sb.WriteString(" (terminal)")
			}
			sb.WriteByte('\n')
			for _, m := range messages {
				sb.WriteString(m)
			}
			return sb.String()
		},
		Proto: func(p *pipes.Protocol, states []string) string {
			var sb strings.Builder
			fmt.Fprintf(&sb, "protocol %s", p.Name())
			if bounded, err := p.IsBounded(); err == nil {
				fmt.Fprintf(&sb, " bounded=%t", bounded)
			}
			if !p.Span().IsZero() {
				fmt.Fprintf(&sb, " at %s", p.Span())
			}
			sb.WriteByte('\n')
			for _, s := range states {
				sb.WriteString(s)
			}
			return sb.String()
		},
	})
}
