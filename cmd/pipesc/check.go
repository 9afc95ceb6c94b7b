// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"code.hybscloud.com/pipes"
	pcheck "code.hybscloud.com/pipes/check"
)

var errFindings = errors.New("check found errors")

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	passes, err := selectPasses(cfg.passNames())
	if err != nil {
		return err
	}
	ps, loadErr := loadAll(cfg.MainConfig, cc.In, args)
	p := newPrinter(cc.Out, cfg.colorize(cc.Out))
	failed := loadErr != nil
	if loadErr != nil {
		p.loadError(loadErr)
	}
	for _, proto := range ps {
		ds := pcheck.Run(proto, passes...)
		if pcheck.HasErrors(ds) {
			failed = true
		}
		p.report(proto, ds)
	}
	if failed {
		return errFindings
	}
	return nil
}

func selectPasses(names []string) ([]pcheck.Pass, error) {
	var passes []pcheck.Pass
	for _, name := range names {
		pass, ok := pcheck.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown pass %q", cli.ErrUsage, name)
		}
		passes = append(passes, pass)
	}
	return passes, nil
}

// printer writes diagnostics, coloring severities when enabled.
type printer struct {
	w             io.Writer
	err, warn, ok *color.Color
}

func newPrinter(w io.Writer, colorize bool) *printer {
	p := &printer{
		w:    w,
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow),
		ok:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.ok} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) severity(s pcheck.Severity) string {
	if s == pcheck.Error {
		return p.err.Sprint(s)
	}
	return p.warn.Sprint(s)
}

func (p *printer) report(proto *pipes.Protocol, ds []*pcheck.Diagnostic) {
	errs, warns := 0, 0
	for _, d := range ds {
		where := d.Protocol
		if d.State != "" {
			where += "." + d.State
		}
		fmt.Fprintf(p.w, "%s: %s: %s: %s: %s\n", d.Span, p.severity(d.Severity), d.Pass, where, d.Msg)
		if d.Severity == pcheck.Error {
			errs++
		} else {
			warns++
		}
	}
	if len(ds) == 0 {
		fmt.Fprintf(p.w, "%s %s\n", p.ok.Sprint("ok"), proto.Name())
		return
	}
	fmt.Fprintf(p.w, "%s: %d error(s), %d warning(s)\n", proto.Name(), errs, warns)
}

func (p *printer) loadError(err error) {
	fmt.Fprintf(p.w, "%s: %v\n", p.err.Sprint("error"), err)
}
