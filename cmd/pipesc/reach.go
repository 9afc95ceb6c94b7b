// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"code.hybscloud.com/pipes"
	pcheck "code.hybscloud.com/pipes/check"
)

var errNoMatch = errors.New("no protocol has the state")

func reach(cfg *ReachConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Reach.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.From == "" {
		return fmt.Errorf("%w: -from is required", cli.ErrUsage)
	}
	ps, loadErr := loadAll(cfg.MainConfig, cc.In, args)
	if err := reachAll(cc.Out, ps, cfg.Proto, cfg.From); err != nil {
		return errors.Join(err, loadErr)
	}
	return loadErr
}

// reachAll prints, for each protocol declaring from (restricted to proto
// when set), the states a session in from can get to.
func reachAll(w io.Writer, ps []*pipes.Protocol, proto, from string) error {
	matched := false
	for _, p := range ps {
		if proto != "" && p.Name() != proto {
			continue
		}
		start, err := p.State(from)
		if err != nil {
			continue
		}
		matched = true
		states, err := pcheck.Reach(p, start)
		if err != nil {
			return err
		}
		names := make([]string, len(states))
		for i, s := range states {
			names[i] = s.Name()
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", p.Name(), strings.Join(names, " ")); err != nil {
			return err
		}
	}
	if !matched {
		return fmt.Errorf("%w %q", errNoMatch, from)
	}
	return nil
}
