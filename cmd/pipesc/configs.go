// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/scott-cotton/cli"

	"code.hybscloud.com/pipes/decl"
)

type MainConfig struct {
	Verbose bool `cli:"name=v desc='log at debug level'"`
	Color   bool `cli:"name=color desc='color diagnostics'"`
	Strict  bool `cli:"name=strict desc='reject protocols with error diagnostics while loading'"`

	Log zerolog.Logger

	Main *cli.Command
}

// colorize reports whether output to w should be colored: when asked for,
// or when w is a terminal.
func (cfg *MainConfig) colorize(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (cfg *MainConfig) declOpts() []decl.Option {
	return []decl.Option{
		decl.WithLogger(cfg.Log),
		decl.WithStrict(cfg.Strict),
	}
}

type CheckConfig struct {
	*MainConfig
	Passes string `cli:"name=passes desc='comma separated pass names (default all)'"`
	Check  *cli.Command
}

func (cfg *CheckConfig) passNames() []string {
	if cfg.Passes == "" {
		return nil
	}
	var names []string
	for name := range strings.SplitSeq(cfg.Passes, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

type DumpConfig struct {
	*MainConfig
	Dump *cli.Command
}

type ReachConfig struct {
	*MainConfig
	From  string `cli:"name=from desc='state to start from'"`
	Proto string `cli:"name=proto desc='only this protocol'"`
	Reach *cli.Command
}
