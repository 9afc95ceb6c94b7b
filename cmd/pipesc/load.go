// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"

	"code.hybscloud.com/pipes"
	"code.hybscloud.com/pipes/decl"
)

// loadAll loads every file, or in when files is empty or "-". Protocols that
// load are returned even when others fail.
func loadAll(cfg *MainConfig, in io.Reader, files []string) ([]*pipes.Protocol, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	var (
		out  []*pipes.Protocol
		errs []error
	)
	for _, file := range files {
		var (
			ps  []*pipes.Protocol
			err error
		)
		if file == "-" {
			ps, err = decl.Load(in, append(cfg.declOpts(), decl.WithFilename("<stdin>"))...)
		} else {
			ps, err = decl.LoadFile(file, cfg.declOpts()...)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("error loading %s: %w", file, err))
		}
		cfg.Log.Debug().Str("file", file).Int("protocols", len(ps)).Msg("loaded")
		out = append(out, ps...)
	}
	return out, errors.Join(errs...)
}
