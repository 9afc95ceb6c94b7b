// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/scott-cotton/cli"

	"code.hybscloud.com/pipes"
	pcheck "code.hybscloud.com/pipes/check"
)

func testConfig() *MainConfig {
	return &MainConfig{Log: zerolog.Nop()}
}

func TestDumpTable(t *testing.T) {
	ps, err := loadAll(testConfig(), nil, []string{"testdata/pingpong.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := dumpProtocols(&buf, ps); err != nil {
		t.Fatal(err)
	}
	want := `protocol pingpong bounded=false at testdata/pingpong.yaml:2:5
  0 Ping send
    ping(int) -> Pong
  1 Pong recv
    pong(int) -> Ping
    stop -> end

protocol box bounded=true at testdata/pingpong.yaml:17:5
  0 Put[T] send
    put(T) -> Take[T]
  1 Take[T] recv
    take(T) -> end
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestDumpTerminal(t *testing.T) {
	b := pipes.New("idle", pipes.Span{})
	b.AddState("Idle", pipes.Recv)
	got := table(b.Build())
	want := "protocol idle\n  0 Idle recv (terminal)\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReachAll(t *testing.T) {
	ps, err := loadAll(testConfig(), nil, []string{"testdata/pingpong.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := reachAll(&buf, ps, "", "Pong"); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "pingpong: Pong Ping\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	buf.Reset()
	if err := reachAll(&buf, ps, "box", "Put"); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "box: Put Take\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if err := reachAll(&buf, ps, "box", "Ping"); !errors.Is(err, errNoMatch) {
		t.Fatalf("got %v, want errNoMatch", err)
	}
}

func TestLoadAllStdin(t *testing.T) {
	src := "protocols:\n  - name: one\n    states:\n      - name: S\n        dir: send\n"
	ps, err := loadAll(testConfig(), strings.NewReader(src), nil)
	if err != nil || len(ps) != 1 {
		t.Fatalf("got %d, %v", len(ps), err)
	}
	if got := ps[0].Span().File; got != "<stdin>" {
		t.Fatalf("file got %q", got)
	}

	_, err = loadAll(testConfig(), nil, []string{"testdata/missing.yaml"})
	if err == nil || !strings.Contains(err.Error(), "error loading testdata/missing.yaml") {
		t.Fatalf("got %v", err)
	}
}

func TestSelectPasses(t *testing.T) {
	cfg := &CheckConfig{MainConfig: testConfig(), Passes: "unresolved, dead-states,"}
	passes, err := selectPasses(cfg.passNames())
	if err != nil {
		t.Fatal(err)
	}
	if len(passes) != 2 || passes[0].Name != "unresolved" || passes[1].Name != "dead-states" {
		t.Fatalf("got %v", passes)
	}
	if _, err := selectPasses([]string{"bogus"}); !errors.Is(err, cli.ErrUsage) {
		t.Fatalf("got %v, want ErrUsage", err)
	}
	if passes, err := selectPasses((&CheckConfig{}).passNames()); err != nil || passes != nil {
		t.Fatalf("default got %v, %v", passes, err)
	}
}

func TestPrinterReport(t *testing.T) {
	b := pipes.New("p", pipes.Span{File: "p.yaml", Line: 1, Column: 3})
	b.AddState("A", pipes.Send).AddMessage("go", pipes.Span{File: "p.yaml", Line: 4, Column: 9}, nil, &pipes.NextState{State: "B"})
	proto := b.Build()

	var buf bytes.Buffer
	p := newPrinter(&buf, false)
	p.report(proto, pcheck.Run(proto))
	want := "p.yaml:4:9: error: unresolved: p.A: message \"go\" transitions to unknown state \"B\"\n" +
		"p: 1 error(s), 0 warning(s)\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	buf.Reset()
	clean := pipes.New("clean", pipes.Span{})
	clean.AddState("S", pipes.Send)
	proto = clean.Build()
	p.report(proto, pcheck.Run(proto))
	if got := buf.String(); got != "ok clean\n" {
		t.Fatalf("got %q", got)
	}
}

func TestColorize(t *testing.T) {
	cfg := testConfig()
	var buf bytes.Buffer
	if cfg.colorize(&buf) {
		t.Fatal("buffer should not be colored by default")
	}
	cfg.Color = true
	if !cfg.colorize(&buf) {
		t.Fatal("-color should force color")
	}
}
