// Package diag formats compiler diagnostics for a terminal.
package diag

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/you-not-fish/gum/internal/syntax"
)

// A Diagnostic is an error at a source position.
type Diagnostic struct {
	Pos syntax.Pos
	Msg string
	Err error // underlying error, if any
}

func (d *Diagnostic) Error() string {
	if !d.Pos.IsValid() {
		return d.Msg
	}
	return d.Pos.String() + ": " + d.Msg
}

// Unwrap returns the underlying error.
func (d *Diagnostic) Unwrap() error { return d.Err }

// A List collects the diagnostics of one phase.
type List []*Diagnostic

// Add appends a diagnostic. Its signature matches the error handlers of
// the parser and the inference engine.
func (l *List) Add(pos syntax.Pos, msg string) {
	*l = append(*l, &Diagnostic{Pos: pos, Msg: msg})
}

// Sort orders the list by position, keeping the order of diagnostics at
// the same position.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool { return l[i].Pos.Before(l[j].Pos) })
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Unwrap returns the diagnostics as errors.
func (l List) Unwrap() []error {
	errs := make([]error, len(l))
	for i, d := range l {
		errs[i] = d
	}
	return errs
}

// Err returns the list as an error, or nil if it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// ColorMode selects when diagnostics are colored.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses the value of a -color flag.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, errors.Errorf("invalid color mode %q (want auto, always or never)", s)
}

const (
	bold  = "\x1b[1m"
	red   = "\x1b[31m"
	reset = "\x1b[0m"
)

// A Printer writes errors to a stream, one diagnostic per line.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter returns a printer writing to w. In ColorAuto mode, output is
// colored when w is a terminal.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	color := mode == ColorAlways
	if mode == ColorAuto {
		if f, ok := w.(*os.File); ok {
			color = IsTerminal(f.Fd())
		}
	}
	return &Printer{w: w, color: color}
}

// Print writes err. A List, possibly wrapped, is written one diagnostic
// per line; any other error is written as a single line.
func (p *Printer) Print(err error) {
	if err == nil {
		return
	}
	var list List
	if errors.As(err, &list) {
		for _, d := range list {
			p.diagnostic(d)
		}
		return
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		p.diagnostic(d)
		return
	}
	p.line("", err.Error())
}

func (p *Printer) diagnostic(d *Diagnostic) {
	pos := ""
	if d.Pos.IsValid() {
		pos = d.Pos.String()
	}
	p.line(pos, d.Msg)
}

func (p *Printer) line(pos, msg string) {
	var b strings.Builder
	if pos != "" {
		b.WriteString(p.paint(bold, pos+":"))
		b.WriteByte(' ')
	}
	b.WriteString(p.paint(red, "error:"))
	b.WriteByte(' ')
	b.WriteString(msg)
	b.WriteByte('\n')
	io.WriteString(p.w, b.String())
}

func (p *Printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + reset
}
