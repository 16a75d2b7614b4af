package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/gum/internal/driver"
	"github.com/you-not-fish/gum/internal/syntax"
)

const (
	historyFile = ".gumc_history"
	promptMain  = "gum> "
	promptCont  = "...  "
	replName    = "<repl>"
)

const replHelp = `Each entry is translated as a whole program.
REPL commands:
  :types   Toggle between C output and binding types
  :quit    Exit the REPL
`

// runREPL reads programs interactively and prints their translation.
func runREPL() int {
	p := printer()
	tc, err := driver.Load(config())
	if err != nil {
		p.Print(err)
		return 1
	}

	fmt.Printf("gum %s REPL (runtime %s)\n", Version, tc.Version)
	fmt.Print(replHelp)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	showTypes := false
	for {
		src, ok := readEntry(ln)
		if !ok {
			fmt.Println()
			return 0
		}

		switch cmd := strings.TrimSpace(src); {
		case cmd == "":
			continue
		case cmd == ":quit":
			return 0
		case cmd == ":types":
			showTypes = !showTypes
			continue
		case strings.HasPrefix(cmd, ":"):
			fmt.Print(replHelp)
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		u, err := tc.Compile(replName, []byte(src))
		if err != nil {
			p.Print(err)
			continue
		}
		if showTypes {
			_ = u.WriteTypes(os.Stdout)
			continue
		}
		os.Stdout.Write(u.C)
	}
}

// readEntry reads lines until brackets balance. It reports false at end
// of input.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C drops the entry
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src has unclosed brackets.
func incomplete(src string) bool {
	s := syntax.NewScanner(replName, strings.NewReader(src), nil)
	depth := 0
	for {
		s.Next()
		tok := s.Token()
		if tok.IsEOF() {
			return depth > 0
		}
		switch tok.String() {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
	}
}
