package diag

import (
	"bytes"
	"os"
	"testing"

	"github.com/pkg/errors"

	"github.com/you-not-fish/gum/internal/syntax"
)

func TestListError(t *testing.T) {
	var l List
	if l.Err() != nil {
		t.Fatal("empty list must not be an error")
	}
	l.Add(syntax.NewPos("a.js", 2, 1), "second")
	l.Add(syntax.NewPos("a.js", 1, 5), "first")
	l.Sort()

	if got, want := l.Error(), "a.js:1:5: first (and 1 more errors)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := l[1].Msg; got != "second" {
		t.Errorf("after Sort, l[1] = %q, want second", got)
	}
}

func TestListUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	l := List{{Pos: syntax.NewPos("a.js", 1, 1), Msg: "wrapped", Err: sentinel}}
	err := errors.Wrap(l.Err(), "compiling a.js")

	var list List
	if !errors.As(err, &list) || len(list) != 1 {
		t.Fatalf("errors.As did not find the list in %v", err)
	}
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is does not reach the underlying error")
	}
}

func TestPrinter(t *testing.T) {
	tests := []struct {
		name string
		mode ColorMode
		err  error
		want string
	}{
		{
			"plain",
			ColorNever,
			List{{Pos: syntax.NewPos("a.js", 1, 2), Msg: "unexpected }"}},
			"a.js:1:2: error: unexpected }\n",
		},
		{
			"colored",
			ColorAlways,
			List{{Pos: syntax.NewPos("a.js", 1, 2), Msg: "bad"}},
			"\x1b[1ma.js:1:2:\x1b[0m \x1b[31merror:\x1b[0m bad\n",
		},
		{
			"several",
			ColorNever,
			List{{Pos: syntax.NewPos("a.js", 1, 1), Msg: "x"}, {Pos: syntax.NewPos("a.js", 2, 1), Msg: "y"}},
			"a.js:1:1: error: x\na.js:2:1: error: y\n",
		},
		{
			"no position",
			ColorNever,
			errors.New("no input file"),
			"error: no input file\n",
		},
		{
			"wrapped list",
			ColorNever,
			errors.Wrap(List{{Pos: syntax.NewPos("b.js", 3, 4), Msg: "z"}}, "ctx"),
			"b.js:3:4: error: z\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, tt.mode).Print(tt.err)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseColorMode(t *testing.T) {
	for s, want := range map[string]ColorMode{"auto": ColorAuto, "always": ColorAlways, "never": ColorNever} {
		got, err := ParseColorMode(s)
		if err != nil || got != want {
			t.Errorf("ParseColorMode(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseColorMode("sometimes"); err == nil {
		t.Error("ParseColorMode accepted an invalid mode")
	}
}

func TestIsTerminalFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f.Fd()) {
		t.Error("a regular file is not a terminal")
	}
}
