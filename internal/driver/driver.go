package driver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/you-not-fish/gum/internal/codegen"
	"github.com/you-not-fish/gum/internal/diag"
	"github.com/you-not-fish/gum/internal/infer"
	"github.com/you-not-fish/gum/internal/rtabi"
	"github.com/you-not-fish/gum/internal/stdlib"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// A Toolchain holds what every translation shares: the signature table,
// the shim source and the runtime header. It is read-only once loaded and
// may be used by several goroutines.
type Toolchain struct {
	conf    Config
	Table   *stdlib.Table
	Shim    []byte
	Header  string          // absolute path of the runtime header
	Version *semver.Version // runtime version
}

// Load reads the toolchain files named by conf and checks that the
// runtime header satisfies the table.
func Load(conf Config) (*Toolchain, error) {
	start := time.Now()
	tc := &Toolchain{conf: conf}

	var err error
	if conf.Stdlib != "" {
		tc.Table, err = loadTable(conf.Stdlib)
	} else {
		tc.Table, err = stdlib.Default()
	}
	if err != nil {
		return nil, err
	}

	tc.Shim = stdlib.Shim()
	if conf.Shim != "" {
		if tc.Shim, err = os.ReadFile(conf.Shim); err != nil {
			return nil, errors.Wrap(err, "reading shim")
		}
	}

	if tc.Header, err = conf.FindRuntime(); err != nil {
		return nil, err
	}
	header, err := os.ReadFile(tc.Header)
	if err != nil {
		return nil, errors.Wrap(err, "reading runtime header")
	}
	if tc.Version, err = tc.Table.CheckRuntime(header); err != nil {
		return nil, errors.Wrap(err, tc.Header)
	}
	if missing := rtabi.Missing(header); len(missing) > 0 {
		return nil, errors.Errorf("%s: runtime header lacks %s", tc.Header, strings.Join(missing, ", "))
	}

	conf.tracef("load toolchain: %v (runtime %s, table %s)", time.Since(start), tc.Version, tc.Table.Version)
	return tc, nil
}

func loadTable(path string) (*stdlib.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening signature table")
	}
	defer f.Close()
	t, err := stdlib.LoadTable(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return t, nil
}

// A Unit is one translated input file.
type Unit struct {
	Filename string
	File     *syntax.Program // the input alone
	Program  *syntax.Program // shim and input
	Engine   *infer.Engine
	Session  *codegen.Session
	C        []byte // generated source, with the runtime include
}

// Parse parses src as the file filename.
func (tc *Toolchain) Parse(filename string, src []byte) (*syntax.Program, error) {
	var errs diag.List
	p := syntax.NewParser(filename, bytes.NewReader(src), errs.Add)
	if tc.conf.NoASI {
		p.SetASIEnabled(false)
	}
	prog := p.Parse()
	return prog, errs.Err()
}

// Compile translates src, the contents of filename, to C.
func (tc *Toolchain) Compile(filename string, src []byte) (*Unit, error) {
	u := &Unit{Filename: filename}

	start := time.Now()
	shim, err := tc.Parse(stdlib.ShimName, tc.Shim)
	if err != nil {
		return nil, errors.Wrap(err, "parsing shim")
	}
	if u.File, err = tc.Parse(filename, src); err != nil {
		return nil, err
	}
	u.Program = syntax.Concat(shim, u.File)
	tc.conf.tracef("parse %s: %v", filename, time.Since(start))

	start = time.Now()
	var typeErrs diag.List
	conf := &infer.Config{
		Error:       typeErrs.Add,
		Predeclared: tc.Table.Globals,
	}
	u.Engine, _ = infer.Check(u.Program, conf, nil)
	if err := typeErrs.Err(); err != nil {
		typeErrs.Sort()
		return nil, err
	}
	tc.conf.tracef("infer %s: %v", filename, time.Since(start))

	start = time.Now()
	u.Session = codegen.NewSession()
	for _, g := range tc.Table.Globals {
		u.Session.Reserve(g.Name)
	}
	buf, err := codegen.Generate(u.Program, u.Engine, u.Session)
	if err != nil {
		var cerr *codegen.Error
		if errors.As(err, &cerr) {
			msg := cerr.Kind.String() + ": " + cerr.Msg
			return nil, diag.List{{Pos: cerr.Pos, Msg: msg, Err: cerr}}
		}
		return nil, err
	}
	tc.conf.tracef("generate %s: %v (%d structs)", filename, time.Since(start), u.Session.NumStructs())

	var out bytes.Buffer
	fmt.Fprintf(&out, "#include %q\n", tc.Header)
	out.WriteString(buf.Format())
	out.WriteByte('\n')
	u.C = out.Bytes()
	return u, nil
}

// CompileFile reads and translates filename.
func (tc *Toolchain) CompileFile(filename string) (*Unit, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return tc.Compile(filename, src)
}

// WriteTypes writes the refined type of every binding the input file
// declares, one per line, in source order.
func (u *Unit) WriteTypes(w io.Writer) error {
	ref := codegen.NewRefiner(u.Engine)
	var b strings.Builder
	line := func(n *syntax.Name, kind string) {
		obj := u.Engine.ObjectOf(n)
		if obj == nil {
			return
		}
		fmt.Fprintf(&b, "%s\t%s %s\t%s\n", n.Pos(), kind, n.Value, ref.ObjectType(obj))
	}

	seen := make(map[types.Object]bool)
	syntax.Inspect(u.File, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.VarSpec:
			if obj := u.Engine.ObjectOf(n.Name); obj != nil && !seen[obj] {
				seen[obj] = true
				line(n.Name, "var")
			}
		case *syntax.FuncDecl:
			line(n.Name, "func")
			for _, p := range n.Params {
				line(p, "param")
			}
		case *syntax.FuncLit:
			for _, p := range n.Params {
				line(p, "param")
			}
		}
		return true
	})
	_, err := io.WriteString(w, b.String())
	return err
}
