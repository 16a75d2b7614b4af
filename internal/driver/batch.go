package driver

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// OutputName returns the name of the C file generated for input in dir.
func OutputName(dir, input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+".c")
}

// CompileAll translates each input into a C file in outdir, running up to
// limit translations at a time (GOMAXPROCS if limit <= 0). Each input gets
// its own session. CompileAll stops at the first failure and returns it,
// naming the input.
func (tc *Toolchain) CompileAll(ctx context.Context, inputs []string, outdir string, limit int) error {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	seen := make(map[string]string)
	for _, in := range inputs {
		out := OutputName(outdir, in)
		if prev, ok := seen[out]; ok {
			return errors.Errorf("%s and %s both translate to %s", prev, in, out)
		}
		seen[out] = in
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, in := range inputs {
		in := in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u, err := tc.CompileFile(in)
			if err != nil {
				return errors.Wrap(err, in)
			}
			if err := os.WriteFile(OutputName(outdir, in), u.C, 0o644); err != nil {
				return errors.Wrap(err, "writing output")
			}
			return nil
		})
	}
	return g.Wait()
}
