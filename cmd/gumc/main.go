// Package main implements the gum translator entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/you-not-fish/gum/internal/diag"
	"github.com/you-not-fish/gum/internal/driver"
	"github.com/you-not-fish/gum/internal/stdlib"
	"github.com/you-not-fish/gum/internal/syntax"
)

// Translator flags
var (
	emitTokens  = flag.Bool("emit-tokens", false, "Output token stream")
	noASI       = flag.Bool("no-asi", false, "Disable automatic semicolon insertion")
	emitAST     = flag.Bool("emit-ast", false, "Output AST")
	astFormat   = flag.String("ast-format", "text", "AST output format (text or json)")
	emitTypes   = flag.Bool("emit-types", false, "Output the refined type of every declared binding")
	output      = flag.String("o", "", "Output file")
	outdir      = flag.String("outdir", "", "Translate every input file into this directory")
	runtimePath = flag.String("runtime", "", "Runtime header (default $"+driver.EnvRuntime+" or runtime/gum.h)")
	stdlibPath  = flag.String("stdlib", "", "Signature table (default $"+driver.EnvStdlib+" or built-in)")
	shimPath    = flag.String("shim", "", "Compatibility shim (default built-in)")
	watch       = flag.Bool("watch", false, "Translate again whenever the input changes")
	repl        = flag.Bool("repl", false, "Translate interactively")
	doctor      = flag.Bool("doctor", false, "Check toolchain")
	version     = flag.Bool("version", false, "Print version")
	trace       = flag.Bool("trace", false, "Output timing trace")
	color       = flag.String("color", "auto", "Color diagnostics (auto, always or never)")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gum translator %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: gumc [options] <file.js>\n")
		fmt.Fprintf(os.Stderr, "       gumc -outdir dir [options] <file.js>...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		os.Exit(runVersion())
	}

	if *doctor {
		os.Exit(runDoctor())
	}

	if *repl {
		os.Exit(runREPL())
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: gumc [options] <file.js>")
		os.Exit(1)
	}

	if *outdir != "" {
		os.Exit(runBatch(args))
	}
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "error: several input files need -outdir")
		os.Exit(1)
	}

	filename := args[0]

	// Handle -emit-tokens
	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}

	// Handle -emit-ast
	if *emitAST {
		os.Exit(runEmitAST(filename))
	}

	if *watch {
		os.Exit(runWatch(filename))
	}

	os.Exit(runCompile(filename))
}

// config returns the driver configuration given by the environment and
// the flags.
func config() driver.Config {
	conf := driver.ConfigFromEnv()
	if *runtimePath != "" {
		conf.Runtime = *runtimePath
	}
	if *stdlibPath != "" {
		conf.Stdlib = *stdlibPath
	}
	conf.Shim = *shimPath
	conf.NoASI = *noASI
	if *trace {
		conf.Trace = driver.NewTraceLogger(os.Stderr)
	}
	return conf
}

// printer returns the diagnostic printer for stderr.
func printer() *diag.Printer {
	mode, err := diag.ParseColorMode(*color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return diag.NewPrinter(os.Stderr, mode)
}

func runVersion() int {
	fmt.Printf("gumc version %s\n", Version)
	fmt.Printf("go version %s\n", runtime.Version())
	if t, err := stdlib.Default(); err == nil {
		fmt.Printf("signature table %s (runtime %s)\n", t.Version, t.Runtime)
	}
	return 0
}

// runCompile translates filename and writes the C source, or the binding
// types with -emit-types.
func runCompile(filename string) int {
	p := printer()
	tc, err := driver.Load(config())
	if err != nil {
		p.Print(err)
		return 1
	}
	if err := compileOnce(tc, filename); err != nil {
		p.Print(err)
		return 1
	}
	return 0
}

// compileOnce translates filename with tc and writes the result. Nothing
// is written when translation fails.
func compileOnce(tc *driver.Toolchain, filename string) error {
	u, err := tc.CompileFile(filename)
	if err != nil {
		return err
	}
	if *emitTypes {
		return u.WriteTypes(os.Stdout)
	}
	if *output != "" {
		return os.WriteFile(*output, u.C, 0o644)
	}
	_, err = os.Stdout.Write(u.C)
	return err
}

// runBatch translates each input into -outdir in parallel.
func runBatch(inputs []string) int {
	p := printer()
	tc, err := driver.Load(config())
	if err != nil {
		p.Print(err)
		return 1
	}
	if err := tc.CompileAll(context.Background(), inputs, *outdir, 0); err != nil {
		p.Print(err)
		return 1
	}
	return 0
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errs diag.List
	p := syntax.NewParser(filename, f, errs.Add)
	if *noASI {
		p.SetASIEnabled(false)
	}
	ast := p.Parse()

	// Print errors first
	printer().Print(errs.Err())

	// Output AST
	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, ast); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		syntax.Fprint(os.Stdout, ast)
	}

	if len(errs) > 0 {
		return 1
	}
	return 0
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errors []string
	errh := func(line, col uint32, msg string) {
		errors = append(errors, fmt.Sprintf("%s:%d:%d: %s", filename, line, col, msg))
	}

	s := syntax.NewScanner(filename, f, errh)
	if *noASI {
		s.SetASIEnabled(false)
	}

	// Print header
	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		fmt.Printf("%-20s %-12s %s\n", s.Pos(), tok, formatLiteral(s.Literal()))
		if tok.IsEOF() {
			break
		}
	}

	if len(errors) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errors {
			fmt.Printf("  %s\n", e)
		}
		return 1
	}

	return 0
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case 0:
			b.WriteString("\\0")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}
