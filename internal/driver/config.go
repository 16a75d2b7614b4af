// Package driver runs the translation pipeline: it loads the signature
// table, the shim and the runtime header, then parses, infers and
// generates C for one or more input files.
package driver

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Environment variables overriding the default locations.
const (
	EnvRuntime = "GUMC_RUNTIME"
	EnvStdlib  = "GUMC_STDLIB"
)

// RuntimeHeader is the file name of the runtime header.
const RuntimeHeader = "gum.h"

// Config holds the settings of a translation.
type Config struct {
	// Runtime is the path of the runtime header. If empty, the header is
	// searched for as runtime/gum.h in the working directory, the
	// directory of the executable and their parents.
	Runtime string

	// Stdlib is the path of a signature table replacing the built-in one.
	Stdlib string

	// Shim is the path of a compatibility shim replacing the built-in one.
	Shim string

	// NoASI disables automatic semicolon insertion.
	NoASI bool

	// Trace, if set, receives phase timings.
	Trace *log.Logger
}

// ConfigFromEnv returns a Config with the locations given by the
// environment.
func ConfigFromEnv() Config {
	return Config{
		Runtime: os.Getenv(EnvRuntime),
		Stdlib:  os.Getenv(EnvStdlib),
	}
}

// NewTraceLogger returns the logger used for -trace output.
func NewTraceLogger(w io.Writer) *log.Logger {
	return log.New(w, "gumc: ", log.Lmicroseconds)
}

func (c *Config) tracef(format string, args ...interface{}) {
	if c.Trace != nil {
		c.Trace.Printf(format, args...)
	}
}

// FindRuntime returns the absolute path of the runtime header.
func (c *Config) FindRuntime() (string, error) {
	if c.Runtime != "" {
		abs, err := filepath.Abs(c.Runtime)
		if err != nil {
			return "", errors.Wrapf(err, "runtime header %s", c.Runtime)
		}
		if _, err := os.Stat(abs); err != nil {
			return "", errors.Wrap(err, "runtime header")
		}
		return abs, nil
	}

	var starts []string
	if wd, err := os.Getwd(); err == nil {
		starts = append(starts, wd)
	}
	if exe, err := os.Executable(); err == nil {
		starts = append(starts, filepath.Dir(exe))
	}
	for _, dir := range starts {
		if path, ok := searchUp(dir, filepath.Join("runtime", RuntimeHeader)); ok {
			return path, nil
		}
	}
	return "", errors.Errorf("cannot find runtime/%s; set -runtime or %s", RuntimeHeader, EnvRuntime)
}

// searchUp looks for rel in dir and each of its parents.
func searchUp(dir, rel string) (string, bool) {
	for {
		path := filepath.Join(dir, rel)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
