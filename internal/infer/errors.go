// Package infer computes a best-effort static type for every expression
// of a program. Types flow along assignments, calls and property accesses
// until nothing changes; a value that can hold two incompatible types is
// reported as dynamic.
package infer

import (
	"fmt"

	"github.com/you-not-fish/gum/internal/syntax"
)

// TypeError represents an inference error.
type TypeError struct {
	Pos syntax.Pos
	Msg string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is a function called for each type error.
type ErrorHandler func(pos syntax.Pos, msg string)

// errorf reports an error at the given position.
func (c *checker) errorf(pos syntax.Pos, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	if c.errors == 0 {
		c.first = &TypeError{Pos: pos, Msg: msg}
	}
	c.errors++

	if c.conf.Error != nil {
		c.conf.Error(pos, msg)
	}
}
