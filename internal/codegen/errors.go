package codegen

import (
	"fmt"

	"github.com/you-not-fish/gum/internal/syntax"
)

// ErrorKind classifies generation failures.
type ErrorKind int

const (
	_ ErrorKind = iota

	// UnrepresentableType: a type has no C representation.
	UnrepresentableType

	// UnsupportedConversion: no conversion exists between a value's type
	// and the type its context requires.
	UnsupportedConversion

	// UnhandledConstruct: the program uses a construct the generator
	// does not translate.
	UnhandledConstruct
)

var errorKindNames = [...]string{
	UnrepresentableType:   "unrepresentable type",
	UnsupportedConversion: "unsupported conversion",
	UnhandledConstruct:    "unhandled construct",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a generation failure at a source position.
type Error struct {
	Kind ErrorKind
	Pos  syntax.Pos
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}
