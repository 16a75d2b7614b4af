// Package types implements the static type model used by the gum
// translator. Every value a translated program manipulates has one of a
// closed set of types, each with a fixed C representation.
// This package provides type representations without AST dependencies.
package types

// Type is the interface implemented by all types.
type Type interface {
	// String returns the canonical representation of the type.
	// Two identical types have the same string.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
