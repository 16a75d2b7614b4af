// Package rtabi defines the names shared between the code generator and
// the C runtime.
package rtabi

import "regexp"

// Runtime macros and functions (must match runtime/gum.h declarations)
const (
	// Heap printf
	Hprintf = "HPRINTF"

	// Boxing
	BoxNumber   = "JS_NUMBER"
	BoxString   = "JS_STRING"
	BoxBool     = "JS_BOOL"
	BoxFunction = "JS_FUNCTION"
	BoxArray    = "JS_ARRAY"
	BoxObject   = "JS_OBJECT"

	// Unboxing
	UnboxString   = "JSValue_STR"
	UnboxNumber   = "JSValue_NUMBER"
	UnboxBool     = "JSValue_BOOL"
	UnboxFunction = "JSValue_FUNCTION"
	UnboxArray    = "JSValue_ARRAY"
	UnboxObject   = "JSValue_OBJECT"

	// Truthiness of unboxed conditions
	TruthyNumber = "JSNumber_TRUTHY"
	TruthyString = "JSString_TRUTHY"

	// Loose coercion used by + on dynamic operands
	FnToNumber = "ToNumber"
)

// Runtime constants
const (
	Undefined = "JS_UNDEF"
	Null      = "JS_NULL"

	// VersionMacro names the runtime version define.
	VersionMacro = "GUM_RUNTIME_VERSION"
)

// C library names the generated code uses directly.
const (
	FnStrcmp = "strcmp"
	FnStrlen = "strlen"
	FnFmod   = "fmod"
	NaN      = "NAN"
)

// RuntimeFunctions returns the names of the runtime functions the
// generated code calls.
func RuntimeFunctions() []string {
	return []string{
		UnboxString, UnboxNumber, UnboxBool, UnboxFunction, UnboxArray, UnboxObject,
		TruthyNumber, TruthyString,
		FnToNumber,
	}
}

// RuntimeMacros returns the names of the runtime macros.
func RuntimeMacros() []string {
	return []string{
		Hprintf,
		BoxNumber, BoxString, BoxBool, BoxFunction, BoxArray, BoxObject,
		VersionMacro,
	}
}

var (
	declRe   = regexp.MustCompile(`\b([A-Za-z_]\w*)\(`)
	defineRe = regexp.MustCompile(`(?m)^\s*#\s*define\s+([A-Za-z_]\w*)`)
	externRe = regexp.MustCompile(`\bconst\s+JSValue\s+([A-Za-z_]\w*)\s*;`)
)

// Missing returns the runtime names the generated code uses that header
// does not declare, in the order of RuntimeFunctions, RuntimeMacros and
// the value constants.
func Missing(header []byte) []string {
	have := make(map[string]bool)
	for _, re := range []*regexp.Regexp{declRe, defineRe, externRe} {
		for _, m := range re.FindAllSubmatch(header, -1) {
			have[string(m[1])] = true
		}
	}
	var missing []string
	check := func(names ...string) {
		for _, name := range names {
			if !have[name] {
				missing = append(missing, name)
			}
		}
	}
	check(RuntimeFunctions()...)
	check(RuntimeMacros()...)
	check(Undefined, Null)
	return missing
}
