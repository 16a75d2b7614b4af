package codegen

import (
	"strings"

	"github.com/you-not-fish/gum/internal/rtabi"
)

// cReserved lists identifiers a program name cannot use verbatim in the
// generated C: keywords, names the runtime header defines, and names the
// generated code relies on.
var cReserved = []string{
	// C keywords
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while", "_Bool", "_Complex",
	"bool", "true", "false", "NULL",

	// Generated and runtime names
	rtabi.Main, rtabi.TypeValue, rtabi.TypeFuncPtr, rtabi.Hprintf,
	rtabi.FnToNumber, rtabi.FnStrcmp, rtabi.FnStrlen, rtabi.FnFmod,
	rtabi.NaN, "INFINITY", "asprintf", "malloc", "free", "exit", "abs",
	"index", "time", "printf", "argc", "argv", mainArgc, mainArgv,
}

// mangle returns the C spelling of a program identifier.
func (s *Session) mangle(name string) string {
	if s.reserved.Contains(name) || isRuntimeName(name) {
		return name + rtabi.MangleSuffix
	}
	return name
}

// isRuntimeName reports whether name lies in the runtime's namespace.
func isRuntimeName(name string) bool {
	return strings.HasPrefix(name, "JS_") ||
		strings.HasPrefix(name, "JSValue") ||
		strings.HasPrefix(name, "JSNumber") ||
		strings.HasPrefix(name, "JSString") ||
		strings.HasPrefix(name, rtabi.StructPrefix+"_") ||
		strings.HasPrefix(name, rtabi.FuncPrefix+"_")
}
