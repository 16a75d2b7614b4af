package rtabi

// C type names for code generation
const (
	TypeInt     = "long"
	TypeNumber  = "double"
	TypeBool    = "bool"
	TypeString  = "char*"
	TypeValue   = "JSValue"
	TypeFuncPtr = "js_func"
)

// Value tags (matches runtime/gum.h JS_*_TAG)
const (
	TagInvalid   = 0
	TagUndefined = 1
	TagNull      = 2
	TagNumber    = 3
	TagString    = 4
	TagBool      = 5
	TagFunction  = 6
	TagObject    = 7
	TagArray     = 8
)

// Generated names
const (
	// StructPrefix prefixes the typedef names of object shapes.
	StructPrefix = "_struct"

	// FuncPrefix prefixes the names of lifted function literals.
	FuncPrefix = "_function"

	// MangleSuffix is appended to program names that collide with C
	// keywords or runtime names.
	MangleSuffix = "_"
)

// Entry point
const (
	// Main is the C entry point holding the top-level statements.
	Main = "main"
)
