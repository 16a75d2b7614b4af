package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	Int     // integral number, C long
	Num     // floating point number, C double
	Bool    // boolean, C bool
	Str     // string, C char*
	Dynamic // boxed runtime value, C JSValue
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	InfoInteger BasicInfo = 1 << iota
	InfoFloat
	InfoBoolean
	InfoString
	InfoBoxed
	InfoNumeric = InfoInteger | InfoFloat
)

// Basic represents a scalar type or the dynamic type.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid: nil,
	Int:     {kind: Int, info: InfoInteger, name: "int"},
	Num:     {kind: Num, info: InfoFloat, name: "num"},
	Bool:    {kind: Bool, info: InfoBoolean, name: "bool"},
	Str:     {kind: Str, info: InfoString, name: "str"},
	Dynamic: {kind: Dynamic, info: InfoBoxed, name: "dynamic"},
}
