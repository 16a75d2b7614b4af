// Package syntax implements lexical and syntactic analysis for the
// JavaScript subset accepted by gum.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of file
	_Error              // lexical error

	// Literals
	_Name    // identifier: foo, $bar, _baz
	_Literal // literal value (used with LitKind)

	// Assignment
	_Assign   // =
	_AssignOp // op= (the binary operator is reported by Scanner.Op)
	_Inc      // ++
	_Dec      // --

	// Logical operators
	_OrOr   // ||
	_AndAnd // &&

	// Bitwise operators
	_Or  // |
	_Xor // ^
	_And // &

	// Equality operators
	_Eql       // ==
	_Neq       // !=
	_StrictEql // ===
	_StrictNeq // !==

	// Relational operators
	_Lss        // <
	_Leq        // <=
	_Gtr        // >
	_Geq        // >=
	_In         // in
	_Instanceof // instanceof

	// Shift operators
	_Shl  // <<
	_Shr  // >>
	_Ushr // >>>

	// Additive operators
	_Add // +
	_Sub // -

	// Multiplicative operators
	_Mul // *
	_Div // /
	_Rem // %

	// Unary-only operators
	_Not    // !
	_Tilde  // ~
	_Typeof // typeof
	_Void   // void
	_Delete // delete

	// Delimiters
	_Lparen   // (
	_Rparen   // )
	_Lbrack   // [
	_Rbrack   // ]
	_Lbrace   // {
	_Rbrace   // }
	_Comma    // ,
	_Semi     // ;
	_Colon    // :
	_Dot      // .
	_Question // ?

	// Keywords
	_Break
	_Continue
	_Do
	_Else
	_False
	_For
	_Function
	_If
	_New
	_Null
	_Return
	_This
	_Throw
	_True
	_Var
	_While

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign:   "=",
	_AssignOp: "op=",
	_Inc:      "++",
	_Dec:      "--",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Or:  "|",
	_Xor: "^",
	_And: "&",

	_Eql:       "==",
	_Neq:       "!=",
	_StrictEql: "===",
	_StrictNeq: "!==",

	_Lss:        "<",
	_Leq:        "<=",
	_Gtr:        ">",
	_Geq:        ">=",
	_In:         "in",
	_Instanceof: "instanceof",

	_Shl:  "<<",
	_Shr:  ">>",
	_Ushr: ">>>",

	_Add: "+",
	_Sub: "-",

	_Mul: "*",
	_Div: "/",
	_Rem: "%",

	_Not:    "!",
	_Tilde:  "~",
	_Typeof: "typeof",
	_Void:   "void",
	_Delete: "delete",

	_Lparen:   "(",
	_Rparen:   ")",
	_Lbrack:   "[",
	_Rbrack:   "]",
	_Lbrace:   "{",
	_Rbrace:   "}",
	_Comma:    ",",
	_Semi:     ";",
	_Colon:    ":",
	_Dot:      ".",
	_Question: "?",

	_Break:    "break",
	_Continue: "continue",
	_Do:       "do",
	_Else:     "else",
	_False:    "false",
	_For:      "for",
	_Function: "function",
	_If:       "if",
	_New:      "new",
	_Null:     "null",
	_Return:   "return",
	_This:     "this",
	_Throw:    "throw",
	_True:     "true",
	_Var:      "var",
	_While:    "while",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: ||
//	2: &&
//	3: |
//	4: ^
//	5: &
//	6: == != === !==
//	7: < <= > >= in instanceof
//	8: << >> >>>
//	9: + -
//	10: * / %
func (t Token) Precedence() int {
	switch t {
	case _OrOr:
		return 1
	case _AndAnd:
		return 2
	case _Or:
		return 3
	case _Xor:
		return 4
	case _And:
		return 5
	case _Eql, _Neq, _StrictEql, _StrictNeq:
		return 6
	case _Lss, _Leq, _Gtr, _Geq, _In, _Instanceof:
		return 7
	case _Shl, _Shr, _Ushr:
		return 8
	case _Add, _Sub:
		return 9
	case _Mul, _Div, _Rem:
		return 10
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Break && t <= _While || t == _In || t == _Instanceof ||
		t == _Typeof || t == _Void || t == _Delete
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Delete
}

// IsLogical reports whether t is a short-circuit operator.
func (t Token) IsLogical() bool {
	return t == _OrOr || t == _AndAnd
}

// IsBitwise reports whether t is a bitwise or shift operator. Their
// results are always 32-bit integers at runtime.
func (t Token) IsBitwise() bool {
	switch t {
	case _Or, _Xor, _And, _Shl, _Shr, _Ushr:
		return true
	}
	return false
}

// IsComparison reports whether t is an equality or relational operator.
func (t Token) IsComparison() bool {
	switch t {
	case _Eql, _Neq, _StrictEql, _StrictNeq, _Lss, _Leq, _Gtr, _Geq:
		return true
	}
	return false
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported operator tokens for inference and code generation.
const (
	Assign     Token = _Assign
	OrOr       Token = _OrOr
	AndAnd     Token = _AndAnd
	Or         Token = _Or
	Xor        Token = _Xor
	And        Token = _And
	Eql        Token = _Eql
	Neq        Token = _Neq
	StrictEql  Token = _StrictEql
	StrictNeq  Token = _StrictNeq
	Lss        Token = _Lss
	Leq        Token = _Leq
	Gtr        Token = _Gtr
	Geq        Token = _Geq
	In         Token = _In
	Instanceof Token = _Instanceof
	Shl        Token = _Shl
	Shr        Token = _Shr
	Ushr       Token = _Ushr
	Add        Token = _Add
	Sub        Token = _Sub
	Mul        Token = _Mul
	Div        Token = _Div
	Rem        Token = _Rem
	Not        Token = _Not
	Tilde      Token = _Tilde
	Typeof     Token = _Typeof
	Void       Token = _Void
	Delete     Token = _Delete
	Inc        Token = _Inc
	Dec        Token = _Dec
	Break      Token = _Break
	Continue   Token = _Continue
)

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	NumberLit LitKind = iota // 123, 0x1F, 3.14, .5, 1e10
	StringLit                // "hello", 'line\n'
	BoolLit                  // true, false
	NullLit                  // null
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	NumberLit: "number",
	StringLit: "string",
	BoolLit:   "bool",
	NullLit:   "null",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= NullLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// keywords maps keyword strings to their token type.
// Predeclared globals (undefined, NaN, Infinity, console) are NOT keywords;
// they are scanned as _Name and bound by the shim or the signature table.
var keywords = map[string]Token{
	"break":      _Break,
	"continue":   _Continue,
	"delete":     _Delete,
	"do":         _Do,
	"else":       _Else,
	"false":      _False,
	"for":        _For,
	"function":   _Function,
	"if":         _If,
	"in":         _In,
	"instanceof": _Instanceof,
	"new":        _New,
	"null":       _Null,
	"return":     _Return,
	"this":       _This,
	"throw":      _Throw,
	"true":       _True,
	"typeof":     _Typeof,
	"var":        _Var,
	"void":       _Void,
	"while":      _While,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
