package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on JavaScript source code.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token   // token type
	lit    string  // token literal (identifier name, number text, decoded string)
	kind   LitKind // literal kind (only valid when tok == _Literal)
	op     Token   // binary operator of a compound assignment (only valid when tok == _AssignOp)
	tokPos Pos     // token start position

	// ASI (Automatic Semicolon Insertion) state. JavaScript inserts
	// semicolons in the parser, so the scanner only records whether a
	// line terminator separated the current token from the previous one.
	nlBefore bool

	// Configuration
	asiEnabled bool // whether ASI is enabled (default true, can be disabled with -no-asi)

	// Literal accumulation
	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	s := &Scanner{
		source:     *newSource(filename, src, errh),
		asiEnabled: true,
	}
	return s
}

// SetASIEnabled enables or disables automatic semicolon insertion.
func (s *Scanner) SetASIEnabled(enabled bool) {
	s.asiEnabled = enabled
}

// ASIEnabled reports whether automatic semicolon insertion is enabled.
func (s *Scanner) ASIEnabled() bool {
	return s.asiEnabled
}

// Next advances to the next token.
func (s *Scanner) Next() {
	s.nlBefore = false

redo:
	s.skipWhitespace()

	if s.ch == '\n' || s.ch == '\u2028' || s.ch == '\u2029' {
		s.nlBefore = true
		s.nextch()
		goto redo
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch), s.ch == '.' && isDigit(s.peek()):
		s.scanNumber()

	case s.ch == '"', s.ch == '\'':
		s.scanString(s.ch)

	case isOperatorStart(s.ch):
		if s.scanOperator() {
			// a comment was skipped
			goto redo
		}

	default:
		s.error(fmt.Sprintf("unexpected character %q", s.ch))
		s.nextch()
		goto redo
	}
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
func (s *Scanner) Literal() string {
	return s.lit
}

// LitKind returns the current literal's kind (only valid when Token() == _Literal).
func (s *Scanner) LitKind() LitKind {
	return s.kind
}

// Op returns the binary operator of a compound assignment
// (only valid when Token() == _AssignOp).
func (s *Scanner) Op() Token {
	return s.op
}

// NewlineBefore reports whether a line terminator precedes the current token.
func (s *Scanner) NewlineBefore() bool {
	return s.nlBefore
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// skipWhitespace skips blanks other than line terminators.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// startLit begins accumulating a literal.
func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

// continueLit adds the current character to the literal being accumulated.
func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

// stopLit ends literal accumulation and returns the accumulated string.
func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanIdent scans an identifier or keyword.
// true, false and null come back as literals.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()
	s.tok = LookupKeyword(s.lit)

	switch s.tok {
	case _True, _False:
		s.tok = _Literal
		s.kind = BoolLit
	case _Null:
		s.tok = _Literal
		s.kind = NullLit
	}
}

// scanNumber scans a number literal. The literal keeps its source text;
// BasicLit.Float decodes it.
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	s.kind = NumberLit

	if s.ch == '0' {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
		switch lower(s.ch) {
		case 'x':
			s.continueLit()
			s.nextch()
			s.scanDigits(isHexDigit, "invalid hex digit")
		case 'o':
			s.continueLit()
			s.nextch()
			s.scanDigits(isOctalDigit, "invalid octal digit")
		case 'b':
			s.continueLit()
			s.nextch()
			s.scanDigits(isBinaryDigit, "invalid binary digit")
			if isDigit(s.ch) {
				s.error("invalid binary digit")
			}
		default:
			s.scanDecimalDigits()
			if s.ch == '.' || lower(s.ch) == 'e' {
				s.scanFraction()
			}
		}
	} else {
		s.scanDecimalDigits()
		if s.ch == '.' || lower(s.ch) == 'e' {
			s.scanFraction()
		}
	}

	if isLetter(s.ch) {
		s.error("identifier starts immediately after numeric literal")
	}

	s.lit = s.litBuf.String()
	s.tok = _Literal
}

// scanDecimalDigits scans decimal digits.
func (s *Scanner) scanDecimalDigits() {
	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanDigits scans a non-empty run of digits accepted by ok.
func (s *Scanner) scanDigits(ok func(rune) bool, msg string) {
	if !ok(s.ch) {
		s.error(msg)
		return
	}
	for ok(s.ch) {
		s.continueLit()
		s.nextch()
	}
}

// scanFraction scans the fractional part of a number (. and/or exponent).
func (s *Scanner) scanFraction() {
	if s.ch == '.' {
		s.continueLit()
		s.nextch()
		s.scanDecimalDigits()
	}

	if lower(s.ch) == 'e' {
		s.continueLit()
		s.nextch()

		if s.ch == '+' || s.ch == '-' {
			s.continueLit()
			s.nextch()
		}

		if !isDigit(s.ch) {
			s.error("exponent has no digits")
			return
		}
		s.scanDecimalDigits()
	}
}

// scanString scans a string literal delimited by quote.
// The resulting literal is the decoded string content.
func (s *Scanner) scanString(quote rune) {
	s.nextch() // skip opening quote
	var b strings.Builder

	for {
		switch {
		case s.ch == quote:
			s.nextch()
			s.lit = b.String()
			s.tok = _Literal
			s.kind = StringLit
			return

		case s.ch == '\\':
			s.nextch()
			if s.ch == '\n' {
				// line continuation
				s.nextch()
				continue
			}
			if r, ok := s.scanEscape(); ok {
				b.WriteRune(r)
			}

		case s.ch == '\n' || s.ch < 0:
			s.error("string not terminated")
			s.lit = b.String()
			s.tok = _Literal
			s.kind = StringLit
			return

		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

// scanEscape decodes the escape sequence following a backslash.
func (s *Scanner) scanEscape() (rune, bool) {
	ch := s.ch
	switch ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case 'r':
		s.nextch()
		return '\r', true
	case 'b':
		s.nextch()
		return '\b', true
	case 'f':
		s.nextch()
		return '\f', true
	case 'v':
		s.nextch()
		return '\v', true
	case '0':
		s.nextch()
		return 0, true
	case 'x':
		s.nextch()
		return s.scanHexEscape(2)
	case 'u':
		s.nextch()
		return s.scanHexEscape(4)
	case -1:
		s.error("escape sequence not terminated")
		return 0, false
	default:
		// \\, \', \" and any other character stand for themselves
		s.nextch()
		return ch, true
	}
}

// scanHexEscape scans n hex digits of a \x or \u escape sequence.
func (s *Scanner) scanHexEscape(n int) (rune, bool) {
	var val rune
	for i := 0; i < n; i++ {
		if !isHexDigit(s.ch) {
			s.error("invalid hex escape")
			return 0, false
		}
		val = val*16 + hexValue(s.ch)
		s.nextch()
	}
	return val, true
}

// hexValue returns the numeric value of a hex digit.
func hexValue(r rune) rune {
	switch {
	case '0' <= r && r <= '9':
		return r - '0'
	case 'a' <= lower(r) && lower(r) <= 'f':
		return lower(r) - 'a' + 10
	}
	return 0
}

// assignOp finishes an operator that may be followed by '=' to form a
// compound assignment.
func (s *Scanner) assignOp(op Token) {
	if s.ch == '=' {
		s.nextch()
		s.tok = _AssignOp
		s.op = op
		s.lit = op.String() + "="
		return
	}
	s.tok = op
	s.lit = op.String()
}

// scanOperator scans an operator or delimiter.
// Returns true if a comment was skipped (caller should rescan).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		if s.ch == '+' {
			s.nextch()
			s.tok, s.lit = _Inc, "++"
			break
		}
		s.assignOp(_Add)
	case '-':
		if s.ch == '-' {
			s.nextch()
			s.tok, s.lit = _Dec, "--"
			break
		}
		s.assignOp(_Sub)
	case '*':
		s.assignOp(_Mul)
	case '/':
		switch s.ch {
		case '/':
			s.skipLineComment()
			return true
		case '*':
			s.skipBlockComment()
			return true
		}
		s.assignOp(_Div)
	case '%':
		s.assignOp(_Rem)
	case '&':
		if s.ch == '&' {
			s.nextch()
			s.tok, s.lit = _AndAnd, "&&"
			break
		}
		s.assignOp(_And)
	case '|':
		if s.ch == '|' {
			s.nextch()
			s.tok, s.lit = _OrOr, "||"
			break
		}
		s.assignOp(_Or)
	case '^':
		s.assignOp(_Xor)
	case '~':
		s.tok, s.lit = _Tilde, "~"
	case '<':
		switch s.ch {
		case '=':
			s.nextch()
			s.tok, s.lit = _Leq, "<="
		case '<':
			s.nextch()
			s.assignOp(_Shl)
		default:
			s.tok, s.lit = _Lss, "<"
		}
	case '>':
		switch s.ch {
		case '=':
			s.nextch()
			s.tok, s.lit = _Geq, ">="
		case '>':
			s.nextch()
			if s.ch == '>' {
				s.nextch()
				s.assignOp(_Ushr)
				break
			}
			s.assignOp(_Shr)
		default:
			s.tok, s.lit = _Gtr, ">"
		}
	case '=':
		if s.ch == '=' {
			s.nextch()
			if s.ch == '=' {
				s.nextch()
				s.tok, s.lit = _StrictEql, "==="
				break
			}
			s.tok, s.lit = _Eql, "=="
			break
		}
		s.tok, s.lit = _Assign, "="
	case '!':
		if s.ch == '=' {
			s.nextch()
			if s.ch == '=' {
				s.nextch()
				s.tok, s.lit = _StrictNeq, "!=="
				break
			}
			s.tok, s.lit = _Neq, "!="
			break
		}
		s.tok, s.lit = _Not, "!"
	case ':':
		s.tok, s.lit = _Colon, ":"
	case '?':
		s.tok, s.lit = _Question, "?"
	case '(':
		s.tok, s.lit = _Lparen, "("
	case ')':
		s.tok, s.lit = _Rparen, ")"
	case '[':
		s.tok, s.lit = _Lbrack, "["
	case ']':
		s.tok, s.lit = _Rbrack, "]"
	case '{':
		s.tok, s.lit = _Lbrace, "{"
	case '}':
		s.tok, s.lit = _Rbrace, "}"
	case ',':
		s.tok, s.lit = _Comma, ","
	case ';':
		s.tok, s.lit = _Semi, ";"
	case '.':
		s.tok, s.lit = _Dot, "."
	}

	return false
}

// skipLineComment skips a line comment (from // to end of line).
// The terminating newline is left for Next so it still counts for ASI.
func (s *Scanner) skipLineComment() {
	s.nextch()
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// skipBlockComment skips a /* */ comment. A comment spanning lines
// behaves like a line terminator.
func (s *Scanner) skipBlockComment() {
	s.nextch()
	for s.ch >= 0 {
		if s.ch == '*' {
			s.nextch()
			if s.ch == '/' {
				s.nextch()
				return
			}
			continue
		}
		if s.ch == '\n' {
			s.nlBefore = true
		}
		s.nextch()
	}
	s.error("comment not terminated")
}
