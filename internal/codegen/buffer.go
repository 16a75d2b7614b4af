package codegen

import "strings"

// A Buffer is an append-only token stream with two side channels. Code
// that must appear before the current output (typedefs, prototypes,
// lifted functions) goes to pre; code that must follow it goes to post.
type Buffer struct {
	pre    []string
	output []string
	post   []string
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Write appends tokens to the output channel.
func (b *Buffer) Write(tokens ...string) {
	b.output = append(b.output, tokens...)
}

// Newline ends the current line of output.
func (b *Buffer) Newline() {
	b.output = append(b.output, "\n")
}

// Len returns the number of tokens in the output channel.
func (b *Buffer) Len() int {
	return len(b.output)
}

// Pre splices child ahead of parent's output: parent.pre receives
// child.pre and child.output, parent.post receives child.post.
func Pre(child, parent *Buffer) {
	parent.pre = append(parent.pre, child.pre...)
	parent.pre = append(parent.pre, child.output...)
	parent.post = append(parent.post, child.post...)
}

// Post splices child after parent's output: parent.pre receives
// child.pre, parent.post receives child.output and child.post.
func Post(child, parent *Buffer) {
	parent.pre = append(parent.pre, child.pre...)
	parent.post = append(parent.post, child.output...)
	parent.post = append(parent.post, child.post...)
}

// inline splices child into parent channel by channel, so child's output
// continues parent's output.
func inline(child, parent *Buffer) {
	parent.pre = append(parent.pre, child.pre...)
	parent.output = append(parent.output, child.output...)
	parent.post = append(parent.post, child.post...)
}

// Tokens returns pre, output and post concatenated.
func (b *Buffer) Tokens() []string {
	toks := make([]string, 0, len(b.pre)+len(b.output)+len(b.post))
	toks = append(toks, b.pre...)
	toks = append(toks, b.output...)
	return append(toks, b.post...)
}

// Format renders the buffer as source text. Tokens are joined without
// separators except where two tokens would lex as one: between word
// characters, and between + or - tokens that would form ++ or --.
func (b *Buffer) Format() string {
	var sb strings.Builder
	prev := ""
	for _, tok := range b.Tokens() {
		if tok == "" {
			continue
		}
		if needSpace(prev, tok) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok)
		prev = tok
	}
	return sb.String()
}

func needSpace(prev, next string) bool {
	if prev == "" {
		return false
	}
	last, first := prev[len(prev)-1], next[0]
	if isWordChar(last) && isWordChar(first) {
		return true
	}
	return (last == '+' || last == '-') && first == last
}

func isWordChar(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
