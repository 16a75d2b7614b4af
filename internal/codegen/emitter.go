package codegen

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"

	"github.com/you-not-fish/gum/internal/infer"
	"github.com/you-not-fish/gum/internal/syntax"
	"github.com/you-not-fish/gum/internal/types"
)

// gen holds the state of one Generate call.
type gen struct {
	sess *Session
	eng  *infer.Engine
	ref  *Refiner
	con  *Analyzer

	err *Error     // first generation error
	pos syntax.Pos // position of the node being emitted

	scope *types.Scope // scope of the function being emitted
	sig   *types.Func  // its signature; nil at top level

	funcNames map[syntax.Node]string   // C names of function declarations and literals
	inPlace   *set.Set[*syntax.VarSpec] // local consts defined at their statement
	static    *set.Set[*syntax.VarSpec] // global consts with a static initializer
}

// errorf records a generation error. Only the first one is kept; later
// calls are no-ops so emission can run to completion without checks at
// every step.
func (g *gen) errorf(kind ErrorKind, pos syntax.Pos, format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	if !pos.IsValid() {
		pos = g.pos
	}
	g.err = &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// failed reports whether an error has been recorded.
func (g *gen) failed() bool {
	return g.err != nil
}

// at sets the current position to that of n and returns the previous
// one, for use as defer g.restore(g.at(n)).
func (g *gen) at(n syntax.Node) syntax.Pos {
	saved := g.pos
	if p := n.Pos(); p.IsValid() {
		g.pos = p
	}
	return saved
}

func (g *gen) restore(pos syntax.Pos) {
	g.pos = pos
}

// stmtEnd terminates a statement.
func stmtEnd(b *Buffer) {
	b.Write(";")
	b.Newline()
}

// itoa formats a small non-negative count.
func itoa(n int) string {
	return fmt.Sprint(n)
}
