package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// section prints a labeled group of child nodes one level deeper.
// Nil children are skipped; an all-nil group prints nothing.
func (p *printer) section(label string, nodes ...Node) {
	var list []Node
	for _, n := range nodes {
		if n != nil && !isNilNode(n) {
			list = append(list, n)
		}
	}
	if len(list) == 0 {
		return
	}
	p.printf("%s:\n", label)
	p.indent++
	for _, n := range list {
		p.print(n)
	}
	p.indent--
}

// isNilNode reports whether n is a typed nil stored in the interface.
func isNilNode(n Node) bool {
	switch n := n.(type) {
	case *Name:
		return n == nil
	case *BlockStmt:
		return n == nil
	}
	return false
}

func exprNodes(list []Expr) []Node {
	nodes := make([]Node, len(list))
	for i, x := range list {
		nodes[i] = x
	}
	return nodes
}

func stmtNodes(list []Stmt) []Node {
	nodes := make([]Node, len(list))
	for i, s := range list {
		nodes[i] = s
	}
	return nodes
}

func nameList(list []*Name) string {
	names := make([]string, len(list))
	for i, n := range list {
		names[i] = n.Value
	}
	return strings.Join(names, ", ")
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		for _, s := range n.Body {
			p.print(s)
		}
		p.indent--

	case *VarDecl:
		p.printf("VarDecl %s\n", n.pos)
		p.indent++
		for _, spec := range n.List {
			p.print(spec)
		}
		p.indent--

	case *VarSpec:
		p.printf("VarSpec %s %s\n", n.pos, n.Name.Value)
		p.indent++
		p.section("Value", n.Value)
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		p.printf("Params: (%s)\n", nameList(n.Params))
		p.section("Body", n.Body)
		p.indent--

	case *FuncLit:
		p.printf("FuncLit %s\n", n.pos)
		p.indent++
		if n.Name != nil {
			p.printf("Name: %s\n", n.Name.Value)
		}
		p.printf("Params: (%s)\n", nameList(n.Params))
		p.section("Body", n.Body)
		p.indent--

	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.section("Cond", n.Cond)
		p.section("Then", n.Then)
		p.section("Else", n.Else)
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.section("Cond", n.Cond)
		p.section("Body", n.Body)
		p.indent--

	case *DoWhileStmt:
		p.printf("DoWhileStmt %s\n", n.pos)
		p.indent++
		p.section("Body", n.Body)
		p.section("Cond", n.Cond)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt %s\n", n.pos)
		p.indent++
		p.section("Init", n.Init)
		p.section("Cond", n.Cond)
		p.section("Post", n.Post)
		p.section("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case *ThrowStmt:
		p.printf("ThrowStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *BranchStmt:
		p.printf("BranchStmt %s %s\n", n.pos, n.Tok)

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *EmptyStmt:
		p.printf("EmptyStmt %s\n", n.pos)

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s %q\n", n.pos, n.Kind, n.Value)

	case *ThisExpr:
		p.printf("ThisExpr %s\n", n.pos)

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.print(n.X)
			p.indent--
			break
		}
		p.printf("BinaryOp %s %s\n", n.pos, n.Op)
		p.indent++
		p.section("X", n.X)
		p.section("Y", n.Y)
		p.indent--

	case *AssignExpr:
		op := "="
		if n.Op != 0 {
			op = n.Op.String() + "="
		}
		p.printf("AssignExpr %s %s\n", n.pos, op)
		p.indent++
		p.section("LHS", n.LHS)
		p.section("RHS", n.RHS)
		p.indent--

	case *UpdateExpr:
		fix := "postfix"
		if n.Prefix {
			fix = "prefix"
		}
		p.printf("UpdateExpr %s %s %s\n", n.pos, fix, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *CondExpr:
		p.printf("CondExpr %s\n", n.pos)
		p.indent++
		p.section("Cond", n.Cond)
		p.section("X", n.X)
		p.section("Y", n.Y)
		p.indent--

	case *SeqExpr:
		p.printf("SeqExpr %s\n", n.pos)
		p.indent++
		for _, x := range n.List {
			p.print(x)
		}
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s\n", n.pos)
		p.indent++
		p.section("Fun", n.Fun)
		p.section("Args", exprNodes(n.Args)...)
		p.indent--

	case *NewExpr:
		p.printf("NewExpr %s\n", n.pos)
		p.indent++
		p.section("Fun", n.Fun)
		p.section("Args", exprNodes(n.Args)...)
		p.indent--

	case *IndexExpr:
		p.printf("IndexExpr %s\n", n.pos)
		p.indent++
		p.section("X", n.X)
		p.section("Index", n.Index)
		p.indent--

	case *SelectorExpr:
		p.printf("SelectorExpr %s\n", n.pos)
		p.indent++
		p.section("X", n.X)
		p.printf("Sel: %s\n", n.Sel.Value)
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *ObjectLit:
		p.printf("ObjectLit %s\n", n.pos)
		p.indent++
		for _, kv := range n.Props {
			p.print(kv)
		}
		p.indent--

	case *KeyValueExpr:
		p.printf("KeyValue %s %s\n", n.pos, n.Key.Value)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *ArrayLit:
		p.printf("ArrayLit %s\n", n.pos)
		p.indent++
		for _, x := range n.Elems {
			p.print(x)
		}
		p.indent--

	default:
		p.printf("%T %s\n", n, n.Pos())
	}
}

// ExprString returns a compact source-like rendering of x, used in
// diagnostics and type dumps.
func ExprString(x Expr) string {
	var b strings.Builder
	writeExpr(&b, x)
	return b.String()
}

func writeExpr(b *strings.Builder, x Expr) {
	switch x := x.(type) {
	case nil:
	case *Name:
		b.WriteString(x.Value)
	case *BasicLit:
		if x.Kind == StringLit {
			fmt.Fprintf(b, "%q", x.Value)
		} else {
			b.WriteString(x.Value)
		}
	case *ThisExpr:
		b.WriteString("this")
	case *FuncLit:
		b.WriteString("function")
		if x.Name != nil {
			b.WriteString(" " + x.Name.Value)
		}
		b.WriteString("(" + nameList(x.Params) + ") {...}")
	case *ObjectLit:
		b.WriteString("{")
		for i, kv := range x.Props {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(kv.Key.Value + ": ")
			writeExpr(b, kv.Value)
		}
		b.WriteString("}")
	case *ArrayLit:
		b.WriteString("[")
		writeList(b, x.Elems)
		b.WriteString("]")
	case *Operation:
		if x.Y == nil {
			b.WriteString(x.Op.String())
			if x.Op.IsKeyword() {
				b.WriteString(" ")
			}
			writeExpr(b, x.X)
			return
		}
		writeExpr(b, x.X)
		b.WriteString(" " + x.Op.String() + " ")
		writeExpr(b, x.Y)
	case *AssignExpr:
		writeExpr(b, x.LHS)
		if x.Op != 0 {
			b.WriteString(" " + x.Op.String() + "= ")
		} else {
			b.WriteString(" = ")
		}
		writeExpr(b, x.RHS)
	case *UpdateExpr:
		if x.Prefix {
			b.WriteString(x.Op.String())
		}
		writeExpr(b, x.X)
		if !x.Prefix {
			b.WriteString(x.Op.String())
		}
	case *CondExpr:
		writeExpr(b, x.Cond)
		b.WriteString(" ? ")
		writeExpr(b, x.X)
		b.WriteString(" : ")
		writeExpr(b, x.Y)
	case *SeqExpr:
		writeList(b, x.List)
	case *CallExpr:
		writeExpr(b, x.Fun)
		b.WriteString("(")
		writeList(b, x.Args)
		b.WriteString(")")
	case *NewExpr:
		b.WriteString("new ")
		writeExpr(b, x.Fun)
		b.WriteString("(")
		writeList(b, x.Args)
		b.WriteString(")")
	case *IndexExpr:
		writeExpr(b, x.X)
		b.WriteString("[")
		writeExpr(b, x.Index)
		b.WriteString("]")
	case *SelectorExpr:
		writeExpr(b, x.X)
		b.WriteString("." + x.Sel.Value)
	case *ParenExpr:
		b.WriteString("(")
		writeExpr(b, x.X)
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "%T", x)
	}
}

func writeList(b *strings.Builder, list []Expr) {
	for i, x := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, x)
	}
}
