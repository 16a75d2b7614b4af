package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Expressions, Statements, and Declarations.
// All nodes implement the Node interface. Declarations are statements too:
// JavaScript allows var and function declarations wherever a statement may
// appear.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	End() Pos // position of first character immediately after the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Stmt
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) End() Pos { return n.pos } // default: return start position
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// decl is embedded in all declaration nodes.
type decl struct{ stmt }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Programs and Declarations

// Program represents one or more concatenated source files.
type Program struct {
	node
	Body []Stmt // top-level statements in source order
}

// VarDecl represents a variable statement: var a = 1, b
type VarDecl struct {
	decl
	List []*VarSpec // declarators
}

// VarSpec represents a single declarator inside a VarDecl.
type VarSpec struct {
	node
	Name  *Name // variable name
	Value Expr  // initial value (nil if none)
}

// FuncDecl represents a function declaration: function Name(Params) { Body }
type FuncDecl struct {
	decl
	Name   *Name      // function name
	Params []*Name    // parameter names
	Body   *BlockStmt // function body
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string // identifier string
}

// BasicLit represents a number, string, boolean or null literal.
type BasicLit struct {
	expr
	Value string  // literal text (decoded for strings)
	Kind  LitKind // NumberLit, StringLit, BoolLit, NullLit
}

// FuncLit represents a function expression: function [Name](Params) { Body }
type FuncLit struct {
	expr
	Name   *Name      // optional name (nil for anonymous functions)
	Params []*Name    // parameter names
	Body   *BlockStmt // function body
}

// ObjectLit represents an object literal: { key: value, ... }
type ObjectLit struct {
	expr
	Props  []*KeyValueExpr // properties in source order
	Rbrace Pos             // position of closing brace
}

// KeyValueExpr represents a key: value property in an object literal.
// String and number keys are normalized to a Name.
type KeyValueExpr struct {
	expr
	Key   *Name // property name
	Value Expr  // property value
}

// ArrayLit represents an array literal: [a, b, c]
type ArrayLit struct {
	expr
	Elems []Expr // elements
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
// For binary operations, both X and Y are set.
// Logical operators (&& and ||) are Operations as well.
type Operation struct {
	expr
	Op Token // operator token
	X  Expr  // left operand (or only operand for unary)
	Y  Expr  // right operand (nil for unary)
}

// AssignExpr represents an assignment: LHS = RHS or LHS op= RHS.
type AssignExpr struct {
	expr
	Op  Token // 0 for plain assignment, otherwise the binary operator of op=
	LHS Expr  // assignment target (Name, SelectorExpr or IndexExpr)
	RHS Expr  // assigned value
}

// UpdateExpr represents ++X, --X, X++ or X--.
type UpdateExpr struct {
	expr
	Op     Token // _Inc or _Dec
	X      Expr  // operand
	Prefix bool  // true for ++X and --X
}

// CondExpr represents a conditional expression: Cond ? X : Y
type CondExpr struct {
	expr
	Cond Expr // condition
	X    Expr // value if true
	Y    Expr // value if false
}

// SeqExpr represents a comma expression: a, b, c
type SeqExpr struct {
	expr
	List []Expr // at least two expressions
}

// CallExpr represents a function call: Fun(Args...)
type CallExpr struct {
	expr
	Fun  Expr   // function expression
	Args []Expr // argument list
}

// IndexExpr represents a computed member access: X[Index]
type IndexExpr struct {
	expr
	X     Expr // indexed expression
	Index Expr // index expression
}

// SelectorExpr represents a member access: X.Sel
type SelectorExpr struct {
	expr
	X   Expr  // receiver expression
	Sel *Name // property name
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr // inner expression
}

// NewExpr represents a constructor call: new Fun(Args...)
type NewExpr struct {
	expr
	Fun  Expr   // constructor
	Args []Expr // argument list
}

// ThisExpr represents the this keyword.
type ThisExpr struct {
	expr
}

// ----------------------------------------------------------------------------
// Statements

// EmptyStmt represents an empty statement (just a semicolon).
type EmptyStmt struct {
	stmt
}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	stmt
	X Expr // expression
}

// BlockStmt represents a block statement: { Stmts... }
type BlockStmt struct {
	stmt
	Stmts  []Stmt // statements
	Rbrace Pos    // position of closing brace
}

// IfStmt represents an if statement: if (Cond) Then [else Else]
type IfStmt struct {
	stmt
	Cond Expr // condition expression
	Then Stmt // then branch
	Else Stmt // else branch (nil, *IfStmt, or any statement)
}

// WhileStmt represents a while loop: while (Cond) Body
type WhileStmt struct {
	stmt
	Cond Expr // loop condition
	Body Stmt // loop body
}

// DoWhileStmt represents a do loop: do Body while (Cond)
type DoWhileStmt struct {
	stmt
	Body Stmt // loop body
	Cond Expr // loop condition
}

// ForStmt represents a for loop: for (Init; Cond; Post) Body
type ForStmt struct {
	stmt
	Init Stmt // *VarDecl, *ExprStmt, or nil
	Cond Expr // condition (nil means forever)
	Post Expr // post expression (nil if none)
	Body Stmt // loop body
}

// ReturnStmt represents a return statement: return [Result]
type ReturnStmt struct {
	stmt
	Result Expr // return value (nil for bare return)
}

// BranchStmt represents break or continue.
type BranchStmt struct {
	stmt
	Tok Token // _Break or _Continue
}

// ThrowStmt represents a throw statement: throw X
type ThrowStmt struct {
	stmt
	X Expr // thrown value
}

// ----------------------------------------------------------------------------
// End positions for nodes with explicit closing tokens

// End returns the position after the closing brace.
func (b *BlockStmt) End() Pos {
	return NewPos(b.Rbrace.filename, b.Rbrace.line, b.Rbrace.col+1)
}

// End returns the position after the closing brace.
func (o *ObjectLit) End() Pos {
	return NewPos(o.Rbrace.filename, o.Rbrace.line, o.Rbrace.col+1)
}

// End returns the position after the function body.
func (f *FuncDecl) End() Pos {
	return f.Body.End()
}

// End returns the position after the function body.
func (f *FuncLit) End() Pos {
	return f.Body.End()
}

// Unparen returns x with any enclosing parentheses removed.
func Unparen(x Expr) Expr {
	for {
		p, ok := x.(*ParenExpr)
		if !ok {
			return x
		}
		x = p.X
	}
}
