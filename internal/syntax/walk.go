package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkStmts(n.Body, v)

	case *VarDecl:
		for _, spec := range n.List {
			Walk(spec, v)
		}

	case *VarSpec:
		Walk(n.Name, v)
		if n.Value != nil {
			Walk(n.Value, v)
		}

	case *FuncDecl:
		Walk(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		Walk(n.Body, v)

	case *FuncLit:
		if n.Name != nil {
			Walk(n.Name, v)
		}
		for _, p := range n.Params {
			Walk(p, v)
		}
		Walk(n.Body, v)

	case *ObjectLit:
		for _, kv := range n.Props {
			Walk(kv, v)
		}

	case *KeyValueExpr:
		Walk(n.Key, v)
		Walk(n.Value, v)

	case *ArrayLit:
		walkExprs(n.Elems, v)

	case *Operation:
		Walk(n.X, v)
		if n.Y != nil {
			Walk(n.Y, v)
		}

	case *AssignExpr:
		Walk(n.LHS, v)
		Walk(n.RHS, v)

	case *UpdateExpr:
		Walk(n.X, v)

	case *CondExpr:
		Walk(n.Cond, v)
		Walk(n.X, v)
		Walk(n.Y, v)

	case *SeqExpr:
		walkExprs(n.List, v)

	case *CallExpr:
		Walk(n.Fun, v)
		walkExprs(n.Args, v)

	case *NewExpr:
		Walk(n.Fun, v)
		walkExprs(n.Args, v)

	case *IndexExpr:
		Walk(n.X, v)
		Walk(n.Index, v)

	case *SelectorExpr:
		Walk(n.X, v)
		Walk(n.Sel, v)

	case *ParenExpr:
		Walk(n.X, v)

	case *ExprStmt:
		Walk(n.X, v)

	case *BlockStmt:
		walkStmts(n.Stmts, v)

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *DoWhileStmt:
		Walk(n.Body, v)
		Walk(n.Cond, v)

	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, v)
		}
		if n.Cond != nil {
			Walk(n.Cond, v)
		}
		if n.Post != nil {
			Walk(n.Post, v)
		}
		Walk(n.Body, v)

	case *ReturnStmt:
		if n.Result != nil {
			Walk(n.Result, v)
		}

	case *ThrowStmt:
		Walk(n.X, v)

	// Leaf nodes: Name, BasicLit, ThisExpr, EmptyStmt, BranchStmt
	// No children to visit
	}
}

func walkStmts(list []Stmt, v Visitor) {
	for _, s := range list {
		Walk(s, v)
	}
}

func walkExprs(list []Expr, v Visitor) {
	for _, x := range list {
		Walk(x, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// InspectBody is like Inspect but does not descend into nested function
// literals or function declarations below node. Function nodes themselves
// are still passed to f.
func InspectBody(node Node, f func(Node) bool) {
	Inspect(node, func(n Node) bool {
		if !f(n) {
			return false
		}
		if n == node {
			return true
		}
		switch n.(type) {
		case *FuncLit, *FuncDecl:
			return false
		}
		return true
	})
}
