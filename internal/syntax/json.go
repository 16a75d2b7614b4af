package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

// object starts the JSON map for a node.
func object(kind string, pos Pos) map[string]interface{} {
	return map[string]interface{}{
		"type": kind,
		"pos":  pos.String(),
	}
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		m := object("Program", n.pos)
		m["body"] = mapSlice(n.Body, toStmtJSON)
		return m

	case *VarDecl:
		m := object("VarDecl", n.pos)
		m["list"] = mapSlice(n.List, func(s *VarSpec) interface{} { return toJSON(s) })
		return m

	case *VarSpec:
		m := object("VarSpec", n.pos)
		m["name"] = n.Name.Value
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}
		return m

	case *FuncDecl:
		m := object("FuncDecl", n.pos)
		m["name"] = n.Name.Value
		m["params"] = mapSlice(n.Params, func(p *Name) interface{} { return p.Value })
		m["body"] = toJSON(n.Body)
		return m

	case *FuncLit:
		m := object("FuncLit", n.pos)
		if n.Name != nil {
			m["name"] = n.Name.Value
		}
		m["params"] = mapSlice(n.Params, func(p *Name) interface{} { return p.Value })
		m["body"] = toJSON(n.Body)
		return m

	case *BlockStmt:
		m := object("BlockStmt", n.pos)
		m["stmts"] = mapSlice(n.Stmts, toStmtJSON)
		return m

	case *IfStmt:
		m := object("IfStmt", n.pos)
		m["cond"] = toJSON(n.Cond)
		m["then"] = toJSON(n.Then)
		if n.Else != nil {
			m["else"] = toJSON(n.Else)
		}
		return m

	case *WhileStmt:
		m := object("WhileStmt", n.pos)
		m["cond"] = toJSON(n.Cond)
		m["body"] = toJSON(n.Body)
		return m

	case *DoWhileStmt:
		m := object("DoWhileStmt", n.pos)
		m["body"] = toJSON(n.Body)
		m["cond"] = toJSON(n.Cond)
		return m

	case *ForStmt:
		m := object("ForStmt", n.pos)
		if n.Init != nil {
			m["init"] = toJSON(n.Init)
		}
		if n.Cond != nil {
			m["cond"] = toJSON(n.Cond)
		}
		if n.Post != nil {
			m["post"] = toJSON(n.Post)
		}
		m["body"] = toJSON(n.Body)
		return m

	case *ReturnStmt:
		m := object("ReturnStmt", n.pos)
		if n.Result != nil {
			m["result"] = toJSON(n.Result)
		}
		return m

	case *ThrowStmt:
		m := object("ThrowStmt", n.pos)
		m["x"] = toJSON(n.X)
		return m

	case *BranchStmt:
		m := object("BranchStmt", n.pos)
		m["tok"] = n.Tok.String()
		return m

	case *ExprStmt:
		m := object("ExprStmt", n.pos)
		m["x"] = toJSON(n.X)
		return m

	case *EmptyStmt:
		return object("EmptyStmt", n.pos)

	case *Name:
		m := object("Name", n.pos)
		m["value"] = n.Value
		return m

	case *BasicLit:
		m := object("BasicLit", n.pos)
		m["kind"] = n.Kind.String()
		m["value"] = n.Value
		return m

	case *ThisExpr:
		return object("ThisExpr", n.pos)

	case *Operation:
		if n.Y == nil {
			m := object("UnaryOp", n.pos)
			m["op"] = n.Op.String()
			m["x"] = toJSON(n.X)
			return m
		}
		m := object("BinaryOp", n.pos)
		m["op"] = n.Op.String()
		m["x"] = toJSON(n.X)
		m["y"] = toJSON(n.Y)
		return m

	case *AssignExpr:
		m := object("AssignExpr", n.pos)
		op := "="
		if n.Op != 0 {
			op = n.Op.String() + "="
		}
		m["op"] = op
		m["lhs"] = toJSON(n.LHS)
		m["rhs"] = toJSON(n.RHS)
		return m

	case *UpdateExpr:
		m := object("UpdateExpr", n.pos)
		m["op"] = n.Op.String()
		m["prefix"] = n.Prefix
		m["x"] = toJSON(n.X)
		return m

	case *CondExpr:
		m := object("CondExpr", n.pos)
		m["cond"] = toJSON(n.Cond)
		m["x"] = toJSON(n.X)
		m["y"] = toJSON(n.Y)
		return m

	case *SeqExpr:
		m := object("SeqExpr", n.pos)
		m["list"] = mapSlice(n.List, toExprJSON)
		return m

	case *CallExpr:
		m := object("CallExpr", n.pos)
		m["fun"] = toJSON(n.Fun)
		m["args"] = mapSlice(n.Args, toExprJSON)
		return m

	case *NewExpr:
		m := object("NewExpr", n.pos)
		m["fun"] = toJSON(n.Fun)
		m["args"] = mapSlice(n.Args, toExprJSON)
		return m

	case *IndexExpr:
		m := object("IndexExpr", n.pos)
		m["x"] = toJSON(n.X)
		m["index"] = toJSON(n.Index)
		return m

	case *SelectorExpr:
		m := object("SelectorExpr", n.pos)
		m["x"] = toJSON(n.X)
		m["sel"] = n.Sel.Value
		return m

	case *ParenExpr:
		m := object("ParenExpr", n.pos)
		m["x"] = toJSON(n.X)
		return m

	case *ObjectLit:
		m := object("ObjectLit", n.pos)
		m["props"] = mapSlice(n.Props, func(kv *KeyValueExpr) interface{} { return toJSON(kv) })
		return m

	case *KeyValueExpr:
		m := object("KeyValue", n.pos)
		m["key"] = n.Key.Value
		m["value"] = toJSON(n.Value)
		return m

	case *ArrayLit:
		m := object("ArrayLit", n.pos)
		m["elems"] = mapSlice(n.Elems, toExprJSON)
		return m
	}

	return object("Unknown", node.Pos())
}

func toStmtJSON(s Stmt) interface{} { return toJSON(s) }
func toExprJSON(x Expr) interface{} { return toJSON(x) }

// Helper functions to map slices

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
