package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a node as a canonical S-expression, used both for
// debugging and for the golden "parse then print is stable" property
// of spec.md 8. It depends only on node structure, never on addresses
// or map iteration order, so it is deterministic across runs.
func Print(n Node) string {
	var sb strings.Builder
	printNode(&sb, n)
	return sb.String()
}

func printNode(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case nil:
		sb.WriteString("nil")
	case *Module:
		printList(sb, "module", stmtsToNodes(v.Statements))
	case *Block:
		printList(sb, "block", stmtsToNodes(v.Statements))
	case *Identifier:
		fmt.Fprintf(sb, "%s", v.Name)
	case *NullLiteral:
		sb.WriteString("null")
	case *BoolLiteral:
		fmt.Fprintf(sb, "%t", v.Value)
	case *IntLiteral:
		sb.WriteString(strconv.FormatInt(v.Value, 10))
	case *FloatLiteral:
		sb.WriteString(strconv.FormatFloat(v.Value, 'g', -1, 64))
	case *StringLiteral:
		fmt.Fprintf(sb, "%q", v.Value)
	case *ArrayLiteral:
		printList(sb, "array", exprsToNodes(v.Elements))
	case *ObjectLiteral:
		sb.WriteString("(object")
		for _, e := range v.Entries {
			sb.WriteString(" (")
			sb.WriteString(e.Key)
			sb.WriteString(" ")
			printNode(sb, e.Value)
			sb.WriteString(")")
		}
		sb.WriteString(")")
	case *Call:
		sb.WriteString("(call ")
		printNode(sb, v.Callee)
		for _, a := range v.Args {
			sb.WriteString(" ")
			if a.Name != "" {
				sb.WriteString(a.Name)
				sb.WriteString(": ")
			}
			printNode(sb, a.Value)
		}
		sb.WriteString(")")
	case *Index:
		sb.WriteString("(index ")
		printNode(sb, v.Target)
		sb.WriteString(" ")
		printNode(sb, v.Key)
		sb.WriteString(")")
	case *Dot:
		op := "."
		if v.NullSafe {
			op = "?."
		}
		fmt.Fprintf(sb, "(%s ", op)
		printNode(sb, v.Target)
		fmt.Fprintf(sb, " %s)", v.Property)
	case *Unary:
		fmt.Fprintf(sb, "(%s ", v.Op)
		printNode(sb, v.Operand)
		sb.WriteString(")")
	case *Binary:
		fmt.Fprintf(sb, "(%s ", v.Op)
		printNode(sb, v.Left)
		sb.WriteString(" ")
		printNode(sb, v.Right)
		sb.WriteString(")")
	case *Ternary:
		sb.WriteString("(?: ")
		printNode(sb, v.Cond)
		sb.WriteString(" ")
		printNode(sb, v.Then)
		sb.WriteString(" ")
		printNode(sb, v.Else)
		sb.WriteString(")")
	case *Predicate:
		sb.WriteString("(predicate ")
		printNode(sb, v.Comparison)
		sb.WriteString(")")
	case *TypeRef:
		sb.WriteString(v.Name)
	case *Declare:
		kw := "var"
		if v.Type != nil {
			kw = v.Type.Name
		}
		fmt.Fprintf(sb, "(declare %s %s", kw, v.Name)
		if v.Init != nil {
			sb.WriteString(" ")
			printNode(sb, v.Init)
		}
		sb.WriteString(")")
	case *Assign:
		sb.WriteString("(= ")
		printNode(sb, v.Target)
		sb.WriteString(" ")
		printNode(sb, v.Value)
		sb.WriteString(")")
	case *Mutate:
		fmt.Fprintf(sb, "(%s ", v.Op)
		printNode(sb, v.Target)
		if v.Value != nil {
			sb.WriteString(" ")
			printNode(sb, v.Value)
		}
		sb.WriteString(")")
	case *ExprStmt:
		printNode(sb, v.Expr)
	case *Break:
		sb.WriteString("(break)")
	case *Continue:
		sb.WriteString("(continue)")
	case *Do:
		sb.WriteString("(do ")
		printNode(sb, v.Body)
		sb.WriteString(" ")
		printNode(sb, v.Cond)
		sb.WriteString(")")
	case *While:
		sb.WriteString("(while ")
		printHead(sb, v.Head)
		sb.WriteString(" ")
		printNode(sb, v.Body)
		sb.WriteString(")")
	case *If:
		sb.WriteString("(if ")
		printHead(sb, v.Head)
		sb.WriteString(" ")
		printNode(sb, v.Then)
		if v.Else != nil {
			sb.WriteString(" ")
			printNode(sb, v.Else)
		}
		sb.WriteString(")")
	case *ForClassic:
		sb.WriteString("(for ")
		printNode(sb, v.Init)
		sb.WriteString(" ")
		printNode(sb, v.Cond)
		sb.WriteString(" ")
		printNode(sb, v.Post)
		sb.WriteString(" ")
		printNode(sb, v.Body)
		sb.WriteString(")")
	case *ForEach:
		fmt.Fprintf(sb, "(foreach %s ", v.Name)
		printNode(sb, v.Collection)
		sb.WriteString(" ")
		printNode(sb, v.Body)
		sb.WriteString(")")
	case *Switch:
		sb.WriteString("(switch ")
		printHead(sb, v.Head)
		for _, c := range v.Clauses {
			sb.WriteString(" (")
			if c.IsDefault {
				sb.WriteString("default")
			} else {
				sb.WriteString("case ")
				printNode(sb, c.Test)
			}
			for _, s := range c.Body {
				sb.WriteString(" ")
				printNode(sb, s)
			}
			sb.WriteString(")")
		}
		sb.WriteString(")")
	case *Try:
		sb.WriteString("(try ")
		printNode(sb, v.Body)
		for _, c := range v.Catches {
			fmt.Fprintf(sb, " (catch %s %s ", c.Type.Name, c.Name)
			printNode(sb, c.Body)
			sb.WriteString(")")
		}
		if v.Finally != nil {
			sb.WriteString(" (finally ")
			printNode(sb, v.Finally)
			sb.WriteString(")")
		}
		sb.WriteString(")")
	case *Return:
		sb.WriteString("(return")
		if v.Value != nil {
			sb.WriteString(" ")
			printNode(sb, v.Value)
		}
		sb.WriteString(")")
	case *Throw:
		sb.WriteString("(throw")
		if v.Value != nil {
			sb.WriteString(" ")
			printNode(sb, v.Value)
		}
		sb.WriteString(")")
	case *YieldStmt:
		sb.WriteString("(yield")
		if v.Spread {
			sb.WriteString(" ...")
		}
		sb.WriteString(" ")
		printNode(sb, v.Value)
		sb.WriteString(")")
	case *FunctionDef:
		fmt.Fprintf(sb, "(func %s %s (", v.ReturnType.Name, v.Name)
		for i, p := range v.Params {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(sb, "%s:%s", p.Name, p.Type.Name)
		}
		sb.WriteString(") ")
		printNode(sb, v.Body)
		sb.WriteString(")")
	case *GeneratorDef:
		fmt.Fprintf(sb, "(generator %s %s (", v.YieldType.Name, v.Name)
		for i, p := range v.Params {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(sb, "%s:%s", p.Name, p.Type.Name)
		}
		sb.WriteString(") ")
		printNode(sb, v.Body)
		sb.WriteString(")")
	case *TypeDef:
		fmt.Fprintf(sb, "(typedef %s %s)", v.Name, v.Type.Name)
	default:
		fmt.Fprintf(sb, "(unknown %T)", v)
	}
}

func printHead(sb *strings.Builder, h Head) {
	if h.Guard != nil {
		fmt.Fprintf(sb, "(guard %s %s ", h.Guard.Type.Name, h.Guard.Name)
		printNode(sb, h.Guard.Init)
		sb.WriteString(")")
		return
	}
	printNode(sb, h.Expr)
}

func printList(sb *strings.Builder, tag string, nodes []Node) {
	fmt.Fprintf(sb, "(%s", tag)
	for _, n := range nodes {
		sb.WriteString(" ")
		printNode(sb, n)
	}
	sb.WriteString(")")
}

func stmtsToNodes(stmts []Stmt) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func exprsToNodes(exprs []Expr) []Node {
	out := make([]Node, len(exprs))
	for i, e := range exprs {
		out[i] = e
	}
	return out
}
