/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package ast

import (
	"fmt"
	"strings"

	"github.com/gmofishsauce/tsc/internal/token"
)

var opText = map[token.Tag]string{
	token.Plus:  "+",
	token.Minus: "-",
	token.Star:  "*",
	token.Amp:   "&",
	token.Pipe:  "|",
	token.Eq:    "==",
	token.Neq:   "!=",
	token.Lt:    "<",
	token.Gt:    ">",
	token.Le:    "<=",
	token.Ge:    ">=",
}

// GetString renders n for the --dump-ast debug flag and for the
// left-associativity property tests in spec.md §8 ("a ⊕ b ⊕ c
// pretty-prints as ((a) ⊕ b) ⊕ c"). It needs no type switch over every
// variant of the tree beyond expressions/terms: statements and
// declarations are rendered structurally from their named fields.
func GetString(n Node) string {
	switch v := n.(type) {
	case nil:
		return "<nil>"

	case *Program:
		parts := make([]string, len(v.Decls))
		for i, d := range v.Decls {
			parts[i] = GetString(d)
		}
		return strings.Join(parts, "\n")

	case *VarDecl:
		ptr := ""
		if v.IsPtr {
			ptr = "*"
		}
		if v.Init != nil {
			return fmt.Sprintf("%s%s %s = %s;", v.TypeName, ptr, v.Name, GetString(v.Init))
		}
		return fmt.Sprintf("%s%s %s;", v.TypeName, ptr, v.Name)

	case *ArrayDecl:
		switch v.AKind {
		case ArrayInitList:
			parts := make([]string, len(v.InitList))
			for i, e := range v.InitList {
				parts[i] = GetString(e)
			}
			return fmt.Sprintf("%s %s[] = {%s};", v.TypeName, v.Name, strings.Join(parts, ", "))
		case ArrayString:
			return fmt.Sprintf("%s %s[] = %q;", v.TypeName, v.Name, v.StrVal)
		default:
			return fmt.Sprintf("%s %s[%s];", v.TypeName, v.Name, GetString(v.Size))
		}

	case *ParamDecl:
		ptr := ""
		if v.IsPtr {
			ptr = "*"
		}
		return fmt.Sprintf("%s%s %s", v.TypeName, ptr, v.Name)

	case *FuncDecl:
		params := make([]string, len(v.Params))
		for i, p := range v.Params {
			params[i] = GetString(p)
		}
		sig := fmt.Sprintf("%s %s(%s)", v.TypeName, v.Name, strings.Join(params, ", "))
		if v.Body == nil {
			return sig + ";"
		}
		return sig + " " + GetString(v.Body)

	case *BlockStmt:
		parts := make([]string, len(v.Stmts))
		for i, s := range v.Stmts {
			parts[i] = GetString(s)
		}
		return "{ " + strings.Join(parts, " ") + " }"

	case *IfStmt:
		if v.Else != nil {
			return fmt.Sprintf("if (%s) %s else %s", GetString(v.Cond), GetString(v.Then), GetString(v.Else))
		}
		return fmt.Sprintf("if (%s) %s", GetString(v.Cond), GetString(v.Then))

	case *WhileStmt:
		return fmt.Sprintf("while (%s) %s", GetString(v.Cond), GetString(v.Body))

	case *AsmStmt:
		return fmt.Sprintf("asm(%q, ...);", v.Raw)

	case *BreakStmt:
		return "break;"

	case *ContinueStmt:
		return "continue;"

	case *AssignStmt:
		return fmt.Sprintf("%s = %s;", v.Name, GetString(v.Value))

	case *IndexedAssignStmt:
		return fmt.Sprintf("%s[%s] = %s;", v.Name, GetString(v.Index), GetString(v.Value))

	case *DerefAssignStmt:
		return fmt.Sprintf("*%s = %s;", v.Name, GetString(v.Value))

	case *ReturnStmt:
		return fmt.Sprintf("return %s;", GetString(v.Value))

	case *ExprStmt:
		return GetString(v.Expr) + ";"

	case *NegExpr:
		return "-" + GetString(v.Operand)

	case *NotExpr:
		return "!" + GetString(v.Operand)

	case *TermExpr:
		return GetString(v.Term)

	case *BinOpExpr:
		return fmt.Sprintf("(%s %s %s)", GetString(v.Rest), opText[v.OpTag], GetString(v.Term))

	case *IdentTerm:
		return v.Name

	case *IntLitTerm:
		return fmt.Sprintf("%d", v.Value)

	case *CallTerm:
		parts := make([]string, len(v.Params))
		for i, p := range v.Params {
			parts[i] = GetString(p)
		}
		return fmt.Sprintf("%s(%s)", v.Name, strings.Join(parts, ", "))

	case *ParenTerm:
		return "(" + GetString(v.Inner) + ")"

	case *AddrOfTerm:
		return "&" + v.Name

	case *DerefTerm:
		return "*" + v.Name

	case *IndexedTerm:
		return fmt.Sprintf("%s[%s]", v.Name, GetString(v.Index))

	default:
		return fmt.Sprintf("<unknown node kind %T>", n)
	}
}
