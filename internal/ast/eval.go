/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package ast

import "github.com/gmofishsauce/tsc/internal/token"

// Evaluate attempts compile-time constant folding (spec.md §4.7,
// "Constant evaluation"). Literals and the two unary operators succeed.
// A BinOpExpr succeeds iff both Rest and Term succeed. Identifiers,
// calls, address-of, dereference, and indexing all fail (ok=false);
// Translate is responsible for raising a translation error at call sites
// that require a successful evaluation (global initialisers, array
// bounds, the immediate-form shortcut).
func Evaluate(n Node) (value int, ok bool) {
	switch v := n.(type) {
	case *IntLitTerm:
		return v.Value, true

	case *TermExpr:
		return Evaluate(v.Term)

	case *ParenTerm:
		return Evaluate(v.Inner)

	case *NegExpr:
		val, ok := Evaluate(v.Operand)
		if !ok {
			return 0, false
		}
		return -val, true

	case *NotExpr:
		val, ok := Evaluate(v.Operand)
		if !ok {
			return 0, false
		}
		if val == 0 {
			return 1, true
		}
		return 0, true

	case *BinOpExpr:
		left, ok := Evaluate(v.Rest)
		if !ok {
			return 0, false
		}
		right, ok := Evaluate(v.Term)
		if !ok {
			return 0, false
		}
		return foldBinOp(v.OpTag, left, right)

	default:
		return 0, false
	}
}

func foldBinOp(op token.Tag, left, right int) (int, bool) {
	switch op {
	case token.Plus:
		return left + right, true
	case token.Minus:
		return left - right, true
	case token.Star:
		return left * right, true
	case token.Amp:
		return left & right, true
	case token.Pipe:
		return left | right, true
	case token.Eq:
		return boolInt(left == right), true
	case token.Neq:
		return boolInt(left != right), true
	case token.Lt:
		return boolInt(left < right), true
	case token.Gt:
		return boolInt(left > right), true
	case token.Le:
		return boolInt(left <= right), true
	case token.Ge:
		return boolInt(left >= right), true
	default:
		return 0, false
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
