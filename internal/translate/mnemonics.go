/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package translate

import "github.com/gmofishsauce/tsc/internal/token"

// Mnemonic text, grounded on the original compiler's instructions.h and
// spec.md §6's exact mnemonic list.
const (
	mnemAdd  = "add"
	mnemSub  = "sub"
	mnemMult = "mult"
	mnemNeg  = "neg"
	mnemAnd  = "and"
	mnemOr   = "or"
	mnemNot  = "not"
	mnemXor  = "xor"

	mnemAddImm = "addi"
	mnemSubImm = "subi"

	mnemCmp    = "cmp"
	mnemCmpImm = "cmpi"

	mnemMovHi = "movhi"
	mnemMovLo = "movlo"
	mnemMove  = "move"

	mnemCall = "call"
	mnemRet  = "ret"
	mnemJmp  = "jmp"

	mnemBreq = "breq"
	mnemBrne = "brne"
	mnemBrlt = "brlt"
	mnemBrgt = "brgt"
	mnemBrle = "brle"
	mnemBrge = "brge"
)

// binopInstr maps a non-relational binop tag to its register-register and
// immediate mnemonic pair (spec.md §4.7, "immediate form shortcut").
func binopInstr(op token.Tag) (instr, imm string, ok bool) {
	switch op {
	case token.Plus:
		return mnemAdd, mnemAddImm, true
	case token.Minus:
		return mnemSub, mnemSubImm, true
	case token.Star:
		return mnemMult, "", true // no immediate-multiply mnemonic in the set
	case token.Amp:
		return mnemAnd, "", true
	case token.Pipe:
		return mnemOr, "", true
	default:
		return "", "", false
	}
}

// relationalInstr maps a relational binop tag to its branch-on-true
// mnemonic (spec.md §4.7, "Relational lowering").
func relationalInstr(op token.Tag) (branch string, ok bool) {
	switch op {
	case token.Eq:
		return mnemBreq, true
	case token.Neq:
		return mnemBrne, true
	case token.Lt:
		return mnemBrlt, true
	case token.Gt:
		return mnemBrgt, true
	case token.Le:
		return mnemBrle, true
	case token.Ge:
		return mnemBrge, true
	default:
		return "", false
	}
}

// isRelational reports whether op is one of the six comparison operators,
// which lower through cmp/branch rather than a plain arithmetic mnemonic.
func isRelational(op token.Tag) bool {
	_, ok := relationalInstr(op)
	return ok
}

// dataDirective returns the `.db`/`.dh`/`.dw` directive for a value of
// the given byte size (spec.md §6).
func dataDirective(size int) string {
	switch size {
	case 1:
		return ".db"
	case 4:
		return ".dw"
	default:
		return ".dh"
	}
}
