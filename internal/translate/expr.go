/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package translate

import (
	"github.com/gmofishsauce/tsc/internal/ast"
	"github.com/gmofishsauce/tsc/internal/symtab"
)

// lookupVar resolves name through the symbol table or raises a
// translation error at n's position.
func (s *State) lookupVar(name string, n ast.Node) *symtab.VarInfo {
	v, ok := s.syms.Get(name)
	if !ok {
		s.fail(n, "undeclared identifier %q", name)
	}
	return v
}

// declSize returns the storage size of a declared name of the given
// built-in type: a pointer is always 2 bytes (POINTER_SIZE) regardless
// of what it points to, otherwise the type table's size.
func (s *State) declSize(typeName string, isPtr bool) int {
	if isPtr {
		return 2
	}
	d, ok := s.types.Lookup(typeName)
	if !ok {
		return 2
	}
	return d.Size
}

// elemSize returns the size of the value v points to or is indexed
// into — v.Type names the pointee/element type directly, independent
// of v's own storage size (varSize), which for a pointer is always 2.
func (s *State) elemSize(v *symtab.VarInfo) int {
	d, ok := s.types.Lookup(v.Type)
	if !ok {
		return 2
	}
	return d.Size
}

// loadAddress computes v's runtime address into a fresh register: a
// symbolic addi off NULL for a global (the assembler resolves the
// label), or an addi off FP for a local or parameter.
func (s *State) loadAddress(v *symtab.VarInfo) int {
	reg, _ := s.allocateTemp()
	if v.Address.IsGlobal {
		s.triOpImmStr(mnemAddImm, reg, nullReg, v.Address.GlobalName)
	} else {
		s.emitAddImm(reg, fpReg, v.Address.BaseOffset)
	}
	return reg
}

// translateExpr lowers one expr node, returning the register holding
// its value.
func (s *State) translateExpr(n ast.Node) int {
	switch v := n.(type) {
	case *ast.TermExpr:
		return s.translateTerm(v.Term)
	case *ast.NegExpr:
		return s.translateNegExpr(v)
	case *ast.NotExpr:
		return s.translateNotExpr(v)
	case *ast.BinOpExpr:
		return s.translateBinOp(v)
	default:
		// A BinOpExpr's Rest/Term may hold a bare term node rather than a
		// TermExpr wrapper; translateTerm rejects anything else.
		return s.translateTerm(n)
	}
}

func (s *State) translateNegExpr(n *ast.NegExpr) int {
	if val, ok := ast.Evaluate(n); ok {
		reg, _ := s.allocateTempImm(val)
		return reg
	}
	reg := s.translateExpr(n.Operand)
	reg = s.takeOwnershipOrAllocate(reg)
	s.emitNeg(reg, reg)
	return reg
}

// translateNotExpr lowers logical negation of a term: the machine has
// no dedicated boolean-not instruction, so !x is synthesized the same
// way a relational comparison is — compare against zero and branch
// into the true/end-label pattern (emitBoolResult).
func (s *State) translateNotExpr(n *ast.NotExpr) int {
	if val, ok := ast.Evaluate(n); ok {
		reg, _ := s.allocateTempImm(val)
		return reg
	}
	reg := s.translateExpr(n.Operand)
	reg = s.takeOwnershipOrAllocate(reg)
	s.emitCmpImm(reg, 0)
	s.emitBoolResult(reg, mnemBreq)
	return reg
}

// emitBoolResult writes the shared cmp/branch tail that turns a
// just-emitted comparison into a 0/1 value in resultReg (grounded on
// translate_binop_relational's true_label/end_label pattern).
func (s *State) emitBoolResult(resultReg int, branchOnTrue string) {
	trueLabel := s.newLabel()
	endLabel := s.newLabel()
	s.branch(branchOnTrue, trueLabel)
	s.emitAddImm(resultReg, nullReg, 0)
	s.branch(mnemJmp, endLabel)
	s.emitLabel(trueLabel)
	s.emitAddImm(resultReg, nullReg, 1)
	s.emitLabel(endLabel)
}

func (s *State) translateTerm(n ast.Node) int {
	switch v := n.(type) {
	case *ast.IdentTerm:
		vi := s.lookupVar(v.Name, v)
		return s.materialize(vi)
	case *ast.IntLitTerm:
		reg, _ := s.allocateTempImm(v.Value)
		return reg
	case *ast.ParenTerm:
		return s.translateExpr(v.Inner)
	case *ast.CallTerm:
		return s.translateCallTerm(v)
	case *ast.AddrOfTerm:
		vi := s.lookupVar(v.Name, v)
		return s.loadAddress(vi)
	case *ast.DerefTerm:
		return s.translateDerefTerm(v)
	case *ast.IndexedTerm:
		return s.translateIndexedTerm(v)
	default:
		s.fail(n, "internal error: unexpected term node")
		return 0
	}
}

func (s *State) translateDerefTerm(n *ast.DerefTerm) int {
	v := s.lookupVar(n.Name, n)
	ptrReg := s.materialize(v)
	resultReg, _ := s.allocateTemp()
	s.emitLoad(resultReg, ptrReg, 0, s.elemSize(v))
	s.regs.Free(ptrReg)
	return resultReg
}

func (s *State) translateIndexedTerm(n *ast.IndexedTerm) int {
	v := s.lookupVar(n.Name, n)
	elemSz := s.elemSize(v)
	baseReg := s.loadAddress(v)

	if idx, ok := ast.Evaluate(n.Index); ok {
		resultReg, _ := s.allocateTemp()
		s.emitLoad(resultReg, baseReg, idx*elemSz, elemSz)
		s.regs.Free(baseReg)
		return resultReg
	}

	idxReg := s.translateExpr(n.Index)
	idxReg = s.takeOwnershipOrAllocate(idxReg)
	szReg, _ := s.allocateTempImm(elemSz)
	s.emitMult(idxReg, idxReg, szReg)
	s.regs.Free(szReg)
	s.emitAdd(baseReg, baseReg, idxReg)
	s.regs.Free(idxReg)
	resultReg, _ := s.allocateTemp()
	s.emitLoad(resultReg, baseReg, 0, elemSz)
	s.regs.Free(baseReg)
	return resultReg
}

func (s *State) translateCallTerm(n *ast.CallTerm) int {
	totalSize := 0
	// Pushed in reverse (rightmost first) so the leftmost parameter
	// ends up closest to FP, matching AddParam's left-to-right
	// increasing-offset assignment.
	for i := len(n.Params) - 1; i >= 0; i-- {
		reg := s.translateExpr(n.Params[i])
		v := s.regs.Release(reg)
		size := s.varSize(v)
		s.emitPush(reg, size)
		totalSize += size
	}
	s.emitCall(n.Name)
	if totalSize > 0 {
		s.emitAddImm(spReg, spReg, totalSize)
	}
	resultReg, _ := s.allocateTemp()
	s.emitMove(resultReg, rvReg)
	return resultReg
}
