/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package translate

import (
	"github.com/gmofishsauce/tsc/internal/ast"
	"github.com/gmofishsauce/tsc/internal/symtab"
)

// translateBinOp dispatches a rewritten (left-associative) BinOpExpr to
// the relational, immediate, or plain register-register lowering,
// mirroring the three shapes in the original's helper_functions.cpp.
func (s *State) translateBinOp(b *ast.BinOpExpr) int {
	if !b.LeftAssoc {
		s.fail(b, "internal error: expression was not rewritten to left-associative form")
	}
	if isRelational(b.OpTag) {
		return s.translateBinOpRelational(b)
	}
	instr, imm, _ := binopInstr(b.OpTag)
	if imm != "" {
		return s.translateBinOpImm(b, instr, imm)
	}
	return s.translateBinOpPlain(b, instr)
}

// leftOperand evaluates b.Rest, folding it into an immediate-loaded
// temporary when possible and otherwise translating it and promoting
// the result register to a tracked temporary so later computation
// can't clobber it (grounded on translate_binop's left-operand setup,
// shared by all three binop shapes).
func (s *State) leftOperand(b *ast.BinOpExpr) int {
	if val, ok := ast.Evaluate(b.Rest); ok {
		reg, _ := s.allocateTempImm(val)
		return reg
	}
	reg := s.translateExpr(b.Rest)
	return s.takeOwnershipOrAllocate(reg)
}

// translateBinOpImm lowers an operator with a dedicated immediate
// mnemonic (+ and -), grounded on translate_binop_imm.
func (s *State) translateBinOpImm(b *ast.BinOpExpr, instr, immInstr string) int {
	leftReg := s.leftOperand(b)

	if rightVal, ok := ast.Evaluate(b.Term); ok {
		if rightVal < -32768 || rightVal > 32767 {
			s.fail(b, "constant %d does not fit in 16 bits", rightVal)
		}
		s.triOpImm(immInstr, leftReg, leftReg, rightVal)
		return leftReg
	}

	callProtect := isCallTerm(b.Term)
	var saved *symtab.VarInfo
	if callProtect {
		saved = s.pushTemp(leftReg)
	}
	rightReg := s.translateExpr(b.Term)
	if callProtect {
		leftReg = s.popTemp(saved)
	}
	s.triOp(instr, leftReg, leftReg, rightReg)
	s.regs.Free(rightReg)
	return leftReg
}

// translateBinOpPlain lowers an operator with no immediate mnemonic
// (*, &, |): a constant right operand is still loaded into a register
// first since there is no immediate form to fall back to, grounded on
// translate_binop.
func (s *State) translateBinOpPlain(b *ast.BinOpExpr, instr string) int {
	leftReg := s.leftOperand(b)

	var rightReg int
	if rightVal, ok := ast.Evaluate(b.Term); ok {
		rightReg, _ = s.allocateTempImm(rightVal)
		s.regs.Free(rightReg)
	} else {
		callProtect := isCallTerm(b.Term)
		var saved *symtab.VarInfo
		if callProtect {
			saved = s.pushTemp(leftReg)
		}
		rightReg = s.translateExpr(b.Term)
		if callProtect {
			leftReg = s.popTemp(saved)
		}
		s.regs.Free(rightReg)
	}
	s.triOp(instr, leftReg, leftReg, rightReg)
	return leftReg
}

// translateBinOpRelational lowers one of the six comparison operators,
// grounded on translate_binop_relational: emit cmp/cmpi against the
// right operand, then the shared true-label/end-label 0/1 pattern.
func (s *State) translateBinOpRelational(b *ast.BinOpExpr) int {
	branchInstr, _ := relationalInstr(b.OpTag)
	leftReg := s.leftOperand(b)

	if rightVal, ok := ast.Evaluate(b.Term); ok {
		if rightVal < -32768 || rightVal > 32767 {
			s.fail(b, "constant %d does not fit in 16 bits", rightVal)
		}
		s.emitCmpImm(leftReg, rightVal)
	} else {
		callProtect := isCallTerm(b.Term)
		var saved *symtab.VarInfo
		if callProtect {
			saved = s.pushTemp(leftReg)
		}
		rightReg := s.translateExpr(b.Term)
		if callProtect {
			leftReg = s.popTemp(saved)
		}
		s.emitCmp(leftReg, rightReg)
		s.regs.Free(rightReg)
	}

	s.emitBoolResult(leftReg, branchInstr)
	return leftReg
}
