/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package translate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gmofishsauce/tsc/internal/ast"
)

// translateStmtList lowers a flat sequence of statements with no scope
// bookkeeping of its own — used both by a nested block (which wraps it
// in its own push/pop) and by a function body (whose outer braces are
// the function scope itself).
func (s *State) translateStmtList(stmts []ast.Node) {
	for _, st := range stmts {
		s.translateStmt(st)
	}
}

func (s *State) translateStmt(n ast.Node) {
	switch v := n.(type) {
	case *ast.BlockStmt:
		s.translateBlockStmt(v)
	case *ast.IfStmt:
		s.translateIfStmt(v)
	case *ast.WhileStmt:
		s.translateWhileStmt(v)
	case *ast.AsmStmt:
		s.translateAsmStmt(v)
	case *ast.BreakStmt:
		s.translateBreakStmt(v)
	case *ast.ContinueStmt:
		s.translateContinueStmt(v)
	case *ast.VarDecl:
		s.translateVarDecl(v)
	case *ast.ArrayDecl:
		s.translateArrayDecl(v)
	case *ast.AssignStmt:
		s.translateAssignStmt(v)
	case *ast.IndexedAssignStmt:
		s.translateIndexedAssignStmt(v)
	case *ast.DerefAssignStmt:
		s.translateDerefAssignStmt(v)
	case *ast.ReturnStmt:
		s.translateReturnStmt(v)
	case *ast.ExprStmt:
		reg := s.translateExpr(v.Expr)
		s.regs.Free(reg)
	default:
		s.fail(n, "internal error: unexpected statement node")
	}
}

// translateBlockStmt lowers a brace-delimited nested block: an
// inheriting scope for its locals, which are reclaimed with a single
// addi on exit — skipped for an empty block, whose scope claims zero
// bytes (spec.md §8's empty-block boundary case).
func (s *State) translateBlockStmt(n *ast.BlockStmt) {
	s.syms.PushScope(true)
	defer s.syms.PopScope()
	s.translateStmtList(n.Stmts)
	if size := s.syms.Current().Size(); size > 0 {
		s.emitAddImm(spReg, spReg, size)
	}
}

func (s *State) translateIfStmt(n *ast.IfStmt) {
	condReg := s.translateExpr(n.Cond)
	s.emitCmpImm(condReg, 0)
	s.regs.Free(condReg)

	if n.Else == nil {
		endLabel := s.newLabel()
		s.branch(mnemBreq, endLabel)
		s.translateStmt(n.Then)
		s.emitLabel(endLabel)
		return
	}

	elseLabel := s.newLabel()
	endLabel := s.newLabel()
	s.branch(mnemBreq, elseLabel)
	s.translateStmt(n.Then)
	s.branch(mnemJmp, endLabel)
	s.emitLabel(elseLabel)
	s.translateStmt(n.Else)
	s.emitLabel(endLabel)
}

func (s *State) translateWhileStmt(n *ast.WhileStmt) {
	top := s.newLabel()
	exit := s.newLabel()

	s.emitLabel(top)
	condReg := s.translateExpr(n.Cond)
	s.emitCmpImm(condReg, 0)
	s.regs.Free(condReg)
	s.branch(mnemBreq, exit)

	s.loops = append(s.loops, loopLabels{top: top, exit: exit})
	s.translateStmt(n.Body)
	s.loops = s.loops[:len(s.loops)-1]

	s.branch(mnemJmp, top)
	s.emitLabel(exit)
}

func (s *State) translateBreakStmt(n *ast.BreakStmt) {
	if len(s.loops) == 0 {
		s.fail(n, "break outside a loop")
	}
	s.branch(mnemJmp, s.loops[len(s.loops)-1].exit)
}

func (s *State) translateContinueStmt(n *ast.ContinueStmt) {
	if len(s.loops) == 0 {
		s.fail(n, "continue outside a loop")
	}
	s.branch(mnemJmp, s.loops[len(s.loops)-1].top)
}

func (s *State) translateAssignStmt(n *ast.AssignStmt) {
	v := s.lookupVar(n.Name, n)
	reg := s.translateExpr(n.Value)
	s.storeToAddr(reg, v)
}

func (s *State) translateIndexedAssignStmt(n *ast.IndexedAssignStmt) {
	v := s.lookupVar(n.Name, n)
	elemSz := s.elemSize(v)
	baseReg := s.loadAddress(v)

	var valReg int
	if isCallTerm(n.Value) {
		saved := s.pushTemp(baseReg)
		valReg = s.translateExpr(n.Value)
		baseReg = s.popTemp(saved)
	} else {
		valReg = s.translateExpr(n.Value)
	}

	if idx, ok := ast.Evaluate(n.Index); ok {
		s.emitStore(valReg, baseReg, idx*elemSz, elemSz)
	} else {
		idxReg := s.translateExpr(n.Index)
		idxReg = s.takeOwnershipOrAllocate(idxReg)
		szReg, _ := s.allocateTempImm(elemSz)
		s.emitMult(idxReg, idxReg, szReg)
		s.regs.Free(szReg)
		s.emitAdd(baseReg, baseReg, idxReg)
		s.regs.Free(idxReg)
		s.emitStore(valReg, baseReg, 0, elemSz)
	}
	s.regs.Free(valReg)
	s.regs.Free(baseReg)
}

func (s *State) translateDerefAssignStmt(n *ast.DerefAssignStmt) {
	v := s.lookupVar(n.Name, n)
	ptrReg := s.materialize(v)

	var valReg int
	if isCallTerm(n.Value) {
		saved := s.pushTemp(ptrReg)
		valReg = s.translateExpr(n.Value)
		ptrReg = s.popTemp(saved)
	} else {
		valReg = s.translateExpr(n.Value)
	}

	s.emitStore(valReg, ptrReg, 0, s.elemSize(v))
	s.regs.Free(valReg)
	s.regs.Free(ptrReg)
}

// translateReturnStmt reclaims every scope still open at this point —
// a return can sit inside any number of nested ifs/whiles whose own
// block-exit addi (translateBlockStmt) hasn't run yet, since control
// leaves before falling out of those braces — with one addi sized by
// FrameDepth, the same per-scope "addi SP, SP, k" invariant
// translateBlockStmt applies to a single block, generalized to the sum
// of however many are currently live (spec.md §4.7 invariant 6).
func (s *State) translateReturnStmt(n *ast.ReturnStmt) {
	if n.Value != nil {
		reg := s.translateExpr(n.Value)
		s.emitMove(rvReg, reg)
		s.regs.Free(reg)
	}
	if size := s.syms.FrameDepth(); size > 0 {
		s.emitAddImm(spReg, spReg, size)
	}
	s.emitRet()
}

// translateAsmStmt substitutes each %N placeholder in the raw asm
// text with either the decimal literal of a constant-foldable
// parameter or the name of a register holding the translated one
// (SPEC_FULL.md's asm_params extension to the `asm ( str_lit ) ;`
// escape).
func (s *State) translateAsmStmt(n *ast.AsmStmt) {
	replacements := make([]string, len(n.Params))
	var toFree []int
	for i, p := range n.Params {
		if val, ok := ast.Evaluate(p); ok {
			replacements[i] = strconv.Itoa(val)
			continue
		}
		reg := s.translateExpr(p)
		replacements[i] = regName(reg)
		toFree = append(toFree, reg)
	}

	text := n.Raw
	for i, r := range replacements {
		text = strings.ReplaceAll(text, fmt.Sprintf("%%%d", i), r)
	}
	s.emitLine(text, true)

	for _, reg := range toFree {
		s.regs.Free(reg)
	}
}
