/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package translate

import (
	"github.com/gmofishsauce/tsc/internal/ast"
	"github.com/gmofishsauce/tsc/internal/symtab"
)

// tempTypeName is the declared type every anonymous intermediate value is
// given. The language has no way to propagate a declared type through an
// expression (spec.md §1's Non-goals: "no type checking beyond tracking a
// fixed set of integer widths"), and the original compiler's own
// temporaries carry no real type either (its add_var call for a temp
// passes a placeholder type/size pair) — so every temporary here is
// sized as a plain "int" (2 bytes), the machine's natural register
// width. Declared variables keep their real declared type throughout.
const tempTypeName = "int"

// allocateTempImm allocates a fresh register bound to a brand-new unnamed
// VarInfo and loads value into it (grounded on allocate_temp_imm).
func (s *State) allocateTempImm(value int) (int, *symtab.VarInfo) {
	_, v := s.syms.Add("__temp__", tempTypeName, false, 0)
	r := s.regs.Allocate(v, false)
	s.loadImmediate(r.Index, value)
	return r.Index, v
}

// allocateTemp allocates a fresh register bound to a brand-new unnamed
// VarInfo without loading any value (grounded on allocate_temp).
func (s *State) allocateTemp() (int, *symtab.VarInfo) {
	_, v := s.syms.Add("__temp__", tempTypeName, false, 0)
	r := s.regs.Allocate(v, false)
	return r.Index, v
}

// giveOwnershipTemp retags reg as holding a brand-new unnamed VarInfo,
// promoting it from a bare computation result to a tracked temporary
// (grounded on give_ownership_temp).
func (s *State) giveOwnershipTemp(reg int) *symtab.VarInfo {
	_, v := s.syms.Add("__temp__", tempTypeName, false, 0)
	s.regs.GiveOwnership(reg, v)
	return v
}

// takeOwnershipOrAllocate ensures reg is safe to keep using as a scratch
// accumulator: if it already holds a tracked (non-temporary) variable, or
// is the reserved return-value register, its value is moved into a fresh
// temporary register instead so further computation cannot clobber the
// variable it belongs to (grounded on take_ownership_or_allocate).
func (s *State) takeOwnershipOrAllocate(reg int) int {
	if reg == rvReg {
		newReg, _ := s.allocateTemp()
		s.emitMove(newReg, rvReg)
		return newReg
	}
	if !s.regs.IsTemp(reg) {
		s.giveOwnershipTemp(reg)
	}
	return reg
}

// pushTemp spills reg to the stack and frees it, returning the VarInfo it
// held so popTemp can later restore it to a (possibly different)
// register (grounded on push_temp; used to protect a live value across a
// call that would otherwise clobber it).
func (s *State) pushTemp(reg int) *symtab.VarInfo {
	v := s.regs.Release(reg)
	size := s.varSize(v)
	s.emitPush(reg, size)
	return v
}

// popTemp restores v from the stack into a freshly allocated register
// (grounded on pop_temp).
func (s *State) popTemp(v *symtab.VarInfo) int {
	r := s.regs.Allocate(v, false)
	size := s.varSize(v)
	s.emitPop(r.Index, size)
	return r.Index
}

// isCallTerm reports whether n is (after unwrapping a TermExpr) a
// function call, used to decide whether a binop's left operand needs
// protecting across the right operand's translation (spec.md §4.7,
// "If term is a call, push the left value before translating... and pop
// afterward").
func isCallTerm(n ast.Node) bool {
	if t, ok := n.(*ast.TermExpr); ok {
		n = t.Term
	}
	_, ok := n.(*ast.CallTerm)
	return ok
}

// materialize returns a register holding v's current value, reloading
// from memory only if no register already caches it.
func (s *State) materialize(v *symtab.VarInfo) int {
	if r, ok := s.regs.Lookup(v); ok {
		s.regs.Allocate(v, false)
		return r.Index
	}
	r := s.regs.Allocate(v, false)
	s.loadFromAddr(r.Index, v)
	return r.Index
}

func (s *State) loadFromAddr(reg int, v *symtab.VarInfo) {
	size := s.varSize(v)
	if v.Address.IsGlobal {
		s.emitLoadGlobal(reg, v.Address.GlobalName, size)
	} else {
		s.emitLoad(reg, fpReg, v.Address.BaseOffset, size)
	}
}

// storeToAddr writes reg out to v's memory location and drops the
// register's binding: the language's Non-goals exclude any optimisation
// pass (spec.md §1), so no liveness analysis backs a longer-lived
// variable-to-register cache across control-flow joins. Every write goes
// straight to memory, and every subsequent read (materialize) reloads,
// which is always correct without one.
func (s *State) storeToAddr(reg int, v *symtab.VarInfo) {
	// A stale earlier materialize of v into a different register must be
	// invalidated, or a later read would find that register still
	// "bound" to v and skip the reload this new value requires.
	if r, ok := s.regs.Lookup(v); ok && r.Index != reg {
		s.regs.Free(r.Index)
	}
	size := s.varSize(v)
	if v.Address.IsGlobal {
		s.emitStoreGlobal(reg, v.Address.GlobalName, size)
	} else {
		s.emitStore(reg, fpReg, v.Address.BaseOffset, size)
	}
	s.regs.Free(reg)
}
