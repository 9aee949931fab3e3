/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package translate

import "github.com/gmofishsauce/tsc/internal/ast"

// translateDecl dispatches one top-level declaration.
func (s *State) translateDecl(n ast.Node) {
	switch v := n.(type) {
	case *ast.VarDecl:
		s.translateVarDecl(v)
	case *ast.ArrayDecl:
		s.translateArrayDecl(v)
	case *ast.FuncDecl:
		s.translateFuncDecl(v)
	default:
		s.fail(n, "internal error: unexpected top-level declaration")
	}
}

// translateVarDecl lowers both a global and a local scalar declaration
// (spec.md §4.7, "Global/Local variable lowering"). The grammar allows
// any expr as an initialiser; a global's must constant-fold (it is
// emitted as a static data value), while a local's is translated in
// full when it doesn't, an extension of the spec's immediate-only
// worked examples to the general case the grammar permits.
func (s *State) translateVarDecl(v *ast.VarDecl) {
	size := s.declSize(v.TypeName, v.IsPtr)

	if s.syms.IsGlobalScope() {
		val := 0
		if v.Init != nil {
			n, ok := ast.Evaluate(v.Init)
			if !ok {
				s.fail(v.Init, "global initializer for %q is not a compile-time constant", v.Name)
			}
			val = n
		}
		id, _ := s.syms.AddGlobal(v.Name, v.TypeName, v.IsPtr, size)
		s.emitData(id, size, []int{val})
		return
	}

	slot := frameSlotSize(size)
	if slot == 4 {
		if pad := s.syms.Current().Align(4); pad > 0 {
			s.emitSubImm(spReg, spReg, pad)
		}
	}
	s.syms.AddLocal(v.Name, v.TypeName, v.IsPtr, slot)

	if v.Init == nil {
		s.emitSubImm(spReg, spReg, slot)
		return
	}

	var reg int
	if val, ok := ast.Evaluate(v.Init); ok {
		reg, _ = s.allocateTempImm(val)
	} else {
		reg = s.translateExpr(v.Init)
	}
	s.emitPush(reg, slot)
	s.regs.Free(reg)
}

// translateArrayDecl lowers all three array_decl alternatives (spec.md
// §4.3) for both global and local scope. Every element must
// constant-fold — spec.md §4.7's constant-evaluation usage (b) — since
// both static data directives and the local push sequence below need
// the values up front.
func (s *State) translateArrayDecl(a *ast.ArrayDecl) {
	elemSize := s.declSize(a.TypeName, false)
	values := s.arrayValues(a)

	if s.syms.IsGlobalScope() {
		id, _ := s.syms.AddGlobal(a.Name, a.TypeName, false, elemSize*len(values))
		s.emitData(id, elemSize, values)
		return
	}

	totalSize := elemSize * len(values)
	slot := frameSlotSize(totalSize)
	pad := slot - totalSize
	s.syms.AddLocal(a.Name, a.TypeName, false, slot)
	if pad > 0 {
		// Consumed first so the last element pushed (index 0, see
		// below) lands exactly on the offset AddLocal computed.
		s.emitSubImm(spReg, spReg, pad)
	}

	// Pushed highest index first: the stack grows down, so index 0 —
	// pushed last — ends up at the lowest address, i.e. the array's
	// base, with increasing index moving toward higher addresses
	// exactly like tri_operand_instr's `ld[sz] rd, base, i*elemSize`.
	for i := len(values) - 1; i >= 0; i-- {
		reg, _ := s.allocateTempImm(values[i])
		s.emitPush(reg, elemSize)
		s.regs.Free(reg)
	}
}

func (s *State) arrayValues(a *ast.ArrayDecl) []int {
	switch a.AKind {
	case ast.ArraySized:
		count, ok := ast.Evaluate(a.Size)
		if !ok {
			s.fail(a.Size, "array bound for %q is not a compile-time constant", a.Name)
		}
		return make([]int, count)

	case ast.ArrayInitList:
		values := make([]int, len(a.InitList))
		for i, e := range a.InitList {
			val, ok := ast.Evaluate(e)
			if !ok {
				s.fail(e, "non-constant element in initializer for %q", a.Name)
			}
			values[i] = val
		}
		return values

	case ast.ArrayString:
		values := make([]int, 0, len(a.StrVal)+1)
		for i := 0; i < len(a.StrVal); i++ {
			values = append(values, int(a.StrVal[i]))
		}
		return append(values, 0)

	default:
		s.fail(a, "internal error: unknown array kind")
		return nil
	}
}

// translateFuncDecl lowers a function declaration. A prototype (no
// Body) emits nothing — it exists only so forward calls type-check
// against something, and this language tracks no call signatures
// beyond the name anyway.
func (s *State) translateFuncDecl(f *ast.FuncDecl) {
	if f.Body == nil {
		return
	}

	s.emitLabel(f.Name)
	s.syms.PushFunctionScope()
	defer s.syms.PopScope()
	for _, p := range f.Params {
		s.syms.AddParam(p.Name, p.TypeName, p.IsPtr, s.declSize(p.TypeName, p.IsPtr))
	}
	// FP is fixed once, here, to SP's value right after the call's
	// return-address push, giving every local/param offset in this
	// frame a well-defined, never-moving base for the rest of the
	// function body (symtab's AddLocal/AddParam; loadAddress/
	// loadFromAddr/storeToAddr address off fpReg). It is not itself the
	// reclaim mechanism: the exit paths below restore SP with an addi
	// sized to what's actually still pushed, not by copying FP back.
	s.emitMove(fpReg, spReg)

	// The function's own braces map directly onto the scope just
	// pushed; they are not a nested block, so no separate push/pop
	// happens here the way translateBlockStmt would — its reclaim
	// happens below instead, sized with FrameDepth.
	s.translateStmtList(f.Body.Stmts)
	size := s.syms.FrameDepth()

	// Fallback epilogue for a body with no explicit return on every
	// path; harmless dead code after a path that already returned,
	// matching a single-pass translator with no reachability analysis.
	// Reclaims the function's own locals with the same per-scope
	// "addi SP, SP, k" translateBlockStmt uses for a nested block
	// (spec.md §4.7 invariant 6, §8 scenario 2), rather than resetting
	// SP from FP — see translateReturnStmt for why an early return
	// needs the FrameDepth-summed form of this same instruction.
	if size > 0 {
		s.emitAddImm(spReg, spReg, size)
	}
	s.emitRet()
}
