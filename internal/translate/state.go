/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

// Package translate walks a parsed program and emits the target assembly
// text (spec.md §4.7, "Translator"), coordinating the register allocator
// and symbol table the way the original compiler's translator_t does,
// grounded chiefly on original_source/src/helper_functions.cpp (the one
// file of the reference implementation whose instruction-emission and
// register-ownership helpers are fully implemented, unlike most of
// parser_types.cpp's empty `::translate` stubs).
package translate

import (
	"fmt"
	"strings"

	"github.com/gmofishsauce/tsc/internal/ast"
	"github.com/gmofishsauce/tsc/internal/config"
	"github.com/gmofishsauce/tsc/internal/diag"
	"github.com/gmofishsauce/tsc/internal/regalloc"
	"github.com/gmofishsauce/tsc/internal/symtab"
	"github.com/gmofishsauce/tsc/internal/token"
	"github.com/gmofishsauce/tsc/internal/typetab"
)

// Sentinel register indices for the machine's named-not-pooled registers.
// NULL and SP are wired into the instruction set itself; RV is the
// return-value register, reserved "by name, not by pool index" per
// SPEC_FULL.md §4.6 so the allocator's R-register pool never has to
// account for it. FP is this implementation's own addition (see
// DESIGN.md): the original's translate stubs left the addressing
// convention unspecified, so a frame pointer is introduced to give local
// and parameter offsets a well-defined base.
const (
	nullReg = -1 - iota
	spReg
	rvReg
	fpReg
)

func regName(index int) string {
	switch index {
	case nullReg:
		return "NULL"
	case spReg:
		return "SP"
	case rvReg:
		return "RV"
	case fpReg:
		return "FP"
	default:
		return regalloc.RegisterName(index)
	}
}

// loopLabels is the break/continue target pair for one enclosing while
// loop (SPEC_FULL.md's SUPPLEMENTED FEATURES).
type loopLabels struct {
	top  string // continue jumps here, to re-test the condition
	exit string // break jumps here
}

// State carries everything the translator needs while walking one
// program: the growing output text, the instruction and label counters,
// and the three collaborating
// tables (spec.md §2's SymbolTable / TypeTable / RegisterAllocator).
type State struct {
	cfg   config.Config
	sink  *diag.Sink
	out   strings.Builder
	types *typetab.Table
	syms  *symtab.Table
	regs  *regalloc.Allocator

	tokens []token.Token

	instrCount int64
	labelCount int

	loops []loopLabels
}

func newState(cfg config.Config, sink *diag.Sink, tokens []token.Token) *State {
	return &State{
		cfg:    cfg,
		sink:   sink,
		types:  typetab.New(),
		syms:   symtab.New(),
		regs:   regalloc.New(cfg.RegisterCount, cfg.ReservedCount),
		tokens: tokens,
	}
}

// tick advances the translator's instruction counter. The register
// allocator does not read this counter: it orders registers by its own
// touch counter (regalloc.Allocator.tickOnce), advanced once per
// allocation rather than once per emitted instruction.
func (s *State) tick() int64 {
	s.instrCount++
	return s.instrCount
}

// newLabel mints a fresh, process-unique label name.
func (s *State) newLabel() string {
	s.labelCount++
	return fmt.Sprintf("L%d", s.labelCount)
}

// pos recovers n's source position from its leftmost consumed token, for
// a translation error raised at that node (spec.md §4.8).
func (s *State) pos(n ast.Node) diag.Pos {
	h := ast.FirstHandle(n)
	if h < 0 || h >= len(s.tokens) {
		return diag.Pos{}
	}
	t := s.tokens[h]
	return diag.Pos{Line: t.Line, Col: t.Col}
}

// fail raises a translation error at n's position, unwinding to Translate
// via panic/recover (spec.md §7, "committed failures unwind... and are
// printed with source position").
func (s *State) fail(n ast.Node, format string, args ...any) {
	panic(&diag.TranslationError{Pos: s.pos(n), Msg: fmt.Sprintf(format, args...)})
}

// varSize returns the in-memory byte size of v's declared type: 2 bytes
// for any pointer (POINTER_SIZE in the original's helper_functions.h),
// otherwise the type table's size for v.Type.
func (s *State) varSize(v *symtab.VarInfo) int {
	if v.IsPtr {
		return 2
	}
	d, ok := s.types.Lookup(v.Type)
	if !ok {
		return 2
	}
	return d.Size
}

// frameSlotSize returns the stack slot size for a declared variable of
// byte size n: 2 bytes for anything ≤2 bytes, otherwise the smallest
// multiple of 4 at or above n (spec.md §4.7, "Local... lowering").
func frameSlotSize(n int) int {
	if n <= 2 {
		return 2
	}
	if rem := n % 4; rem != 0 {
		return n + (4 - rem)
	}
	return n
}
