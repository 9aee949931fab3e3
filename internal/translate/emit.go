/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package translate

import "fmt"

// emitLine writes one assembly line. Instruction lines are tab-indented;
// labels are not (spec.md §6, "instruction lines are tab-indented, labels
// are not").
func (s *State) emitLine(text string, indent bool) {
	if indent {
		s.out.WriteByte('\t')
	}
	s.out.WriteString(text)
	s.out.WriteByte('\n')
	if indent {
		s.tick()
	}
}

func (s *State) emitLabel(name string) {
	s.emitLine(name+":", false)
}

func (s *State) triOp(instr string, rd, ra, rb int) {
	s.emitLine(fmt.Sprintf("%s %s, %s, %s", instr, regName(rd), regName(ra), regName(rb)), true)
}

func (s *State) triOpImm(instr string, rd, ra, imm int) {
	s.emitLine(fmt.Sprintf("%s %s, %s, %d", instr, regName(rd), regName(ra), imm), true)
}

// triOpImmStr is triOpImm with a symbolic (label) immediate operand
// instead of a numeric one, grounded on tri_operand_imm_str_instr — used
// to load a global's address, which the assembler resolves from its
// label rather than a literal the compiler computes itself.
func (s *State) triOpImmStr(instr string, rd, ra int, label string) {
	s.emitLine(fmt.Sprintf("%s %s, %s, %s", instr, regName(rd), regName(ra), label), true)
}

func (s *State) diOp(instr string, rd, ra int) {
	s.emitLine(fmt.Sprintf("%s %s, %s", instr, regName(rd), regName(ra)), true)
}

func (s *State) diOpImm(instr string, rd, imm int) {
	s.emitLine(fmt.Sprintf("%s %s, %d", instr, regName(rd), imm), true)
}

func (s *State) branch(instr, label string) {
	s.emitLine(fmt.Sprintf("%s %s", instr, label), true)
}

func (s *State) emitAdd(rd, ra, rb int)    { s.triOp(mnemAdd, rd, ra, rb) }
func (s *State) emitAddImm(rd, ra, n int)  { s.triOpImm(mnemAddImm, rd, ra, n) }
func (s *State) emitSub(rd, ra, rb int)    { s.triOp(mnemSub, rd, ra, rb) }
func (s *State) emitSubImm(rd, ra, n int)  { s.triOpImm(mnemSubImm, rd, ra, n) }
func (s *State) emitMult(rd, ra, rb int)   { s.triOp(mnemMult, rd, ra, rb) }
func (s *State) emitNeg(rd, ra int)        { s.diOp(mnemNeg, rd, ra) }
func (s *State) emitNot(rd, ra int)        { s.diOp(mnemNot, rd, ra) }
func (s *State) emitMove(rd, ra int)       { s.diOp(mnemMove, rd, ra) }
func (s *State) emitCmp(ra, rb int)        { s.diOp(mnemCmp, ra, rb) }
func (s *State) emitCmpImm(ra, imm int)    { s.diOpImm(mnemCmpImm, ra, imm) }
func (s *State) emitMovHi(rd, imm int)     { s.triOpImm(mnemMovHi, rd, rd, imm) }
func (s *State) emitMovLo(rd, imm int)     { s.triOpImm(mnemMovLo, rd, rd, imm) }
func (s *State) emitCall(label string)     { s.emitLine(mnemCall+" "+label, true) }
func (s *State) emitRet()                  { s.emitLine(mnemRet, true) }

func (s *State) emitPush(reg, size int) {
	s.emitLine(fmt.Sprintf("push[%d] %s", size, regName(reg)), true)
}

func (s *State) emitPop(reg, size int) {
	s.emitLine(fmt.Sprintf("pop[%d] %s", size, regName(reg)), true)
}

// emitLoad and emitStore address memory relative to a base register by a
// signed offset, used both for frame-relative locals/params (base FP) and
// for array-element and dereference addressing (base holds a pointer
// value).
func (s *State) emitLoad(rd, base, offset, size int) {
	s.emitLine(fmt.Sprintf("ld[%d] %s, %s, %d", size, regName(rd), regName(base), offset), true)
}

func (s *State) emitStore(rd, base, offset, size int) {
	s.emitLine(fmt.Sprintf("str[%d] %s, %s, %d", size, regName(rd), regName(base), offset), true)
}

// emitLoadGlobal and emitStoreGlobal address a global by label rather
// than a numeric offset.
func (s *State) emitLoadGlobal(rd int, label string, size int) {
	s.emitLine(fmt.Sprintf("ld[%d] %s, %s", size, regName(rd), label), true)
}

func (s *State) emitStoreGlobal(rd int, label string, size int) {
	s.emitLine(fmt.Sprintf("str[%d] %s, %s", size, regName(rd), label), true)
}

// emitData introduces size-bytes-each static values under label (spec.md
// §6's `.db`/`.dh`/`.dw` directives).
func (s *State) emitData(label string, size int, values []int) {
	s.emitLabel(label)
	directive := dataDirective(size)
	for _, v := range values {
		s.emitLine(fmt.Sprintf("%s %d", directive, v), true)
	}
}

// loadImmediate loads value into reg, using the 16-bit-immediate addi
// shortcut when it fits, otherwise movhi/movlo (spec.md §4.7, "Local
// variable lowering").
func (s *State) loadImmediate(reg, value int) {
	if value >= -32768 && value <= 32767 {
		s.emitAddImm(reg, nullReg, value)
		return
	}
	hi := (value >> 16) & 0xFFFF
	lo := value & 0xFFFF
	s.emitMovHi(reg, hi)
	s.emitMovLo(reg, lo)
}
