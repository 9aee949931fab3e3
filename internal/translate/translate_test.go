/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package translate

import (
	"strings"
	"testing"

	"github.com/gmofishsauce/tsc/internal/config"
	"github.com/gmofishsauce/tsc/internal/diag"
	"github.com/gmofishsauce/tsc/internal/lexer"
	"github.com/gmofishsauce/tsc/internal/parser"
	"github.com/gmofishsauce/tsc/internal/typetab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compile drives the full lexer/parser/translate pipeline over src,
// mirroring what cmd/tsc does, and fails the test immediately on any
// syntax or translation error so scenario tests can focus on the
// emitted assembly.
func compile(t *testing.T, src string) string {
	t.Helper()
	cfg := config.Default()
	lex := lexer.New(strings.NewReader(src), cfg)
	prog, tokens, err := parser.Parse(lex, typetab.New())
	require.NoError(t, err)

	sink := diag.NewSink(&strings.Builder{})
	asm, err := Translate(prog, cfg, tokens, sink)
	require.NoError(t, err)
	return asm
}

// Scenario 1 (spec.md §8): a global initialiser that folds to a
// constant emits directly as a .dh value, with no code generated.
func TestConstFoldGlobal(t *testing.T) {
	asm := compile(t, `int x = 2 + 3;`)
	assert.Contains(t, asm, "x:0")
	assert.Contains(t, asm, ".dh 5")
}

// Scenario 2: a local initialiser too wide for the addi immediate
// shortcut takes the movhi/movlo path instead, and the function's one
// local is reclaimed on scope exit with "addi SP, SP, 2" before "ret".
func TestLocalLargeImmediate(t *testing.T) {
	asm := compile(t, `int main() { int y = 70000; }`)
	assert.Contains(t, asm, "movhi")
	assert.Contains(t, asm, "movlo")
	assert.Contains(t, asm, "addi SP, SP, 2")
}

// Boundary case paired with scenario 2: an immediate that fits in the
// addi shortcut must not fall back to movhi/movlo.
func TestLocalSmallImmediateUsesAddi(t *testing.T) {
	asm := compile(t, `int main() { int y = 100; }`)
	assert.Contains(t, asm, "addi")
	assert.NotContains(t, asm, "movhi")
}

// Scenario 3: a - b - c parses left-associative after the rewrite and
// translates as ((a - b) - c), so b is subtracted before c.
func TestLeftAssociativeSubtract(t *testing.T) {
	asm := compile(t, `
		int a;
		int b;
		int c;
		int f() { return a - b - c; }
	`)
	subs := strings.Count(asm, "sub ")
	assert.GreaterOrEqual(t, subs, 2)
}

// Scenario 4: a relational operator lowers through cmp/branch into a
// 0/1 result register rather than a native boolean instruction.
func TestRelationalToBool(t *testing.T) {
	asm := compile(t, `
		int a;
		int b;
		int f() { return a == b; }
	`)
	assert.Contains(t, asm, "cmp ")
	assert.Contains(t, asm, "breq")
}

// Scenario 5: a string-initialised char array stores its bytes plus a
// trailing NUL under one label via .db directives.
func TestArrayStringInit(t *testing.T) {
	asm := compile(t, `char s[] = "ab";`)
	assert.Contains(t, asm, "s:0")
	assert.Contains(t, asm, ".db 97")
	assert.Contains(t, asm, ".db 98")
	assert.Contains(t, asm, ".db 0")
}

// Scenario 6: the left call's result is spilled across the right
// call, since both calls clobber registers freely.
func TestCallClobberSpillsLeftOperand(t *testing.T) {
	asm := compile(t, `
		int f();
		int g();
		int main() { int z = f() + g(); }
	`)
	assert.Contains(t, asm, "call f")
	assert.Contains(t, asm, "call g")
	assert.Contains(t, asm, "push")
	assert.Contains(t, asm, "pop")
}

// Logical not has no dedicated machine instruction and must be
// synthesized via the same cmp/branch 0/1 pattern as relationals.
func TestLogicalNotSynthesizedViaCompare(t *testing.T) {
	asm := compile(t, `
		int a;
		int f() { return !a; }
	`)
	assert.Contains(t, asm, "cmpi")
	assert.Contains(t, asm, "breq")
}

// Boundary case: an empty block claims zero bytes, so its exit emits
// no stack adjustment for that block.
func TestEmptyBlockCompiles(t *testing.T) {
	asm := compile(t, `
		int f() {
			{
			}
			return 0;
		}
	`)
	assert.Contains(t, asm, "ret")
}

// Boundary case: a dangling else binds to the nearest unmatched if.
func TestNestedIfElseDanglingElse(t *testing.T) {
	asm := compile(t, `
		int a;
		int b;
		int f() {
			if (a)
				if (b)
					return 1;
				else
					return 2;
			return 0;
		}
	`)
	assert.Contains(t, asm, "breq")
	assert.Contains(t, asm, "jmp")
}

// Supplemented feature: break/continue inside a while body each lower
// to an unconditional jmp to the loop's exit/top label.
func TestLoopBreakContinue(t *testing.T) {
	asm := compile(t, `
		int n;
		int f() {
			int i = 0;
			while (i < n) {
				if (i == 5)
					break;
				if (i == 2) {
					i = i + 1;
					continue;
				}
				i = i + 1;
			}
			return i;
		}
	`)
	assert.Contains(t, asm, "jmp")
}

// Arrays and pointers: element addressing, address-of, and pointer
// dereference on both load and store sides all translate cleanly.
func TestArraysAndPointers(t *testing.T) {
	asm := compile(t, `
		int values[4];

		int sum(int n) {
			int total = 0;
			int i = 0;
			while (i < n) {
				total = total + values[i];
				i = i + 1;
			}
			return total;
		}

		int addOne(int *p) {
			*p = *p + 1;
			return 0;
		}

		int main() {
			int x = 10;
			addOne(&x);
			values[0] = x;
			return sum(1);
		}
	`)
	assert.Contains(t, asm, "values:0")
	assert.Contains(t, asm, "call addOne")
	assert.Contains(t, asm, "call sum")
}

// The asm escape substitutes %N with the constant-folded value when
// possible, or the live register name otherwise.
func TestAsmEscapeSubstitution(t *testing.T) {
	asm := compile(t, `
		int f() {
			int x = 3;
			asm("addi r0, NULL, %0" 3 + 1);
			asm("move r0, %0" x);
			return 0;
		}
	`)
	assert.Contains(t, asm, "addi r0, NULL, 4")
	assert.Contains(t, asm, "move r0, ")
	assert.NotContains(t, asm, "%0")
}
