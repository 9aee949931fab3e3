/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package parser

import (
	"strings"
	"testing"

	"github.com/gmofishsauce/tsc/internal/ast"
	"github.com/gmofishsauce/tsc/internal/config"
	"github.com/gmofishsauce/tsc/internal/lexer"
	"github.com/gmofishsauce/tsc/internal/typetab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	lex := lexer.New(strings.NewReader(src), config.Default())
	prog, _, err := Parse(lex, typetab.New())
	require.NoError(t, err)
	return prog
}

func TestParseGlobalVarDecl(t *testing.T) {
	prog := parse(t, `int x = 2 + 3;`)
	require.Len(t, prog.Decls, 1)
	v, ok := prog.Decls[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)
	assert.Equal(t, "int", v.TypeName)
	assert.False(t, v.IsPtr)
}

func TestParsePointerDecl(t *testing.T) {
	prog := parse(t, `int *p;`)
	require.Len(t, prog.Decls, 1)
	v, ok := prog.Decls[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.True(t, v.IsPtr)
}

func TestParseArrayDeclVariants(t *testing.T) {
	prog := parse(t, `
		int a[4];
		int b[] = {1 2 3};
		char s[] = "hi";
	`)
	require.Len(t, prog.Decls, 3)

	sized, ok := prog.Decls[0].(*ast.ArrayDecl)
	require.True(t, ok)
	assert.Equal(t, ast.ArraySized, sized.AKind)

	initList, ok := prog.Decls[1].(*ast.ArrayDecl)
	require.True(t, ok)
	assert.Equal(t, ast.ArrayInitList, initList.AKind)
	assert.Len(t, initList.InitList, 3)

	str, ok := prog.Decls[2].(*ast.ArrayDecl)
	require.True(t, ok)
	assert.Equal(t, ast.ArrayString, str.AKind)
	assert.Equal(t, "hi", str.StrVal)
}

func TestParseFuncDeclWithParamsAndPrototype(t *testing.T) {
	prog := parse(t, `
		int f();
		int g(int a int *b) {
			return a;
		}
	`)
	require.Len(t, prog.Decls, 2)

	proto, ok := prog.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Nil(t, proto.Body)

	fn, ok := prog.Decls[1].(*ast.FuncDecl)
	require.True(t, ok)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)
	assert.True(t, fn.Params[1].IsPtr)
}

// TestRightAssocParseIsRewrittenLeft exercises invariant 2: the parser
// naturally builds a - b - c as a - (b - c), and ast.Rewrite (invoked
// from acceptExpr) must flip it to (a - b) - c before the tree reaches
// translation.
func TestRightAssocParseIsRewrittenLeft(t *testing.T) {
	prog := parse(t, `
		int f() {
			return a - b - c;
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinOpExpr)
	require.True(t, ok)
	assert.True(t, top.LeftAssoc, "top-level binop must be rewritten left-associative")

	// After the rewrite, Rest is itself a BinOpExpr (a - b) and Term is
	// the plain operand c, reversing the parser's natural right-nesting.
	_, restIsBinOp := top.Rest.(*ast.BinOpExpr)
	assert.True(t, restIsBinOp, "left child should now hold the inner subtraction")
}

// TestDanglingElseBindsToNearestIf confirms the nearest-unmatched-if
// policy: the else must attach to the inner if, leaving the outer if
// with no else clause of its own.
func TestDanglingElseBindsToNearestIf(t *testing.T) {
	prog := parse(t, `
		int f() {
			if (a)
				if (b)
					return 1;
				else
					return 2;
			return 0;
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	outer, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.Nil(t, outer.Else, "outer if must not capture the else")

	inner, ok := outer.Then.(*ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(t, inner.Else, "inner if must capture the else")
}

// TestCallVsIndexedVsIdentAmbiguity exercises the ordering policy in
// matchTerm: call and indexed forms must be tried, and fail cleanly
// via Undo/PushBack, before falling through to a bare identifier.
func TestCallVsIndexedVsIdentAmbiguity(t *testing.T) {
	prog := parse(t, `
		int arr[4];
		int f() {
			int x = g();
			int y = arr[0];
			int z = x;
			return z;
		}
	`)
	fn := prog.Decls[1].(*ast.FuncDecl)

	xDecl := fn.Body.Stmts[0].(*ast.VarDecl)
	_, isCall := xDecl.Init.(*ast.TermExpr)
	require.True(t, isCall)
	_, callOk := xDecl.Init.(*ast.TermExpr).Term.(*ast.CallTerm)
	assert.True(t, callOk)

	yDecl := fn.Body.Stmts[1].(*ast.VarDecl)
	_, indexedOk := yDecl.Init.(*ast.TermExpr).Term.(*ast.IndexedTerm)
	assert.True(t, indexedOk)

	zDecl := fn.Body.Stmts[2].(*ast.VarDecl)
	_, identOk := zDecl.Init.(*ast.TermExpr).Term.(*ast.IdentTerm)
	assert.True(t, identOk)
}

func TestUnaryNegAndNot(t *testing.T) {
	prog := parse(t, `
		int f() {
			int a = -x;
			int b = !y;
			return 0;
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	aDecl := fn.Body.Stmts[0].(*ast.VarDecl)
	_, negOk := aDecl.Init.(*ast.NegExpr)
	assert.True(t, negOk)

	bDecl := fn.Body.Stmts[1].(*ast.VarDecl)
	_, notOk := bDecl.Init.(*ast.NotExpr)
	assert.True(t, notOk)
}

func TestDerefAndAddrOfTerms(t *testing.T) {
	prog := parse(t, `
		int f(int *p) {
			*p = *p + 1;
			return 0;
		}
		int g() {
			int x = 1;
			f(&x);
			return 0;
		}
	`)
	f := prog.Decls[0].(*ast.FuncDecl)
	_, ok := f.Body.Stmts[0].(*ast.DerefAssignStmt)
	assert.True(t, ok)
}

func TestWhileBreakContinue(t *testing.T) {
	prog := parse(t, `
		int f() {
			int i = 0;
			while (i < 10) {
				if (i == 5)
					break;
				continue;
			}
			return i;
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	loop, ok := fn.Body.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
	body, ok := loop.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
	_, ifOk := body.Stmts[0].(*ast.IfStmt)
	assert.True(t, ifOk)
	_, contOk := body.Stmts[1].(*ast.ContinueStmt)
	assert.True(t, contOk)
}

func TestAsmStmtParamList(t *testing.T) {
	prog := parse(t, `
		int f() {
			asm("addi r0, NULL, %0" x + 1 y);
			return 0;
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	a, ok := fn.Body.Stmts[0].(*ast.AsmStmt)
	require.True(t, ok)
	assert.Equal(t, "addi r0, NULL, %0", a.Raw)
	require.Len(t, a.Params, 2)
}

func TestSyntaxErrorOnUnterminatedDecl(t *testing.T) {
	lex := lexer.New(strings.NewReader(`int x = 1`), config.Default())
	_, _, err := Parse(lex, typetab.New())
	assert.Error(t, err)
}
