/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalScopeRoundTrip(t *testing.T) {
	tab := New()
	assert.True(t, tab.IsGlobalScope())

	id, v := tab.AddGlobal("x", "int", false, 2)
	assert.Equal(t, "x:0", id)
	assert.True(t, v.Address.IsGlobal)
	assert.Equal(t, "x:0", v.Address.GlobalName)

	got, ok := tab.Get("x")
	require.True(t, ok)
	assert.Same(t, v, got)
}

func TestMangledNamesDisambiguateShadowing(t *testing.T) {
	tab := New()
	_, outer := tab.AddGlobal("n", "int", false, 2)

	tab.PushFunctionScope()
	_, inner := tab.AddLocal("n", "int", false, 2)

	assert.NotEqual(t, outer.ID, inner.ID)
	assert.Equal(t, "n:0", outer.ID)
	assert.Equal(t, "n:1", inner.ID)
}

func TestInheritingBlockScopeSeesOuterLocals(t *testing.T) {
	tab := New()
	tab.PushFunctionScope()
	_, outer := tab.AddLocal("x", "int", false, 2)

	tab.PushScope(true)
	got, ok := tab.Get("x")
	require.True(t, ok)
	assert.Same(t, outer, got)
	tab.PopScope()
}

// TestFunctionScopeDoesNotInherit checks the corrected lookup direction:
// a non-inheriting function scope stops the walk at its own boundary
// except that the global scope is always consulted last.
func TestFunctionScopeDoesNotInherit(t *testing.T) {
	tab := New()
	_, g := tab.AddGlobal("shared", "int", false, 2)

	tab.PushFunctionScope()
	tab.PushScope(true) // an inheriting block inside the function

	got, ok := tab.Get("shared")
	require.True(t, ok)
	assert.Same(t, g, got)

	tab.PopScope()
	_, ok = tab.Get("nonexistent")
	assert.False(t, ok)
}

func TestLocalFrameOffsetsAccumulateNegatively(t *testing.T) {
	tab := New()
	tab.PushFunctionScope()

	_, a := tab.AddLocal("a", "int", false, 2)
	_, b := tab.AddLocal("b", "int", false, 2)

	assert.Equal(t, -2, a.Address.BaseOffset)
	assert.Equal(t, -4, b.Address.BaseOffset)
}

func TestParamOffsetsStartAtPlusTwo(t *testing.T) {
	tab := New()
	tab.PushFunctionScope()

	_, p0 := tab.AddParam("a", "int", false, 2)
	_, p1 := tab.AddParam("b", "int", false, 2)

	assert.Equal(t, 2, p0.Address.BaseOffset)
	assert.Equal(t, 4, p1.Address.BaseOffset)
}

func TestScopeAlign(t *testing.T) {
	tab := New()
	tab.PushFunctionScope()
	tab.AddLocal("c", "char", false, 1)

	pad := tab.Current().Align(4)
	assert.Equal(t, 3, pad)
	assert.Equal(t, 4, tab.Current().Size())

	assert.Equal(t, 0, tab.Current().Align(4))
}

func TestAddKeepsPointerIdentityAcrossLookups(t *testing.T) {
	// Regression test: Scope.data must store *VarInfo, not VarInfo, or
	// every Get of the same declared name would return a distinct copy
	// and the register allocator's pointer-identity comparisons would
	// never match.
	tab := New()
	tab.PushFunctionScope()
	_, declared := tab.AddLocal("x", "int", false, 2)

	first, _ := tab.Get("x")
	second, _ := tab.Get("x")
	assert.Same(t, declared, first)
	assert.Same(t, first, second)
}
