/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package regalloc

import (
	"testing"

	"github.com/gmofishsauce/tsc/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservedRegistersNeverAllocated(t *testing.T) {
	a := New(4, 1)
	vars := []*symtab.VarInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	for _, v := range vars {
		r := a.Allocate(v, false)
		assert.NotEqual(t, 0, r.Index, "register 0 is reserved and must never be a victim")
	}
}

func TestAllocateReusesExistingBinding(t *testing.T) {
	a := New(4, 1)
	v := &symtab.VarInfo{Name: "x"}

	first := a.Allocate(v, false)
	second := a.Allocate(v, false)
	assert.Equal(t, first.Index, second.Index)
}

func TestLRUVictimSelection(t *testing.T) {
	a := New(3, 1) // registers 1, 2 available (0 reserved)
	v1 := &symtab.VarInfo{Name: "v1"}
	v2 := &symtab.VarInfo{Name: "v2"}
	v3 := &symtab.VarInfo{Name: "v3"}

	r1 := a.Allocate(v1, false)
	r2 := a.Allocate(v2, false)
	a.Allocate(v1, false) // touches v1 again, making v2 the LRU victim

	r3 := a.Allocate(v3, false)
	assert.Equal(t, r2.Index, r3.Index, "the least-recently-touched register should be evicted")
	assert.Equal(t, v3, a.Get(r3.Index).Content)
	_ = r1
}

func TestLockedRegisterIsNotEvicted(t *testing.T) {
	a := New(3, 1)
	v1 := &symtab.VarInfo{Name: "v1"}
	v2 := &symtab.VarInfo{Name: "v2"}
	v3 := &symtab.VarInfo{Name: "v3"}

	r1 := a.Allocate(v1, true) // locked
	a.Allocate(v2, false)

	r3 := a.Allocate(v3, false)
	assert.NotEqual(t, r1.Index, r3.Index, "a locked register must not be chosen as victim")
}

func TestReleaseReturnsFormerOwner(t *testing.T) {
	a := New(2, 1)
	v := &symtab.VarInfo{Name: "x"}
	r := a.Allocate(v, false)

	freed := a.Release(r.Index)
	assert.Same(t, v, freed)
	_, found := a.Lookup(v)
	assert.False(t, found)
}

func TestGiveOwnershipRetagsWithoutEviction(t *testing.T) {
	a := New(2, 1)
	temp := a.AllocateTemp()
	require.True(t, a.IsTemp(temp.Index))

	v := &symtab.VarInfo{Name: "promoted"}
	a.GiveOwnership(temp.Index, v)

	assert.False(t, a.IsTemp(temp.Index))
	got, ok := a.Lookup(v)
	require.True(t, ok)
	assert.Equal(t, temp.Index, got.Index)
}

func TestRegisterNameFormatting(t *testing.T) {
	assert.Equal(t, "r0", RegisterName(0))
	assert.Equal(t, "r15", RegisterName(15))
}
