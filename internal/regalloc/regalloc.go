/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

// Package regalloc implements the register allocator (spec.md §4.6,
// "Register allocation"), grounded on the original compiler's
// register_allocation.cpp: a least-recently-touched heap over a fixed
// register file, with a reserved prefix of registers the allocator never
// gives out and an explicit lock so a register holding one operand can't
// be reused while its sibling operand is being materialized.
package regalloc

import (
	"container/heap"
	"math"

	"github.com/gmofishsauce/tsc/internal/symtab"
)

// Register is one physical register's allocator-visible state.
type Register struct {
	Index       int
	Content     *symtab.VarInfo
	LastTouched int64

	Locked   bool
	Temp     bool
	Reserved bool

	heapIndex int
}

// Name returns the register's assembly-text name.
func (r *Register) Name() string {
	return "r" + itoa(r.Index)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// registerHeap is a min-heap over *Register ordered by LastTouched, so
// the least-recently-touched register bubbles to the front (the Locked
// flag plays no part in the ordering; evictionCandidate skips it) —
// the Go equivalent of std::make_heap with std::greater<register_t*>.
type registerHeap []*Register

func (h registerHeap) Len() int { return len(h) }
func (h registerHeap) Less(i, j int) bool {
	return h[i].LastTouched < h[j].LastTouched
}
func (h registerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}
func (h *registerHeap) Push(x any) {
	r := x.(*Register)
	r.heapIndex = len(*h)
	*h = append(*h, r)
}
func (h *registerHeap) Pop() any {
	old := *h
	n := len(old)
	r := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return r
}

// Allocator manages the machine's fixed register file.
type Allocator struct {
	all  []*Register // indexed by Index, stable identity
	heap registerHeap
	tick int64
}

// New builds an Allocator with count registers, the first reserveCount
// of which are pinned and never allocated (spec.md §4.6: register 0 is
// reserved as the zero/link register and is never a candidate).
func New(count, reserveCount int) *Allocator {
	a := &Allocator{all: make([]*Register, count)}
	for i := 0; i < count; i++ {
		r := &Register{Index: i}
		if i < reserveCount {
			r.Reserved = true
			r.LastTouched = math.MaxInt64
		}
		a.all[i] = r
	}
	a.rebuildHeap()
	return a
}

func (a *Allocator) rebuildHeap() {
	a.heap = a.heap[:0]
	for _, r := range a.all {
		a.heap = append(a.heap, r)
	}
	heap.Init(&a.heap)
}

// tickOnce advances the allocator's logical clock, used as LastTouched's
// value — mirroring the original's use of the translator's running
// instruction count.
func (a *Allocator) tickOnce() int64 {
	a.tick++
	return a.tick
}

// Lookup returns the register already holding var, if any, without
// touching its recency.
func (a *Allocator) Lookup(v *symtab.VarInfo) (*Register, bool) {
	for _, r := range a.all {
		if r.Content == v {
			return r, true
		}
	}
	return nil, false
}

// Allocate returns a register holding v, reusing an existing binding if
// present, otherwise evicting the least-recently-touched unlocked,
// unreserved register (spec.md §4.6, "Spilling is out of scope: an
// allocation with no free register simply evicts"). If lock is true the
// returned register is marked locked, preventing it from being evicted
// again until Unlock is called.
func (a *Allocator) Allocate(v *symtab.VarInfo, lock bool) *Register {
	if r, ok := a.Lookup(v); ok {
		r.LastTouched = a.tickOnce()
		heap.Fix(&a.heap, r.heapIndex)
		if lock {
			r.Locked = true
		}
		return r
	}

	victim := a.evictionCandidate()
	victim.Content = v
	victim.Temp = false
	victim.LastTouched = a.tickOnce()
	heap.Fix(&a.heap, victim.heapIndex)
	if lock {
		victim.Locked = true
	}
	return victim
}

// AllocateTemp behaves like Allocate but binds no variable and marks the
// register Temp, for a value that only needs to live until the next
// allocation (spec.md §4.6, "Temporaries").
func (a *Allocator) AllocateTemp() *Register {
	victim := a.evictionCandidate()
	victim.Content = nil
	victim.Temp = true
	victim.LastTouched = a.tickOnce()
	heap.Fix(&a.heap, victim.heapIndex)
	return victim
}

// evictionCandidate returns the least-recently-touched register that is
// neither reserved nor locked. It does not remove the register from the
// heap; callers update its key fields and then heap.Fix it back into
// place themselves.
func (a *Allocator) evictionCandidate() *Register {
	var best *Register
	for _, r := range a.heap {
		if r.Reserved || r.Locked {
			continue
		}
		if best == nil || r.LastTouched < best.LastTouched {
			best = r
		}
	}
	return best
}

// Free releases index so it no longer holds any variable and becomes the
// most eligible eviction candidate again.
func (a *Allocator) Free(index int) {
	a.Release(index)
}

// Release behaves like Free but returns the VarInfo the register held, if
// any — grounded on the original's push_temp, which needs to know the
// freed register's former owner to size the spill it is about to emit.
func (a *Allocator) Release(index int) *symtab.VarInfo {
	r := a.all[index]
	v := r.Content
	r.Content = nil
	r.Temp = false
	r.Locked = false
	r.LastTouched = 0
	heap.Fix(&a.heap, r.heapIndex)
	return v
}

// GiveOwnership retags an already-allocated register as belonging to v
// without going through eviction — grounded on the original's
// give_ownership, used when a temporary's register is promoted to hold a
// longer-lived intermediate (spec.md §4.7, "take ownership of it").
func (a *Allocator) GiveOwnership(index int, v *symtab.VarInfo) {
	r := a.all[index]
	r.Content = v
	r.Temp = false
}

// IsTemp reports whether the register at index currently holds an
// anonymous temporary.
func (a *Allocator) IsTemp(index int) bool {
	return a.all[index].Temp
}

// Unlock clears the locked flag on index, making it eligible for
// eviction again.
func (a *Allocator) Unlock(index int) {
	a.all[index].Locked = false
}

// Get returns the register at index.
func (a *Allocator) Get(index int) *Register {
	return a.all[index]
}

// RegisterName formats index as assembly-text register syntax, e.g. "r3".
func RegisterName(index int) string {
	return "r" + itoa(index)
}
