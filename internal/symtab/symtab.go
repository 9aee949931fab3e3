/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

// Package symtab implements the lexically scoped symbol table (spec.md
// §4.5, "Scopes"), grounded on the original compiler's symbol_table.cpp.
// Scopes form a stack; a scope with its inherit flag set can see names
// from the scope directly below it on the stack, and so on until a
// non-inherited scope is hit, at which point lookup falls back to the
// bottommost (global) scope.
package symtab

import "fmt"

// AddrInfo is the address assigned to a variable once the translator has
// placed it (spec.md §3: "either a global label or a signed frame-pointer
// offset"). IsGlobal distinguishes the two; BaseOffset is meaningless
// when IsGlobal is true.
type AddrInfo struct {
	IsGlobal   bool
	GlobalName string
	BaseOffset int
}

// VarInfo describes one declared variable or parameter. Always handled
// through a *VarInfo once inserted, so the register allocator can use
// pointer identity to recognise "this register already holds this
// variable" (spec.md §4.6).
type VarInfo struct {
	Name    string // surface name as written by the programmer
	ID      string // mangled unique name, "name:N"
	Type    string // built-in type name
	IsPtr   bool
	Address AddrInfo
}

// nameAllocator mints unique mangled ids by appending an ever-increasing
// counter per surface name (spec.md §4.5, "Name mangling").
type nameAllocator struct {
	counters map[string]int
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{counters: make(map[string]int)}
}

func (a *nameAllocator) next(id string) string {
	n := a.counters[id]
	a.counters[id] = n + 1
	return fmt.Sprintf("%s:%d", id, n)
}

// Scope holds the variables declared directly within one lexical level.
type Scope struct {
	data         map[string]*VarInfo
	totalSize    int
	baseOffset   int
	paramOffset  int
	InheritScope bool
}

func newScope() *Scope {
	return &Scope{data: make(map[string]*VarInfo)}
}

func newInheritingScope(baseOffset int) *Scope {
	return &Scope{data: make(map[string]*VarInfo), baseOffset: baseOffset, InheritScope: true}
}

// Size returns the number of bytes claimed by variables in this scope.
func (s *Scope) Size() int { return s.totalSize }

// EndOffset returns the next free offset after this scope's variables.
func (s *Scope) EndOffset() int { return s.baseOffset + s.totalSize }

// At looks up name in this scope only.
func (s *Scope) At(name string) (*VarInfo, bool) {
	v, ok := s.data[name]
	return v, ok
}

// Align pads the scope's running size up to a multiple of n, returning
// the padding inserted (spec.md §4.7, "insert alignment padding in front
// if needed"), grounded on the original's scope_t::align(4).
func (s *Scope) Align(n int) int {
	rem := s.totalSize % n
	if rem == 0 {
		return 0
	}
	pad := n - rem
	s.totalSize += pad
	return pad
}

// Table is the compiler-wide stack of scopes.
type Table struct {
	scopes []*Scope
	names  *nameAllocator
}

// New returns a Table with a single, non-inheriting global scope pushed
// (spec.md §4.5: "the global scope is always present").
func New() *Table {
	t := &Table{names: newNameAllocator()}
	t.scopes = append(t.scopes, newScope())
	return t
}

// PushScope opens a new lexical level. When inherit is true the new
// scope can see names from the scope it is nested within, and its frame
// offsets continue on from that scope's (spec.md §4.5, "Block scoping").
func (t *Table) PushScope(inherit bool) {
	if inherit {
		prev := t.scopes[len(t.scopes)-1]
		t.scopes = append(t.scopes, newInheritingScope(prev.EndOffset()))
		return
	}
	t.scopes = append(t.scopes, newScope())
}

// PushFunctionScope opens a non-inheriting scope for a function body.
// Its locals start counting down from frame offset 0 like any other
// scope; its parameters run on their own counter starting at +2,
// reserving the return-address slot the caller pushes before the call
// (spec.md §4.7, "Parameter address assignment begins at frame offset
// +2") — a separate axis from local storage, not a shared running size,
// so declaring a parameter never shifts where the first local lands.
func (t *Table) PushFunctionScope() {
	s := newScope()
	s.paramOffset = 2
	t.scopes = append(t.scopes, s)
}

// PopScope discards the innermost scope.
func (t *Table) PopScope() {
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// IsGlobalScope reports whether the symbol table currently has only the
// global scope pushed — used to route declarations to the translator's
// global-vs-local lowering (spec.md §4.6).
func (t *Table) IsGlobalScope() bool {
	return len(t.scopes) == 1
}

// Current returns the innermost scope, for callers that need to know its
// frame size once a function body has been fully walked.
func (t *Table) Current() *Scope {
	return t.scopes[len(t.scopes)-1]
}

// FrameDepth returns the total bytes of local storage currently pushed
// across every scope still open back to (and including) the nearest
// enclosing function scope. This is the amount a scope exit at the
// current point must reclaim with one "addi SP, SP, k" (spec.md §4.7
// invariant 6) — generalized from a single block's own size to however
// many blocks happen to be open around a `return`, since an early
// return can sit inside any number of nested ifs/whiles whose own exit
// addi hasn't run yet.
func (t *Table) FrameDepth() int {
	total := 0
	for i := len(t.scopes) - 1; i >= 1; i-- {
		scope := t.scopes[i]
		total += scope.Size()
		if !scope.InheritScope {
			break
		}
	}
	return total
}

// Get resolves name by walking scopes from innermost to outermost,
// stopping as soon as a non-inheriting scope has been checked, then
// falling back to the global scope if nothing was found along the way.
//
// This corrects an off-by-direction bug in the original implementation,
// whose equivalent loop walked scope_stack[i] with i only ever
// increasing past the end of the deque (spec.md §9, Open Question on
// symbol_table_t::get scope traversal direction) — here the walk goes
// from len(scopes)-1 down to 1, which is what "look in the enclosing
// scopes, stopping at the first non-inherited one" requires.
func (t *Table) Get(name string) (*VarInfo, bool) {
	for i := len(t.scopes) - 1; i >= 1; i-- {
		scope := t.scopes[i]
		if v, ok := scope.At(name); ok {
			return v, true
		}
		if !scope.InheritScope {
			break
		}
	}
	return t.scopes[0].At(name)
}

// Add declares name with the given type in the innermost scope and
// returns its mangled id and VarInfo. size is the type's byte size (from
// typetab), used only to advance the scope's running size. Used for
// temporaries, whose frame offset is never consulted — they live in a
// register only.
func (t *Table) Add(name, typeName string, isPtr bool, size int) (string, *VarInfo) {
	scope := t.scopes[len(t.scopes)-1]
	id := t.names.next(name)
	v := &VarInfo{Name: name, ID: id, Type: typeName, IsPtr: isPtr}
	scope.data[name] = v
	scope.totalSize += size
	return id, v
}

// AddGlobal declares a global variable and returns its mangled id, which
// doubles as the assembly label for its data directive.
func (t *Table) AddGlobal(name, typeName string, isPtr bool, size int) (id string, v *VarInfo) {
	scope := t.scopes[0]
	id = t.names.next(name)
	v = &VarInfo{Name: name, ID: id, Type: typeName, IsPtr: isPtr, Address: AddrInfo{IsGlobal: true, GlobalName: id}}
	scope.data[name] = v
	scope.totalSize += size
	return id, v
}

// AddLocal declares a local variable and returns its mangled id and
// VarInfo, whose frame offset is expressed as a negative distance from
// the frame pointer (spec.md §4.7's local_addr_info_t convention: the
// offset is already the signed value to add to the frame pointer).
func (t *Table) AddLocal(name, typeName string, isPtr bool, size int) (id string, v *VarInfo) {
	scope := t.scopes[len(t.scopes)-1]
	id = t.names.next(name)
	frameOffset := -(scope.baseOffset + scope.totalSize + size)
	v = &VarInfo{Name: name, ID: id, Type: typeName, IsPtr: isPtr, Address: AddrInfo{BaseOffset: frameOffset}}
	scope.data[name] = v
	scope.totalSize += size
	return id, v
}

// AddParam declares a function parameter and returns its mangled id and
// VarInfo, whose frame offset is a positive distance above the frame
// pointer (the return-address slot reserved at +0..+1). Tracked on the
// scope's own paramOffset counter, never scope.totalSize, so parameter
// bytes never displace a local's offset (or vice versa).
func (t *Table) AddParam(name, typeName string, isPtr bool, size int) (id string, v *VarInfo) {
	scope := t.scopes[len(t.scopes)-1]
	id = t.names.next(name)
	frameOffset := scope.paramOffset
	v = &VarInfo{Name: name, ID: id, Type: typeName, IsPtr: isPtr, Address: AddrInfo{BaseOffset: frameOffset}}
	scope.data[name] = v
	scope.paramOffset += size
	return id, v
}
