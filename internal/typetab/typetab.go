/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

// Package typetab holds the fixed set of built-in type descriptors
// (spec.md §4.5, "Types"). The language has no type declarations, so the
// table is populated once at construction and never mutated afterward.
package typetab

// Descriptor names a built-in type and its size in bytes on the target
// machine.
type Descriptor struct {
	Name string
	Size int
}

// Table is a read-only lookup from type name to Descriptor.
type Table struct {
	types map[string]Descriptor
}

// New returns a Table pre-populated with the three built-in types.
func New() *Table {
	t := &Table{types: make(map[string]Descriptor, 3)}
	t.types["char"] = Descriptor{Name: "char", Size: 1}
	t.types["int"] = Descriptor{Name: "int", Size: 2}
	t.types["long"] = Descriptor{Name: "long", Size: 4}
	return t
}

// Lookup returns the descriptor for name and whether it was found.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	d, ok := t.types[name]
	return d, ok
}

// IsKnown reports whether name names a built-in type.
func (t *Table) IsKnown(name string) bool {
	_, ok := t.types[name]
	return ok
}
