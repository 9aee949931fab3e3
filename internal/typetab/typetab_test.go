/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package typetab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinSizes(t *testing.T) {
	tab := New()

	tests := []struct {
		name string
		size int
	}{
		{"char", 1},
		{"int", 2},
		{"long", 4},
	}
	for _, tt := range tests {
		d, ok := tab.Lookup(tt.name)
		assert.True(t, ok, "%s should be a known type", tt.name)
		assert.Equal(t, tt.size, d.Size)
	}
}

func TestUnknownTypeNotFound(t *testing.T) {
	tab := New()
	_, ok := tab.Lookup("short")
	assert.False(t, ok)
	assert.False(t, tab.IsKnown("short"))
}
