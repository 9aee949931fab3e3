/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosFormatting(t *testing.T) {
	assert.Equal(t, "3:7", Pos{Line: 3, Col: 7}.String())
}

func TestSyntaxErrorMessage(t *testing.T) {
	err := &SyntaxError{Pos: Pos{Line: 1, Col: 1}, Msg: "unexpected token"}
	assert.Contains(t, err.Error(), "syntax error")
	assert.Contains(t, err.Error(), "unexpected token")
}

func TestTranslationErrorMessage(t *testing.T) {
	err := &TranslationError{Pos: Pos{Line: 2, Col: 4}, Msg: "undeclared identifier"}
	assert.Contains(t, err.Error(), "2:4")
	assert.Contains(t, err.Error(), "undeclared identifier")
}

func TestSinkWarningCount(t *testing.T) {
	var buf strings.Builder
	sink := NewSink(&buf)
	assert.Equal(t, 0, sink.WarningCount())

	sink.Warn(Pos{Line: 1, Col: 1}, "unused variable %q", "x")
	sink.Warn(Pos{Line: 2, Col: 1}, "unused variable %q", "y")

	assert.Equal(t, 2, sink.WarningCount())
	assert.Contains(t, buf.String(), "unused variable \"x\"")
}

func TestSinkSuccessBanner(t *testing.T) {
	var buf strings.Builder
	sink := NewSink(&buf)
	sink.Success(0)
	assert.Contains(t, buf.String(), "no warnings and no errors")

	buf.Reset()
	sink.Success(3)
	assert.Contains(t, buf.String(), "3 warning(s)")
}
