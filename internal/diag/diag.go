/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

// Package diag carries the compiler's three diagnostic kinds: warnings
// (counted, never abort), syntax errors, and translation errors (both
// abort with a source position). Colouring is grounded on the ANSI escape
// sequences hard-coded in the original implementation's main.cpp and
// error_handling.cpp (`\033[0;32m`, `\033[0;33m`), reproduced here with
// fatih/color so that colour is automatically suppressed on non-TTY
// output instead of leaking raw escapes into redirected logs.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Pos is a 1-based source position, attached to every token and to every
// AST node's first token.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// SyntaxError is raised at the peeked token's position when a partially
// committed grammar production cannot complete.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Msg)
}

// TranslationError is raised at an AST node's first token position when
// code generation cannot proceed (out-of-range constant, non-static
// initialiser, use-before-declaration, break/continue outside a loop).
type TranslationError struct {
	Pos Pos
	Msg string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("%s: error: %s", e.Pos, e.Msg)
}

// Sink collects warnings and prints all three diagnostic kinds in the
// teacher's colour scheme: warnings yellow, errors red, success green.
type Sink struct {
	out      io.Writer
	warnings int

	warn    *color.Color
	errc    *color.Color
	success *color.Color
}

// NewSink builds a diagnostic sink writing to out. Colour is disabled
// automatically when out is not a terminal (fatih/color's own detection).
func NewSink(out io.Writer) *Sink {
	return &Sink{
		out:     out,
		warn:    color.New(color.FgYellow),
		errc:    color.New(color.FgRed),
		success: color.New(color.FgGreen),
	}
}

// Warn prints a non-fatal diagnostic and bumps the warning counter. The
// message format matches spec.md §4.8: "--- Warning <line>:<col>: <msg>".
func (s *Sink) Warn(pos Pos, format string, args ...any) {
	s.warnings++
	msg := fmt.Sprintf(format, args...)
	s.warn.Fprintf(s.out, "--- Warning %s: %s\n", pos, msg)
}

// WarningCount returns the number of warnings emitted so far.
func (s *Sink) WarningCount() int {
	return s.warnings
}

// ReportError prints a syntax or translation error in red.
func (s *Sink) ReportError(err error) {
	s.errc.Fprintln(s.out, err.Error())
}

// Success prints the final "compiled cleanly" banner in green.
func (s *Sink) Success(warnings int) {
	if warnings == 0 {
		s.success.Fprintln(s.out, "Compiled with no warnings and no errors.")
		return
	}
	s.success.Fprintf(s.out, "Compiled with %d warning(s) and no errors.\n", warnings)
}
