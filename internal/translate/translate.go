/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package translate

import (
	"github.com/gmofishsauce/tsc/internal/ast"
	"github.com/gmofishsauce/tsc/internal/config"
	"github.com/gmofishsauce/tsc/internal/diag"
	"github.com/gmofishsauce/tsc/internal/token"
)

// Translate walks prog's declarations in order and returns the
// complete assembly text (spec.md §4.7). A committed failure anywhere
// in the walk unwinds through panic/recover as a *diag.TranslationError
// (spec.md §7), so every fail call below can simply panic without a
// caller-by-caller error check.
func Translate(prog *ast.Program, cfg config.Config, tokens []token.Token, sink *diag.Sink) (asm string, err error) {
	s := newState(cfg, sink, tokens)

	defer func() {
		if r := recover(); r != nil {
			if te, ok := r.(*diag.TranslationError); ok {
				err = te
				return
			}
			panic(r)
		}
	}()

	for _, d := range prog.Decls {
		s.translateDecl(d)
	}
	return s.out.String(), nil
}
