/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

// Package parser implements the backtracking recursive-descent parser
// (spec.md §4.3). Every grammar production has a matching method of the
// uniform shape (ast.Node, bool): true means the node was built and owns
// every token it consumed; false means the attempt failed and the token
// stream was restored exactly. A production that commits past the point
// of no return raises a *diag.SyntaxError by panicking, caught at the
// top of Parse.
package parser

import (
	"fmt"

	"github.com/gmofishsauce/tsc/internal/ast"
	"github.com/gmofishsauce/tsc/internal/diag"
	"github.com/gmofishsauce/tsc/internal/lexer"
	"github.com/gmofishsauce/tsc/internal/token"
	"github.com/gmofishsauce/tsc/internal/typetab"
)

// Parser turns a token stream into an AST. The token arena and push-back
// deque implement spec.md §4.2/§9 ("Token ownership and undo"): tokens
// are stored by value in arena, and AST nodes carry integer handles into
// it rather than pointers, so Undo is just handle bookkeeping.
type Parser struct {
	lex     *lexer.Lexer
	types   *typetab.Table
	arena   []token.Token
	pending []int
}

// New constructs a Parser reading tokens from lex, validating declared
// types against types.
func New(lex *lexer.Lexer, types *typetab.Table) *Parser {
	return &Parser{lex: lex, types: types}
}

// PushBack implements ast.TokenSink.
func (p *Parser) PushBack(handle int) {
	p.pending = append([]int{handle}, p.pending...)
}

func (p *Parser) fetch() int {
	if len(p.pending) > 0 {
		h := p.pending[0]
		p.pending = p.pending[1:]
		return h
	}
	tok := p.lex.Next()
	h := len(p.arena)
	p.arena = append(p.arena, tok)
	return h
}

func (p *Parser) at(h int) token.Token {
	return p.arena[h]
}

// peek returns the next token without consuming it.
func (p *Parser) peek() token.Token {
	h := p.fetch()
	p.PushBack(h)
	return p.at(h)
}

func (p *Parser) pos(tok token.Token) diag.Pos {
	return diag.Pos{Line: tok.Line, Col: tok.Col}
}

// fail raises a syntax error at the current peeked token's position; it
// is only ever called after a production has committed (spec.md §4.3:
// "If a partial match is unambiguous but cannot complete ... raise a
// syntax error").
func (p *Parser) fail(format string, args ...any) {
	tok := p.peek()
	panic(&diag.SyntaxError{Pos: p.pos(tok), Msg: fmt.Sprintf(format, args...)})
}

// acceptTag consumes and returns the next token's handle if it has tag,
// otherwise restores the stream and reports no match.
func (p *Parser) acceptTag(tag token.Tag) (int, bool) {
	h := p.fetch()
	if p.at(h).Tag == tag {
		return h, true
	}
	p.PushBack(h)
	return -1, false
}

func (p *Parser) expectTag(tag token.Tag) int {
	h, ok := p.acceptTag(tag)
	if !ok {
		p.fail("expected %s but got %s", tag, p.peek())
	}
	return h
}

func (p *Parser) acceptIdent() (handle int, name string, ok bool) {
	h := p.fetch()
	tok := p.at(h)
	if tok.Tag == token.Ident {
		return h, tok.Lexeme, true
	}
	p.PushBack(h)
	return -1, "", false
}

func (p *Parser) acceptIntLit() (handle int, value int, ok bool) {
	h := p.fetch()
	tok := p.at(h)
	if tok.Tag == token.Int {
		return h, tok.IntVal, true
	}
	p.PushBack(h)
	return -1, 0, false
}

func (p *Parser) acceptStrLit() (handle int, value string, ok bool) {
	h := p.fetch()
	tok := p.at(h)
	if tok.Tag == token.Str {
		return h, tok.StrVal, true
	}
	p.PushBack(h)
	return -1, "", false
}

// undoAll backtracks every part already accumulated for a failed
// production, in reverse order, via ast.Undo.
func (p *Parser) undoAll(parts []ast.Node) {
	for i := len(parts) - 1; i >= 0; i-- {
		ast.Undo(parts[i], p)
	}
}

func leaf(h int) ast.Node { return ast.NewLeaf(h) }

// acceptExpr matches an expr and applies the associativity rewrite
// (spec.md §4.4), for use at every point spec.md calls a "final
// acceptance" of an expr: assignments, return, call/array-bound/init-list
// elements, conditions, parenthesised terms, asm parameters.
func (p *Parser) acceptExpr() (ast.Node, bool) {
	e, ok := p.matchExpr()
	if !ok {
		return nil, false
	}
	return ast.Rewrite(e), true
}

func (p *Parser) requireExpr() ast.Node {
	e, ok := p.acceptExpr()
	if !ok {
		p.fail("expected expression but got %s", p.peek())
	}
	return e
}

// matchType accepts an identifier naming a known built-in type.
func (p *Parser) matchType() (handle int, name string, ok bool) {
	h, name, ok := p.acceptIdent()
	if !ok {
		return -1, "", false
	}
	if !p.types.IsKnown(name) {
		p.PushBack(h)
		return -1, "", false
	}
	return h, name, true
}

// Parse consumes the entire token stream and returns the program along
// with the token arena backing it (so the translator can recover source
// positions via ast.FirstHandle without the parser itself staying
// alive), or a *diag.SyntaxError recovered from a panic raised by a
// committed production.
func Parse(lex *lexer.Lexer, types *typetab.Table) (prog *ast.Program, tokens []token.Token, err error) {
	p := New(lex, types)
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*diag.SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	prog = p.matchProgram()
	return prog, p.arena, nil
}

func (p *Parser) matchProgram() *ast.Program {
	var decls []ast.Node
	for {
		if p.peek().Tag == token.EOF {
			break
		}
		d, ok := p.matchDecl()
		if !ok {
			p.fail("expected declaration but got %s", p.peek())
		}
		decls = append(decls, d)
	}
	return ast.NewProgram(decls)
}

func (p *Parser) matchDecl() (ast.Node, bool) {
	if n, ok := p.matchVarDecl(); ok {
		return n, true
	}
	if n, ok := p.matchArrayDecl(); ok {
		return n, true
	}
	if n, ok := p.matchFuncDecl(); ok {
		return n, true
	}
	return nil, false
}

// matchVarDecl: type "*"? ident ("=" expr)? ";"
func (p *Parser) matchVarDecl() (ast.Node, bool) {
	typeTok, typeName, ok := p.matchType()
	if !ok {
		return nil, false
	}
	var parts []ast.Node
	parts = append(parts, leaf(typeTok))

	isPtr := false
	if starTok, ok := p.acceptTag(token.Star); ok {
		isPtr = true
		parts = append(parts, leaf(starTok))
	}

	nameTok, name, ok := p.acceptIdent()
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(nameTok))

	var init ast.Node
	if eqTok, ok := p.acceptTag(token.Assign); ok {
		parts = append(parts, leaf(eqTok))
		init = p.requireExpr()
		parts = append(parts, init)
	}

	semiTok, ok := p.acceptTag(token.Semi)
	if !ok {
		// Not a var_decl: let the array/function alternatives that share
		// this prefix try instead.
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(semiTok))

	return ast.NewVarDecl(parts, typeName, typeTok, isPtr, name, nameTok, init), true
}

// matchArrayDecl covers all three array_decl alternatives (spec.md §4.3).
func (p *Parser) matchArrayDecl() (ast.Node, bool) {
	typeTok, typeName, ok := p.matchType()
	if !ok {
		return nil, false
	}
	var parts []ast.Node
	parts = append(parts, leaf(typeTok))

	nameTok, name, ok := p.acceptIdent()
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(nameTok))

	lbrTok, ok := p.acceptTag(token.LBracket)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(lbrTok))

	// Sized alternative: "[" expr "]" ";"
	if size, ok := p.acceptExpr(); ok {
		parts = append(parts, size)
		rbrTok := p.expectTag(token.RBracket)
		parts = append(parts, leaf(rbrTok))
		semiTok := p.expectTag(token.Semi)
		parts = append(parts, leaf(semiTok))
		return ast.NewArrayDecl(parts, typeName, name, nameTok, ast.ArraySized, size, nil, ""), true
	}

	// Both remaining alternatives continue "[" "]" "=" ...
	rbrTok := p.expectTag(token.RBracket)
	parts = append(parts, leaf(rbrTok))
	eqTok := p.expectTag(token.Assign)
	parts = append(parts, leaf(eqTok))

	if strTok, str, ok := p.acceptStrLit(); ok {
		parts = append(parts, leaf(strTok))
		semiTok := p.expectTag(token.Semi)
		parts = append(parts, leaf(semiTok))
		return ast.NewArrayDecl(parts, typeName, name, nameTok, ast.ArrayString, nil, nil, str), true
	}

	lbraceTok := p.expectTag(token.LBrace)
	parts = append(parts, leaf(lbraceTok))
	var initList []ast.Node
	for {
		e, ok := p.acceptExpr()
		if !ok {
			break
		}
		initList = append(initList, e)
		parts = append(parts, e)
	}
	rbraceTok := p.expectTag(token.RBrace)
	parts = append(parts, leaf(rbraceTok))
	semiTok := p.expectTag(token.Semi)
	parts = append(parts, leaf(semiTok))
	return ast.NewArrayDecl(parts, typeName, name, nameTok, ast.ArrayInitList, nil, initList, ""), true
}

// matchFuncDecl covers both the prototype and defined-with-body forms.
func (p *Parser) matchFuncDecl() (ast.Node, bool) {
	typeTok, typeName, ok := p.matchType()
	if !ok {
		return nil, false
	}
	var parts []ast.Node
	parts = append(parts, leaf(typeTok))

	nameTok, name, ok := p.acceptIdent()
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(nameTok))

	lpTok, ok := p.acceptTag(token.LParen)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(lpTok))

	var params []*ast.ParamDecl
	for {
		pd, ok := p.matchParamDecl()
		if !ok {
			break
		}
		params = append(params, pd)
		parts = append(parts, pd)
	}

	rpTok := p.expectTag(token.RParen)
	parts = append(parts, leaf(rpTok))

	if semiTok, ok := p.acceptTag(token.Semi); ok {
		parts = append(parts, leaf(semiTok))
		return ast.NewFuncDecl(parts, typeName, name, nameTok, params, nil), true
	}

	body, ok := p.matchBlockStmt()
	if !ok {
		p.fail("expected ';' or function body but got %s", p.peek())
	}
	parts = append(parts, body)
	return ast.NewFuncDecl(parts, typeName, name, nameTok, params, body), true
}

// matchParamDecl: type "*"? ident
func (p *Parser) matchParamDecl() (*ast.ParamDecl, bool) {
	typeTok, typeName, ok := p.matchType()
	if !ok {
		return nil, false
	}
	var parts []ast.Node
	parts = append(parts, leaf(typeTok))

	isPtr := false
	if starTok, ok := p.acceptTag(token.Star); ok {
		isPtr = true
		parts = append(parts, leaf(starTok))
	}

	nameTok, name, ok := p.acceptIdent()
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(nameTok))

	return ast.NewParamDecl(parts, typeName, isPtr, name, nameTok), true
}

func (p *Parser) matchBlockStmt() (*ast.BlockStmt, bool) {
	lbTok, ok := p.acceptTag(token.LBrace)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(lbTok)}
	var stmts []ast.Node
	for {
		s, ok := p.matchStmt()
		if !ok {
			break
		}
		stmts = append(stmts, s)
		parts = append(parts, s)
	}
	rbTok := p.expectTag(token.RBrace)
	parts = append(parts, leaf(rbTok))
	return ast.NewBlockStmt(parts, stmts), true
}

// matchStmt tries every statement alternative in the order spec.md §4.3
// lists them, plus break/continue (SUPPLEMENTED FEATURES), with the
// ident-led forms ordered longest-alternative-first.
func (p *Parser) matchStmt() (ast.Node, bool) {
	if n, ok := p.matchBlockStmt(); ok {
		return n, true
	}
	if n, ok := p.matchIfStmt(); ok {
		return n, true
	}
	if n, ok := p.matchWhileStmt(); ok {
		return n, true
	}
	if n, ok := p.matchAsmStmt(); ok {
		return n, true
	}
	if n, ok := p.matchVarDecl(); ok {
		return n, true
	}
	if n, ok := p.matchArrayDecl(); ok {
		return n, true
	}
	if n, ok := p.matchDerefAssignStmt(); ok {
		return n, true
	}
	if n, ok := p.matchIndexedAssignStmt(); ok {
		return n, true
	}
	if n, ok := p.matchAssignStmt(); ok {
		return n, true
	}
	if n, ok := p.matchReturnStmt(); ok {
		return n, true
	}
	if n, ok := p.matchBreakStmt(); ok {
		return n, true
	}
	if n, ok := p.matchContinueStmt(); ok {
		return n, true
	}
	if n, ok := p.matchExprStmt(); ok {
		return n, true
	}
	return nil, false
}

func (p *Parser) matchIfStmt() (ast.Node, bool) {
	ifTok, ok := p.acceptTag(token.If)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(ifTok)}
	parts = append(parts, leaf(p.expectTag(token.LParen)))
	cond := p.requireExpr()
	parts = append(parts, cond)
	parts = append(parts, leaf(p.expectTag(token.RParen)))

	then, ok := p.matchStmt()
	if !ok {
		p.fail("expected statement but got %s", p.peek())
	}
	parts = append(parts, then)

	var els ast.Node
	if elseTok, ok := p.acceptTag(token.Else); ok {
		parts = append(parts, leaf(elseTok))
		els, ok = p.matchStmt()
		if !ok {
			p.fail("expected statement after else but got %s", p.peek())
		}
		parts = append(parts, els)
	}

	return ast.NewIfStmt(parts, cond, then, els), true
}

func (p *Parser) matchWhileStmt() (ast.Node, bool) {
	whileTok, ok := p.acceptTag(token.While)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(whileTok)}
	parts = append(parts, leaf(p.expectTag(token.LParen)))
	cond := p.requireExpr()
	parts = append(parts, cond)
	parts = append(parts, leaf(p.expectTag(token.RParen)))

	body, ok := p.matchStmt()
	if !ok {
		p.fail("expected statement but got %s", p.peek())
	}
	parts = append(parts, body)

	return ast.NewWhileStmt(parts, cond, body), true
}

// matchAsmStmt: "asm" "(" str_lit asm_params ")" ";" — asm_params is zero
// or more exprs substituted into the raw string's %N placeholders (see
// SUPPLEMENTED FEATURES in SPEC_FULL.md).
func (p *Parser) matchAsmStmt() (ast.Node, bool) {
	asmTok, ok := p.acceptTag(token.Asm)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(asmTok)}
	parts = append(parts, leaf(p.expectTag(token.LParen)))

	strTok, raw, ok := p.acceptStrLit()
	if !ok {
		p.fail("expected string literal but got %s", p.peek())
	}
	parts = append(parts, leaf(strTok))

	var params []ast.Node
	for {
		e, ok := p.acceptExpr()
		if !ok {
			break
		}
		params = append(params, e)
		parts = append(parts, e)
	}

	parts = append(parts, leaf(p.expectTag(token.RParen)))
	parts = append(parts, leaf(p.expectTag(token.Semi)))

	return ast.NewAsmStmt(parts, raw, params), true
}

func (p *Parser) matchBreakStmt() (ast.Node, bool) {
	breakTok, ok := p.acceptTag(token.Break)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(breakTok)}
	parts = append(parts, leaf(p.expectTag(token.Semi)))
	return ast.NewBreakStmt(parts), true
}

func (p *Parser) matchContinueStmt() (ast.Node, bool) {
	continueTok, ok := p.acceptTag(token.Continue)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(continueTok)}
	parts = append(parts, leaf(p.expectTag(token.Semi)))
	return ast.NewContinueStmt(parts), true
}

// matchDerefAssignStmt: "*" ident "=" expr ";"
func (p *Parser) matchDerefAssignStmt() (ast.Node, bool) {
	starTok, ok := p.acceptTag(token.Star)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(starTok)}

	nameTok, name, ok := p.acceptIdent()
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(nameTok))

	eqTok, ok := p.acceptTag(token.Assign)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(eqTok))

	value := p.requireExpr()
	parts = append(parts, value)
	parts = append(parts, leaf(p.expectTag(token.Semi)))

	return ast.NewDerefAssignStmt(parts, name, nameTok, value), true
}

// matchIndexedAssignStmt: ident "[" expr "]" "=" expr ";"
func (p *Parser) matchIndexedAssignStmt() (ast.Node, bool) {
	nameTok, name, ok := p.acceptIdent()
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(nameTok)}

	lbrTok, ok := p.acceptTag(token.LBracket)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(lbrTok))

	index, ok := p.acceptExpr()
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, index)

	rbrTok, ok := p.acceptTag(token.RBracket)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(rbrTok))

	eqTok, ok := p.acceptTag(token.Assign)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(eqTok))

	value := p.requireExpr()
	parts = append(parts, value)
	parts = append(parts, leaf(p.expectTag(token.Semi)))

	return ast.NewIndexedAssignStmt(parts, name, nameTok, index, value), true
}

// matchAssignStmt: ident "=" expr ";"
func (p *Parser) matchAssignStmt() (ast.Node, bool) {
	nameTok, name, ok := p.acceptIdent()
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(nameTok)}

	eqTok, ok := p.acceptTag(token.Assign)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(eqTok))

	value := p.requireExpr()
	parts = append(parts, value)
	parts = append(parts, leaf(p.expectTag(token.Semi)))

	return ast.NewAssignStmt(parts, name, nameTok, value), true
}

func (p *Parser) matchReturnStmt() (ast.Node, bool) {
	retTok, ok := p.acceptTag(token.Return)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(retTok)}
	value := p.requireExpr()
	parts = append(parts, value)
	parts = append(parts, leaf(p.expectTag(token.Semi)))
	return ast.NewReturnStmt(parts, value), true
}

func (p *Parser) matchExprStmt() (ast.Node, bool) {
	e, ok := p.acceptExpr()
	if !ok {
		return nil, false
	}
	parts := []ast.Node{e}
	semiTok, ok := p.acceptTag(token.Semi)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(semiTok))
	return ast.NewExprStmt(parts, e), true
}

// matchExpr: term binop expr | "-" term | "!" term | term. Builds the
// naturally right-recursive tree; callers apply the associativity
// rewrite via acceptExpr once the whole expr is accepted.
func (p *Parser) matchExpr() (ast.Node, bool) {
	if negTok, ok := p.acceptTag(token.Minus); ok {
		term, ok := p.matchTerm()
		if !ok {
			p.PushBack(negTok)
			return nil, false
		}
		return ast.NewNegExpr([]ast.Node{leaf(negTok), term}, term), true
	}

	if notTok, ok := p.acceptTag(token.Not); ok {
		term, ok := p.matchTerm()
		if !ok {
			p.PushBack(notTok)
			return nil, false
		}
		return ast.NewNotExpr([]ast.Node{leaf(notTok), term}, term), true
	}

	term, ok := p.matchTerm()
	if !ok {
		return nil, false
	}

	if opTok, ok := p.acceptBinOp(); ok {
		opTag := p.at(opTok).Tag
		rest, ok := p.matchExpr()
		if !ok {
			// opTok was consumed after term, so it must go back onto the
			// stream first — pushing term's tokens back first would
			// leave opTok sitting ahead of them, inverting the order.
			p.PushBack(opTok)
			ast.Undo(term, p)
			return nil, false
		}
		return ast.NewBinOpExpr(term, opTag, opTok, rest), true
	}

	return ast.NewTermExpr(term), true
}

func (p *Parser) acceptBinOp() (int, bool) {
	h := p.fetch()
	if p.at(h).Tag.IsBinOp() {
		return h, true
	}
	p.PushBack(h)
	return -1, false
}

// matchTerm implements the ambiguity policy from spec.md §4.3: call and
// indexed forms are tried before the bare identifier, and a leading "*"
// is always dereference, never multiplication (multiplication only ever
// occurs in binop position, after a term has already been matched).
func (p *Parser) matchTerm() (ast.Node, bool) {
	if n, ok := p.matchCallTerm(); ok {
		return n, true
	}
	if n, ok := p.matchIndexedTerm(); ok {
		return n, true
	}
	if n, ok := p.matchIdentTerm(); ok {
		return n, true
	}
	if n, ok := p.matchIntLitTerm(); ok {
		return n, true
	}
	if n, ok := p.matchAddrOfTerm(); ok {
		return n, true
	}
	if n, ok := p.matchDerefTerm(); ok {
		return n, true
	}
	if n, ok := p.matchParenTerm(); ok {
		return n, true
	}
	return nil, false
}

func (p *Parser) matchCallTerm() (ast.Node, bool) {
	nameTok, name, ok := p.acceptIdent()
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(nameTok)}

	lpTok, ok := p.acceptTag(token.LParen)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(lpTok))

	var params []ast.Node
	for {
		e, ok := p.acceptExpr()
		if !ok {
			break
		}
		params = append(params, e)
		parts = append(parts, e)
	}

	rpTok, ok := p.acceptTag(token.RParen)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(rpTok))

	return ast.NewCallTerm(parts, name, params), true
}

func (p *Parser) matchIndexedTerm() (ast.Node, bool) {
	nameTok, name, ok := p.acceptIdent()
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(nameTok)}

	lbrTok, ok := p.acceptTag(token.LBracket)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(lbrTok))

	index, ok := p.acceptExpr()
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, index)

	rbrTok, ok := p.acceptTag(token.RBracket)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(rbrTok))

	return ast.NewIndexedTerm(parts, name, index), true
}

func (p *Parser) matchIdentTerm() (ast.Node, bool) {
	nameTok, name, ok := p.acceptIdent()
	if !ok {
		return nil, false
	}
	return ast.NewIdentTerm(nameTok, name), true
}

func (p *Parser) matchIntLitTerm() (ast.Node, bool) {
	h, value, ok := p.acceptIntLit()
	if !ok {
		return nil, false
	}
	return ast.NewIntLitTerm(h, value), true
}

func (p *Parser) matchAddrOfTerm() (ast.Node, bool) {
	ampTok, ok := p.acceptTag(token.Amp)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(ampTok)}

	nameTok, name, ok := p.acceptIdent()
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(nameTok))

	return ast.NewAddrOfTerm(parts, name), true
}

func (p *Parser) matchDerefTerm() (ast.Node, bool) {
	starTok, ok := p.acceptTag(token.Star)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(starTok)}

	nameTok, name, ok := p.acceptIdent()
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(nameTok))

	return ast.NewDerefTerm(parts, name), true
}

func (p *Parser) matchParenTerm() (ast.Node, bool) {
	lpTok, ok := p.acceptTag(token.LParen)
	if !ok {
		return nil, false
	}
	parts := []ast.Node{leaf(lpTok)}

	inner, ok := p.acceptExpr()
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, inner)

	rpTok, ok := p.acceptTag(token.RParen)
	if !ok {
		p.undoAll(parts)
		return nil, false
	}
	parts = append(parts, leaf(rpTok))

	return ast.NewParenTerm(parts, inner), true
}
