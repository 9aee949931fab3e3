/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

// Package ast defines the compiler's abstract syntax tree as a tagged
// union (spec.md §9, "Cyclic AST visitation"): one Node interface
// carrying a Kind tag, with Undo, Evaluate, and pretty-printing
// expressed as free functions (Evaluate and GetString use Go type
// switches over the concrete node types) rather than as virtual
// methods per node type. Translation (the fourth operation named in
// spec.md §9) lives in package translate, which imports this package, to
// avoid ast depending on the symbol table and register allocator.
//
// Every node owns the token handles it directly consumed, in the exact
// order it consumed them, interleaved with the child nodes it built along
// the way (spec.md §3, "Every AST node owns a sequence of tokens that
// were consumed to build it"). A handle is an index into the parser's
// token arena; Leaf wraps exactly one such handle. This lets Undo and
// GetString walk the tree generically through Parts() without a type
// switch of their own — only Evaluate and Translate need to know the
// concrete shape of a node.
package ast

import "github.com/gmofishsauce/tsc/internal/token"

// Kind discriminates the concrete node variant. Evaluate, GetString and
// package translate's AST walk switch on the concrete Go type instead
// and do not read Kind.
type Kind int

const (
	KindLeaf Kind = iota

	KindProgram
	KindVarDecl
	KindArrayDecl
	KindFuncDecl
	KindParamDecl

	KindBlockStmt
	KindIfStmt
	KindWhileStmt
	KindAsmStmt
	KindBreakStmt
	KindContinueStmt
	KindAssignStmt
	KindIndexedAssignStmt
	KindDerefAssignStmt
	KindReturnStmt
	KindExprStmt

	KindNegExpr
	KindNotExpr
	KindTermExpr
	KindBinOpExpr

	KindIdentTerm
	KindIntLitTerm
	KindCallTerm
	KindParenTerm
	KindAddrOfTerm
	KindDerefTerm
	KindIndexedTerm
)

// Node is the common interface every AST variant implements.
type Node interface {
	Kind() Kind

	// Handle returns the single token handle this node owns directly, or
	// -1 for a pure composite with no token of its own (e.g. Program).
	Handle() int

	// Parts returns this node's direct components — a mix of Leaf token
	// wrappers and child Nodes — in the exact order they were consumed
	// during parsing. Used generically by Undo and GetString.
	Parts() []Node

	// ClearParts destructively empties Parts() and clears Handle() to -1,
	// per spec.md §4.3 ("Undo is destructive to the node").
	ClearParts()
}

// base is embedded by every composite node and implements the Node
// methods mechanically.
type base struct {
	kind   Kind
	handle int
	parts  []Node
}

func newBase(k Kind, handle int, parts ...Node) base {
	return base{kind: k, handle: handle, parts: parts}
}

func (b *base) Kind() Kind       { return b.kind }
func (b *base) Handle() int      { return b.handle }
func (b *base) Parts() []Node    { return b.parts }
func (b *base) ClearParts()      { b.parts = nil; b.handle = -1 }
func (b *base) appendPart(n Node) { b.parts = append(b.parts, n) }

// Leaf wraps exactly one consumed token handle and owns no children.
type Leaf struct {
	base
}

func NewLeaf(handle int) *Leaf {
	return &Leaf{newBase(KindLeaf, handle)}
}

// ---- Declarations ----

type Program struct {
	base
	Decls []Node
}

func NewProgram(decls []Node) *Program {
	p := &Program{base: newBase(KindProgram, -1)}
	for _, d := range decls {
		p.appendPart(d)
	}
	p.Decls = decls
	return p
}

// VarDecl covers both "type ident ;" and "type ident = expr ;" (spec.md
// §4.3 var_decl), and doubles as the statement-position variable
// declaration (grammar's var_decl as stmt).
type VarDecl struct {
	base
	TypeName string
	TypeTok  int
	IsPtr    bool
	Name     string
	NameTok  int
	Init     Node // nil if absent; parser injects no implicit node, translate supplies 0
}

func NewVarDecl(parts []Node, typeName string, typeTok int, isPtr bool, name string, nameTok int, init Node) *VarDecl {
	v := &VarDecl{base: newBase(KindVarDecl, -1), TypeName: typeName, TypeTok: typeTok, IsPtr: isPtr, Name: name, NameTok: nameTok, Init: init}
	for _, p := range parts {
		v.appendPart(p)
	}
	return v
}

// ArrayKind distinguishes the three array_decl alternatives in spec.md §4.3.
type ArrayKind int

const (
	ArraySized ArrayKind = iota
	ArrayInitList
	ArrayString
)

type ArrayDecl struct {
	base
	TypeName string
	Name     string
	NameTok  int
	AKind    ArrayKind
	Size     Node   // ArraySized: the bound expr
	InitList []Node // ArrayInitList: element exprs
	StrVal   string // ArrayString: the raw string contents
}

func NewArrayDecl(parts []Node, typeName, name string, nameTok int, kind ArrayKind, size Node, initList []Node, strVal string) *ArrayDecl {
	a := &ArrayDecl{base: newBase(KindArrayDecl, -1), TypeName: typeName, Name: name, NameTok: nameTok, AKind: kind, Size: size, InitList: initList, StrVal: strVal}
	for _, p := range parts {
		a.appendPart(p)
	}
	return a
}

type ParamDecl struct {
	base
	TypeName string
	IsPtr    bool
	Name     string
	NameTok  int
}

func NewParamDecl(parts []Node, typeName string, isPtr bool, name string, nameTok int) *ParamDecl {
	p := &ParamDecl{base: newBase(KindParamDecl, -1), TypeName: typeName, IsPtr: isPtr, Name: name, NameTok: nameTok}
	for _, x := range parts {
		p.appendPart(x)
	}
	return p
}

// FuncDecl covers both the prototype ("type ident ( params ) ;") and the
// defined-with-body alternatives; Body is nil for a prototype.
type FuncDecl struct {
	base
	TypeName string
	Name     string
	NameTok  int
	Params   []*ParamDecl
	Body     *BlockStmt
}

func NewFuncDecl(parts []Node, typeName, name string, nameTok int, params []*ParamDecl, body *BlockStmt) *FuncDecl {
	f := &FuncDecl{base: newBase(KindFuncDecl, -1), TypeName: typeName, Name: name, NameTok: nameTok, Params: params, Body: body}
	for _, p := range parts {
		f.appendPart(p)
	}
	return f
}

// ---- Statements ----

type BlockStmt struct {
	base
	Stmts []Node
}

func NewBlockStmt(parts []Node, stmts []Node) *BlockStmt {
	b := &BlockStmt{base: newBase(KindBlockStmt, -1), Stmts: stmts}
	for _, p := range parts {
		b.appendPart(p)
	}
	return b
}

type IfStmt struct {
	base
	Cond Node
	Then Node
	Else Node // nil if no else clause
}

func NewIfStmt(parts []Node, cond, then, els Node) *IfStmt {
	i := &IfStmt{base: newBase(KindIfStmt, -1), Cond: cond, Then: then, Else: els}
	for _, p := range parts {
		i.appendPart(p)
	}
	return i
}

type WhileStmt struct {
	base
	Cond Node
	Body Node
}

func NewWhileStmt(parts []Node, cond, body Node) *WhileStmt {
	w := &WhileStmt{base: newBase(KindWhileStmt, -1), Cond: cond, Body: body}
	for _, p := range parts {
		w.appendPart(p)
	}
	return w
}

// AsmStmt is the `asm ( str_lit asm_params ) ;` escape (spec.md §4.3); the
// asm_params extension described in SPEC_FULL.md's SUPPLEMENTED FEATURES.
type AsmStmt struct {
	base
	Raw    string
	Params []Node // expr each
}

func NewAsmStmt(parts []Node, raw string, params []Node) *AsmStmt {
	a := &AsmStmt{base: newBase(KindAsmStmt, -1), Raw: raw, Params: params}
	for _, p := range parts {
		a.appendPart(p)
	}
	return a
}

type BreakStmt struct{ base }

func NewBreakStmt(parts []Node) *BreakStmt {
	b := &BreakStmt{newBase(KindBreakStmt, -1)}
	for _, p := range parts {
		b.appendPart(p)
	}
	return b
}

type ContinueStmt struct{ base }

func NewContinueStmt(parts []Node) *ContinueStmt {
	c := &ContinueStmt{newBase(KindContinueStmt, -1)}
	for _, p := range parts {
		c.appendPart(p)
	}
	return c
}

type AssignStmt struct {
	base
	Name    string
	NameTok int
	Value   Node
}

func NewAssignStmt(parts []Node, name string, nameTok int, value Node) *AssignStmt {
	a := &AssignStmt{base: newBase(KindAssignStmt, -1), Name: name, NameTok: nameTok, Value: value}
	for _, p := range parts {
		a.appendPart(p)
	}
	return a
}

// IndexedAssignStmt is `ident [ expr ] = expr ;`.
type IndexedAssignStmt struct {
	base
	Name    string
	NameTok int
	Index   Node
	Value   Node
}

func NewIndexedAssignStmt(parts []Node, name string, nameTok int, index, value Node) *IndexedAssignStmt {
	a := &IndexedAssignStmt{base: newBase(KindIndexedAssignStmt, -1), Name: name, NameTok: nameTok, Index: index, Value: value}
	for _, p := range parts {
		a.appendPart(p)
	}
	return a
}

// DerefAssignStmt is `* ident = expr ;`.
type DerefAssignStmt struct {
	base
	Name    string
	NameTok int
	Value   Node
}

func NewDerefAssignStmt(parts []Node, name string, nameTok int, value Node) *DerefAssignStmt {
	a := &DerefAssignStmt{base: newBase(KindDerefAssignStmt, -1), Name: name, NameTok: nameTok, Value: value}
	for _, p := range parts {
		a.appendPart(p)
	}
	return a
}

type ReturnStmt struct {
	base
	Value Node
}

func NewReturnStmt(parts []Node, value Node) *ReturnStmt {
	r := &ReturnStmt{base: newBase(KindReturnStmt, -1), Value: value}
	for _, p := range parts {
		r.appendPart(p)
	}
	return r
}

type ExprStmt struct {
	base
	Expr Node
}

func NewExprStmt(parts []Node, expr Node) *ExprStmt {
	e := &ExprStmt{base: newBase(KindExprStmt, -1), Expr: expr}
	for _, p := range parts {
		e.appendPart(p)
	}
	return e
}

// ---- Expressions ----

type NegExpr struct {
	base
	Operand Node
}

func NewNegExpr(parts []Node, operand Node) *NegExpr {
	n := &NegExpr{base: newBase(KindNegExpr, -1), Operand: operand}
	for _, p := range parts {
		n.appendPart(p)
	}
	return n
}

type NotExpr struct {
	base
	Operand Node
}

func NewNotExpr(parts []Node, operand Node) *NotExpr {
	n := &NotExpr{base: newBase(KindNotExpr, -1), Operand: operand}
	for _, p := range parts {
		n.appendPart(p)
	}
	return n
}

// TermExpr is the trivial `expr ::= term` alternative: a pass-through
// wrapper so every expr production returns a uniform Node.
type TermExpr struct {
	base
	Term Node
}

func NewTermExpr(term Node) *TermExpr {
	t := &TermExpr{base: newBase(KindTermExpr, -1)}
	t.appendPart(term)
	t.Term = term
	return t
}

// BinOpExpr is `term binop expr`. Rest is the left sub-expression (spec.md
// §3 calls it "rest"), Term the right operand, Op the operator tag.
// LeftAssoc starts false (the parser naturally builds right-associated
// chains) and is set true by Rewrite (ast/binop.go).
type BinOpExpr struct {
	base
	Rest      Node
	OpTag     token.Tag
	OpTok     int
	Term      Node
	LeftAssoc bool
}

func NewBinOpExpr(rest Node, opTag token.Tag, opTok int, term Node) *BinOpExpr {
	b := &BinOpExpr{Rest: rest, OpTag: opTag, OpTok: opTok, Term: term}
	b.base = newBase(KindBinOpExpr, -1)
	b.appendPart(rest)
	b.appendPart(NewLeaf(opTok))
	b.appendPart(term)
	return b
}

// duplicate returns a shallow copy of b's operator identity (tag + token)
// with fresh Rest/Term left unset, used by the rewrite in binop.go. It
// does not copy Parts — the caller rebuilds them once Rest/Term are final.
func (b *BinOpExpr) duplicate() *BinOpExpr {
	return &BinOpExpr{
		base:  newBase(KindBinOpExpr, -1),
		OpTag: b.OpTag,
		OpTok: b.OpTok,
	}
}

func (b *BinOpExpr) rebuildParts() {
	b.parts = nil
	b.appendPart(b.Rest)
	b.appendPart(NewLeaf(b.OpTok))
	b.appendPart(b.Term)
}

// ---- Terms ----

type IdentTerm struct {
	base
	Name string
}

func NewIdentTerm(handle int, name string) *IdentTerm {
	return &IdentTerm{base: newBase(KindIdentTerm, handle), Name: name}
}

type IntLitTerm struct {
	base
	Value int
}

func NewIntLitTerm(handle int, value int) *IntLitTerm {
	return &IntLitTerm{base: newBase(KindIntLitTerm, handle), Value: value}
}

type CallTerm struct {
	base
	Name   string
	Params []Node
}

func NewCallTerm(parts []Node, name string, params []Node) *CallTerm {
	c := &CallTerm{base: newBase(KindCallTerm, -1), Name: name, Params: params}
	for _, p := range parts {
		c.appendPart(p)
	}
	return c
}

type ParenTerm struct {
	base
	Inner Node
}

func NewParenTerm(parts []Node, inner Node) *ParenTerm {
	p := &ParenTerm{base: newBase(KindParenTerm, -1), Inner: inner}
	for _, x := range parts {
		p.appendPart(x)
	}
	return p
}

type AddrOfTerm struct {
	base
	Name string
}

func NewAddrOfTerm(parts []Node, name string) *AddrOfTerm {
	a := &AddrOfTerm{base: newBase(KindAddrOfTerm, -1), Name: name}
	for _, p := range parts {
		a.appendPart(p)
	}
	return a
}

type DerefTerm struct {
	base
	Name string
}

func NewDerefTerm(parts []Node, name string) *DerefTerm {
	d := &DerefTerm{base: newBase(KindDerefTerm, -1), Name: name}
	for _, p := range parts {
		d.appendPart(p)
	}
	return d
}

type IndexedTerm struct {
	base
	Name  string
	Index Node
}

func NewIndexedTerm(parts []Node, name string, index Node) *IndexedTerm {
	i := &IndexedTerm{base: newBase(KindIndexedTerm, -1), Name: name, Index: index}
	for _, p := range parts {
		i.appendPart(p)
	}
	return i
}
