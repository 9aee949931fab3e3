/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

// Package lexer implements the buffered, double-buffer lexer described in
// spec.md §4.1. Two fixed-size buffers alternate: the lexer scans the
// "current" buffer until it reaches the sentinel zero byte reserved as
// its last byte, at which point the *other* buffer is refilled and
// becomes current. A token whose match would straddle that boundary is
// re-matched in a scratch buffer sized to the configured maximum token
// length, grounded on the original implementation's handle_split.
package lexer

import (
	"io"

	"github.com/gmofishsauce/tsc/internal/config"
	"github.com/gmofishsauce/tsc/internal/token"
)

// Lexer streams tokens from an io.Reader using two alternating buffers.
type Lexer struct {
	r    io.Reader
	cfg  config.Config
	bufs [2][]byte
	cur  int // index of the active buffer, 0 or 1
	pos  int // scan offset within bufs[cur]
	eof  bool

	line int
	col  int
}

// New constructs a Lexer reading from r with the buffer and token-size
// tunables in cfg.
func New(r io.Reader, cfg config.Config) *Lexer {
	l := &Lexer{
		r:    r,
		cfg:  cfg,
		line: 1,
		col:  1,
	}
	l.bufs[0] = make([]byte, cfg.BufferSize)
	l.bufs[1] = make([]byte, cfg.BufferSize)
	l.fill(0)
	l.cur = 0
	l.pos = 0
	return l
}

// fill reads up to BufferSize-1 bytes into bufs[idx] and terminates it
// with the sentinel zero byte (spec.md §4.1, "the final byte is reserved
// as a sentinel zero").
func (l *Lexer) fill(idx int) {
	buf := l.bufs[idx]
	for i := range buf {
		buf[i] = 0
	}
	readSize := len(buf) - 1
	n, _ := io.ReadFull(l.r, buf[:readSize])
	if n < readSize {
		l.eof = true
	}
	buf[readSize] = 0
}

func (l *Lexer) active() []byte {
	return l.bufs[l.cur]
}

// switchBuffer refills the inactive buffer and makes it current.
func (l *Lexer) switchBuffer() {
	other := 1 - l.cur
	l.fill(other)
	l.cur = other
	l.pos = 0
}

// byteAt returns the byte at pos in the active buffer, switching buffers
// first if pos has reached the sentinel and more input remains.
func (l *Lexer) peekByte() (byte, bool) {
	buf := l.active()
	if l.pos >= len(buf)-1 || buf[l.pos] == 0 {
		if l.pos < len(buf) && buf[l.pos] == 0 {
			if l.eof {
				return 0, false
			}
			l.switchBuffer()
			buf = l.active()
		}
	}
	if l.pos >= len(buf) {
		return 0, false
	}
	b := buf[l.pos]
	if b == 0 {
		if l.eof {
			return 0, false
		}
		l.switchBuffer()
		return l.peekByte()
	}
	return b, true
}

func (l *Lexer) advance() {
	l.pos++
	l.col++
}

// Next scans and returns the next token, skipping whitespace and both
// comment forms (spec.md §4.1). Returns an EOF-tagged token at end of
// input and an Unknown-tagged token on any lexical failure — the lexer
// never panics (spec.md §4.1, "Failure").
func (l *Lexer) Next() token.Token {
	for {
		b, ok := l.peekByte()
		if !ok {
			return token.Token{Tag: token.EOF, Line: l.line, Col: l.col}
		}

		switch {
		case b == ' ' || b == '\t':
			if b == '\t' {
				l.col += 3 // a tab advances 4 columns total (spec.md §4.1)
			}
			l.advance()
			continue
		case b == '\n':
			l.advance()
			l.line++
			l.col = 1
			continue
		case b == '/' && l.peekAt(1) == '/':
			l.skipLineComment()
			continue
		case b == '/' && l.peekAt(1) == '*':
			l.skipBlockComment()
			continue
		}

		startLine, startCol := l.line, l.col

		switch {
		case isIdentStart(b):
			return l.scanIdent(startLine, startCol)
		case b == '\'':
			return l.scanCharLiteral(startLine, startCol)
		case b == '0' && l.peekAt(1) == 'x':
			return l.scanHexLiteral(startLine, startCol)
		case isDigit(b):
			return l.scanDecimalLiteral(startLine, startCol)
		case b == '"':
			return l.scanStringLiteral(startLine, startCol)
		}

		if tag, ok := singlePunct(b); ok {
			l.advance()
			return token.Token{Tag: tag, Line: startLine, Col: startCol}
		}

		if tag, ok := l.scanCompoundOp(b); ok {
			return token.Token{Tag: tag, Line: startLine, Col: startCol}
		}

		l.advance()
		return token.Token{Tag: token.Unknown, Line: startLine, Col: startCol}
	}
}

// peekAt looks ahead n bytes from pos without crossing a buffer switch;
// used only for the two-character lookaheads (//, /*, 0x) that never
// need to survive a boundary split themselves, since the longer literal
// scanners below handle the real splitting.
func (l *Lexer) peekAt(n int) byte {
	buf := l.active()
	idx := l.pos + n
	if idx >= len(buf) {
		return 0
	}
	return buf[idx]
}

func (l *Lexer) skipLineComment() {
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		l.advance()
		if b == '\n' {
			l.line++
			l.col = 1
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	l.advance() // '/'
	l.advance() // '*'
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		if b == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			return
		}
		if b == '\n' {
			l.line++
			l.col = 1
		}
		l.advance()
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanIdent matches [A-Za-z_][A-Za-z0-9_]*, handling a split across the
// buffer boundary by re-matching in a scratch buffer sized to
// MaxTokenSize (spec.md §4.1, "Split-token handling").
func (l *Lexer) scanIdent(line, col int) token.Token {
	lexeme := l.scanWhile(isIdentCont, true)
	if tag, ok := token.Keywords[lexeme]; ok {
		return token.Token{Tag: tag, Line: line, Col: col}
	}
	return token.Token{Tag: token.Ident, Lexeme: lexeme, Line: line, Col: col}
}

func (l *Lexer) scanDecimalLiteral(line, col int) token.Token {
	lexeme := l.scanWhile(isDigit, true)
	val := 0
	for _, c := range []byte(lexeme) {
		val = val*10 + int(c-'0')
	}
	return token.Token{Tag: token.Int, IntVal: val, Line: line, Col: col}
}

func (l *Lexer) scanHexLiteral(line, col int) token.Token {
	l.advance() // '0'
	l.advance() // 'x'
	lexeme := l.scanWhile(isHexDigit, true)
	val := 0
	for _, c := range []byte(lexeme) {
		val = val*16 + hexDigitValue(c)
	}
	return token.Token{Tag: token.Int, IntVal: val, Line: line, Col: col}
}

func hexDigitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// scanWhile consumes bytes matched by pred starting at the current
// position and returns the matched lexeme, transparently restarting the
// scan in a scratch buffer if the match runs into the buffer boundary
// (the split-token case in spec.md §4.1).
func (l *Lexer) scanWhile(pred func(byte) bool, firstAlwaysMatches bool) string {
	var scratch []byte
	for {
		buf := l.active()
		for l.pos < len(buf)-1 {
			b := buf[l.pos]
			if b == 0 || !pred(b) {
				return string(scratch)
			}
			scratch = append(scratch, b)
			l.advance()
			if len(scratch) >= l.cfg.MaxTokenSize {
				return string(scratch)
			}
		}
		// Reached the sentinel mid-token: this is the split case.
		if l.eof {
			return string(scratch)
		}
		l.switchBuffer()
	}
}

func (l *Lexer) scanCharLiteral(line, col int) token.Token {
	l.advance() // opening '
	b, ok := l.peekByte()
	if !ok {
		return token.Token{Tag: token.Unknown, Line: line, Col: col}
	}
	var val int
	if b == '\\' {
		l.advance()
		esc, ok := l.peekByte()
		if !ok {
			return token.Token{Tag: token.Unknown, Line: line, Col: col}
		}
		l.advance()
		val = int(decodeEscape(esc))
	} else {
		l.advance()
		val = int(b)
	}
	if closing, ok := l.peekByte(); !ok || closing != '\'' {
		return token.Token{Tag: token.Unknown, Line: line, Col: col}
	}
	l.advance() // closing '
	return token.Token{Tag: token.Int, IntVal: val, Line: line, Col: col}
}

// decodeEscape maps the escape set in spec.md §4.1; an unrecognised
// escape is left as the single following character.
func decodeEscape(c byte) byte {
	switch c {
	case '0':
		return 0
	case 'a':
		return 7
	case 'b':
		return 8
	case 'e':
		return 27
	case 'f':
		return 12
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return 11
	case '\\':
		return '\\'
	case '\'':
		return '\''
	case '"':
		return '"'
	default:
		return c
	}
}

func (l *Lexer) scanStringLiteral(line, col int) token.Token {
	l.advance() // opening quote
	var out []byte
	for {
		b, ok := l.peekByte()
		if !ok {
			break
		}
		if b == '"' {
			l.advance()
			break
		}
		if b == '\\' {
			l.advance()
			esc, ok := l.peekByte()
			if !ok {
				break
			}
			l.advance()
			out = append(out, decodeEscape(esc))
			continue
		}
		out = append(out, b)
		l.advance()
	}
	return token.Token{Tag: token.Str, StrVal: string(out), Line: line, Col: col}
}

func singlePunct(b byte) (token.Tag, bool) {
	switch b {
	case ';':
		return token.Semi, true
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case '{':
		return token.LBrace, true
	case '}':
		return token.RBrace, true
	case '[':
		return token.LBracket, true
	case ']':
		return token.RBracket, true
	case '+':
		return token.Plus, true
	case '-':
		return token.Minus, true
	case '*':
		return token.Star, true
	case '&':
		return token.Amp, true
	case '|':
		return token.Pipe, true
	default:
		return token.Invalid, false
	}
}

// scanCompoundOp matches the four operators that may extend with a
// trailing '=' (spec.md §4.1, item 10).
func (l *Lexer) scanCompoundOp(b byte) (token.Tag, bool) {
	var bare, withEq token.Tag
	switch b {
	case '=':
		bare, withEq = token.Assign, token.Eq
	case '!':
		bare, withEq = token.Not, token.Neq
	case '<':
		bare, withEq = token.Lt, token.Le
	case '>':
		bare, withEq = token.Gt, token.Ge
	default:
		return token.Invalid, false
	}
	l.advance()
	if nxt, ok := l.peekByte(); ok && nxt == '=' {
		l.advance()
		return withEq, true
	}
	return bare, true
}
