/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

package lexer

import (
	"strings"
	"testing"

	"github.com/gmofishsauce/tsc/internal/config"
	"github.com/gmofishsauce/tsc/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTokens(l *Lexer) []token.Token {
	var out []token.Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Tag == token.EOF {
			return out
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	l := New(strings.NewReader("if else while return asm break continue foo_bar"), config.Default())
	toks := allTokens(l)

	require.Len(t, toks, 9) // 8 words + EOF
	assert.Equal(t, token.If, toks[0].Tag)
	assert.Equal(t, token.Else, toks[1].Tag)
	assert.Equal(t, token.While, toks[2].Tag)
	assert.Equal(t, token.Return, toks[3].Tag)
	assert.Equal(t, token.Asm, toks[4].Tag)
	assert.Equal(t, token.Break, toks[5].Tag)
	assert.Equal(t, token.Continue, toks[6].Tag)
	assert.Equal(t, token.Ident, toks[7].Tag)
	assert.Equal(t, "foo_bar", toks[7].Lexeme)
}

func TestCompoundOperatorsDisambiguate(t *testing.T) {
	l := New(strings.NewReader("= == ! != < <= > >="), config.Default())
	toks := allTokens(l)

	want := []token.Tag{
		token.Assign, token.Eq, token.Not, token.Neq,
		token.Lt, token.Le, token.Gt, token.Ge, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Tag, "token %d", i)
	}
}

func TestSinglePunctuation(t *testing.T) {
	l := New(strings.NewReader("; ( ) { } [ ] + - * & |"), config.Default())
	toks := allTokens(l)

	want := []token.Tag{
		token.Semi, token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Plus, token.Minus,
		token.Star, token.Amp, token.Pipe, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Tag, "token %d", i)
	}
}

func TestDecimalAndHexLiterals(t *testing.T) {
	l := New(strings.NewReader("42 0x2a 0"), config.Default())
	toks := allTokens(l)

	require.Len(t, toks, 4)
	assert.Equal(t, 42, toks[0].IntVal)
	assert.Equal(t, 42, toks[1].IntVal)
	assert.Equal(t, 0, toks[2].IntVal)
}

func TestCharLiteralsWithEscapes(t *testing.T) {
	l := New(strings.NewReader(`'a' '\n' '\0' '\\'`), config.Default())
	toks := allTokens(l)

	require.Len(t, toks, 5)
	assert.Equal(t, int('a'), toks[0].IntVal)
	assert.Equal(t, int('\n'), toks[1].IntVal)
	assert.Equal(t, 0, toks[2].IntVal)
	assert.Equal(t, int('\\'), toks[3].IntVal)
}

func TestStringLiteralWithEscapes(t *testing.T) {
	l := New(strings.NewReader(`"ab\ncd"`), config.Default())
	tok := l.Next()
	require.Equal(t, token.Str, tok.Tag)
	assert.Equal(t, "ab\ncd", tok.StrVal)
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	src := "x // line comment\n/* block\ncomment */ y"
	l := New(strings.NewReader(src), config.Default())
	toks := allTokens(l)

	require.Len(t, toks, 3)
	assert.Equal(t, "x", toks[0].Lexeme)
	assert.Equal(t, "y", toks[1].Lexeme)
}

func TestUnknownTokenOnBadByte(t *testing.T) {
	l := New(strings.NewReader("@"), config.Default())
	tok := l.Next()
	assert.Equal(t, token.Unknown, tok.Tag)
}

func TestEOFAtEndOfInput(t *testing.T) {
	l := New(strings.NewReader(""), config.Default())
	tok := l.Next()
	assert.Equal(t, token.EOF, tok.Tag)
}

// TestIdentifierStraddlingBufferBoundary forces a tiny buffer so a
// long identifier must be re-matched across a switchBuffer call,
// exercising the split-token path in scanWhile.
func TestIdentifierStraddlingBufferBoundary(t *testing.T) {
	cfg := config.Default()
	cfg.BufferSize = 8 // 7 usable bytes per fill; well under the identifier length
	cfg.MaxTokenSize = 64

	l := New(strings.NewReader("abcdefghijklmnop qrs"), cfg)
	tok := l.Next()
	require.Equal(t, token.Ident, tok.Tag)
	assert.Equal(t, "abcdefghijklmnop", tok.Lexeme)

	tok2 := l.Next()
	require.Equal(t, token.Ident, tok2.Tag)
	assert.Equal(t, "qrs", tok2.Lexeme)
}

// TestTokenTruncatedAtMaxTokenSize confirms an identifier longer than
// MaxTokenSize is cut off rather than looping forever.
func TestTokenTruncatedAtMaxTokenSize(t *testing.T) {
	cfg := config.Default()
	cfg.MaxTokenSize = 4
	l := New(strings.NewReader("abcdefgh"), cfg)
	tok := l.Next()
	assert.Equal(t, "abcd", tok.Lexeme)
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New(strings.NewReader("a\nbb"), config.Default())
	first := l.Next()
	second := l.Next()

	assert.Equal(t, 1, first.Line)
	assert.Equal(t, 1, first.Col)
	assert.Equal(t, 2, second.Line)
	assert.Equal(t, 1, second.Col)
}
