// Package lexer converts test-definition source text into a stream of
// positioned tokens.
package lexer

import (
	"unicode"

	"github.com/mweber/serialtest/internal/token"
)

// Lexer scans source text once, tracking 1-based line and column per
// consumed character.
type Lexer struct {
	input  []rune
	pos    int
	line   int
	column int
}

// New creates a Lexer over the given source text.
func New(input string) *Lexer {
	return &Lexer{input: []rune(input), line: 1, column: 1}
}

// Tokens consumes the whole input and returns the token sequence. Whitespace
// other than newlines is never emitted. Unclassifiable input becomes Illegal
// tokens carrying the offending text; lexing continues past them. The
// sequence always ends with a Newline token when any token was produced, so
// the analyzer can flush the last line.
func (l *Lexer) Tokens() []token.Token {
	var tokens []token.Token

	for l.pos < len(l.input) {
		c := l.input[l.pos]
		line, column := l.line, l.column

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
		case c == '\n':
			tokens = append(tokens, token.Token{Kind: token.Newline, Value: "\n", Line: line, Column: column})
			l.advance()
		case c == '[':
			tokens = append(tokens, token.Token{Kind: token.LeftGroupParenthesis, Value: "[", Line: line, Column: column})
			l.advance()
		case c == ']':
			tokens = append(tokens, token.Token{Kind: token.RightGroupParenthesis, Value: "]", Line: line, Column: column})
			l.advance()
		case c == '(':
			tokens = append(tokens, token.Token{Kind: token.LeftTestParenthesis, Value: "(", Line: line, Column: column})
			l.advance()
		case c == ')':
			tokens = append(tokens, token.Token{Kind: token.RightTestParenthesis, Value: ")", Line: line, Column: column})
			l.advance()
		case c == ',':
			tokens = append(tokens, token.Token{Kind: token.ContentSeparator, Value: ",", Line: line, Column: column})
			l.advance()
		case c == '=':
			tokens = append(tokens, token.Token{Kind: token.OptionSeparator, Value: "=", Line: line, Column: column})
			l.advance()
		case c == '-' && l.peek() == '>':
			tokens = append(tokens, token.Token{Kind: token.DirectionSeparator, Value: "->", Line: line, Column: column})
			l.advance()
			l.advance()
		case c == '"':
			tokens = append(tokens, l.content())
		case isFormatSpecifier(c) && l.peek() == '"':
			tokens = append(tokens, token.Token{Kind: token.FormatSpecifier, Value: string(c), Line: line, Column: column})
			l.advance()
		case isIdentifierRune(c):
			tokens = append(tokens, l.identifier())
		default:
			tokens = append(tokens, l.illegal())
		}
	}

	// Guarantee a trailing line boundary so the analyzer flushes the last line.
	if n := len(tokens); n > 0 && tokens[n-1].Kind != token.Newline {
		tokens = append(tokens, token.Token{Kind: token.Newline, Value: "\n", Line: l.line, Column: l.column})
	}

	return tokens
}

// content scans a quoted literal. The token's value is the text between the
// quotes; its position is the opening quote. Content may span newlines. An
// unterminated quote yields an Illegal token at the opening position carrying
// the unterminated remainder.
func (l *Lexer) content() token.Token {
	line, column := l.line, l.column
	l.advance() // opening quote

	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.advance()
	}

	if l.pos >= len(l.input) {
		return token.Token{Kind: token.Illegal, Value: `"` + string(l.input[start:]), Line: line, Column: column}
	}

	value := string(l.input[start:l.pos])
	l.advance() // closing quote

	return token.Token{Kind: token.Content, Value: value, Line: line, Column: column}
}

// identifier scans a run of identifier characters. A '-' directly followed
// by '>' ends the run: it belongs to a direction separator.
func (l *Lexer) identifier() token.Token {
	line, column := l.line, l.column
	start := l.pos

	for l.pos < len(l.input) && isIdentifierRune(l.input[l.pos]) {
		if l.input[l.pos] == '-' && l.peek() == '>' {
			break
		}
		l.advance()
	}

	return token.Token{Kind: token.Identifier, Value: string(l.input[start:l.pos]), Line: line, Column: column}
}

// illegal consumes the maximal run of unclassifiable characters into a
// single Illegal token.
func (l *Lexer) illegal() token.Token {
	line, column := l.line, l.column
	start := l.pos

	for l.pos < len(l.input) && isIllegalRune(l.input[l.pos]) {
		l.advance()
	}

	return token.Token{Kind: token.Illegal, Value: string(l.input[start:l.pos]), Line: line, Column: column}
}

func (l *Lexer) peek() rune {
	if l.pos+1 < len(l.input) {
		return l.input[l.pos+1]
	}
	return 0
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func isIllegalRune(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '[', ']', '(', ')', ',', '=', '"':
		return false
	}
	return !isIdentifierRune(r)
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.'
}

func isFormatSpecifier(r rune) bool {
	return r == 'b' || r == 'o' || r == 'd' || r == 'h'
}
