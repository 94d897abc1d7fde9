// Package token defines the lexical units of the test-definition language.
package token

import "fmt"

// Kind classifies a token. The set is closed: the lexer emits nothing else.
type Kind int

const (
	// Illegal marks input the lexer could not classify. Analysis aborts on
	// the first Illegal token; it never reaches grammar checking.
	Illegal Kind = iota
	Identifier
	LeftGroupParenthesis  // [
	RightGroupParenthesis // ]
	LeftTestParenthesis   // (
	RightTestParenthesis  // )
	ContentSeparator      // ,
	OptionSeparator       // =
	DirectionSeparator    // ->
	FormatSpecifier       // b, o, d or h directly before quoted content
	Content               // quoted literal, delimiters stripped
	Newline
)

var kindNames = map[Kind]string{
	Illegal:               "illegal",
	Identifier:            "identifier",
	LeftGroupParenthesis:  "left group parenthesis",
	RightGroupParenthesis: "right group parenthesis",
	LeftTestParenthesis:   "left test parenthesis",
	RightTestParenthesis:  "right test parenthesis",
	ContentSeparator:      "content separator",
	OptionSeparator:       "option separator",
	DirectionSeparator:    "direction separator",
	FormatSpecifier:       "format specifier",
	Content:               "content",
	Newline:               "newline",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is a classified, positioned lexical unit. Line and Column are the
// 1-based source position of the token's first character and appear verbatim
// in every diagnostic.
type Token struct {
	Kind   Kind
	Value  string
	Line   int
	Column int
}
