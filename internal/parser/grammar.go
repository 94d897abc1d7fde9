package parser

import (
	"github.com/mweber/serialtest/internal/fsm"
	"github.com/mweber/serialtest/internal/token"
)

// groupMachine accepts exactly: '[' Identifier ']'.
var groupMachine = fsm.New(1, []int{4}, func(state int, tok token.Token) int {
	switch {
	case state == 1 && tok.Kind == token.LeftGroupParenthesis:
		return 2
	case state == 2 && tok.Kind == token.Identifier:
		return 3
	case state == 3 && tok.Kind == token.RightGroupParenthesis:
		return 4
	}
	return fsm.Reject
})

// testMachine accepts:
//
//	[ '(' name? ( ',' name '=' value )* ')' ] fmt? input '->' fmt? output
//
// where the header, the names and both format specifiers are optional.
var testMachine = fsm.New(1, []int{9}, func(state int, tok token.Token) int {
	switch state {
	case 1:
		switch tok.Kind {
		case token.LeftTestParenthesis:
			return 2
		case token.FormatSpecifier:
			return 5
		case token.Content:
			return 6
		}
	case 2:
		switch tok.Kind {
		case token.Identifier:
			return 3
		case token.ContentSeparator:
			return 10
		}
	case 3:
		switch tok.Kind {
		case token.RightTestParenthesis:
			return 4
		case token.ContentSeparator:
			return 10
		}
	case 4:
		switch tok.Kind {
		case token.FormatSpecifier:
			return 5
		case token.Content:
			return 6
		}
	case 5:
		if tok.Kind == token.Content {
			return 6
		}
	case 6:
		if tok.Kind == token.DirectionSeparator {
			return 7
		}
	case 7:
		switch tok.Kind {
		case token.FormatSpecifier:
			return 8
		case token.Content:
			return 9
		}
	case 8:
		if tok.Kind == token.Content {
			return 9
		}
	case 10:
		if tok.Kind == token.Identifier {
			return 11
		}
	case 11:
		if tok.Kind == token.OptionSeparator {
			return 12
		}
	case 12:
		if tok.Kind == token.Identifier {
			return 13
		}
	case 13:
		switch tok.Kind {
		case token.RightTestParenthesis:
			return 4
		case token.ContentSeparator:
			return 10
		}
	}
	return fsm.Reject
})

// groupFailure maps a group-grammar rejection to its diagnostic.
func groupFailure(state int, tok token.Token) error {
	switch state {
	case 2:
		return &MissingGroupIdentifierError{Line: tok.Line, Column: tok.Column}
	case 3:
		return &MissingClosingParenthesisError{Expected: "]", Line: tok.Line, Column: tok.Column}
	}
	return &UnknownError{Line: tok.Line, Column: tok.Column}
}

// testFailure maps a test-grammar rejection to its diagnostic.
func testFailure(state int, tok token.Token) error {
	switch state {
	case 2:
		return &MissingTestIdentifierError{Line: tok.Line, Column: tok.Column}
	case 3:
		return &MissingClosingParenthesisError{Expected: ")", Line: tok.Line, Column: tok.Column}
	case 4, 5:
		return &MissingContentError{Which: "input", Line: tok.Line, Column: tok.Column}
	case 6:
		return &MissingDirectionSeparatorError{Line: tok.Line, Column: tok.Column}
	case 7, 8:
		return &MissingContentError{Which: "output", Line: tok.Line, Column: tok.Column}
	}
	return &UnknownError{Line: tok.Line, Column: tok.Column}
}
