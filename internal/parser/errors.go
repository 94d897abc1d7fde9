package parser

import "fmt"

// One error type per diagnostic so callers can match on the concrete type.
// Positions are 1-based line:column pairs pointing at the offending token's
// first character.

// ReadFileError reports that test-definition source could not be read.
type ReadFileError struct {
	Path string
	Err  error
}

func (e *ReadFileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unable to read input: %v", e.Err)
	}
	return fmt.Sprintf("unable to read file %q: %v", e.Path, e.Err)
}

func (e *ReadFileError) Unwrap() error {
	return e.Err
}

// IllegalTokenError reports input the lexer could not classify.
type IllegalTokenError struct {
	Value  string
	Line   int
	Column int
}

func (e *IllegalTokenError) Error() string {
	return fmt.Sprintf("illegal token %q at %d:%d", e.Value, e.Line, e.Column)
}

// MissingClosingParenthesisError reports an unclosed group or test header.
// Expected is the parenthesis that would have closed it.
type MissingClosingParenthesisError struct {
	Expected string
	Line     int
	Column   int
}

func (e *MissingClosingParenthesisError) Error() string {
	return fmt.Sprintf("missing closing parenthesis %q at %d:%d", e.Expected, e.Line, e.Column)
}

// MissingDirectionSeparatorError reports a test line without "->" after its
// input content.
type MissingDirectionSeparatorError struct {
	Line   int
	Column int
}

func (e *MissingDirectionSeparatorError) Error() string {
	return fmt.Sprintf("missing direction separator at %d:%d", e.Line, e.Column)
}

// MissingGroupIdentifierError reports a group header without a name.
type MissingGroupIdentifierError struct {
	Line   int
	Column int
}

func (e *MissingGroupIdentifierError) Error() string {
	return fmt.Sprintf("missing group identifier at %d:%d", e.Line, e.Column)
}

// MissingTestIdentifierError reports a test header that opens with "(" but
// continues with neither a name nor an option list.
type MissingTestIdentifierError struct {
	Line   int
	Column int
}

func (e *MissingTestIdentifierError) Error() string {
	return fmt.Sprintf("missing test identifier at %d:%d", e.Line, e.Column)
}

// MissingContentError reports a test line without its input or output
// content literal. Which is "input" or "output".
type MissingContentError struct {
	Which  string
	Line   int
	Column int
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("missing %s content at %d:%d", e.Which, e.Line, e.Column)
}

// InvalidLineStartError reports a line whose first token opens neither a
// group header nor a test case.
type InvalidLineStartError struct {
	Line   int
	Column int
}

func (e *InvalidLineStartError) Error() string {
	return fmt.Sprintf("invalid line start at %d:%d", e.Line, e.Column)
}

// InvalidOptionValueError reports an option value that does not parse as the
// kind its option requires. Expected is "boolean", "time" or "number".
type InvalidOptionValueError struct {
	Expected string
	Line     int
	Column   int
}

func (e *InvalidOptionValueError) Error() string {
	return fmt.Sprintf("invalid option value at %d:%d, expected %s", e.Line, e.Column, e.Expected)
}

// UnknownTestOptionError reports an option name outside the fixed option set.
type UnknownTestOptionError struct {
	Name   string
	Line   int
	Column int
}

func (e *UnknownTestOptionError) Error() string {
	return fmt.Sprintf("unknown test option %q at %d:%d", e.Name, e.Line, e.Column)
}

// UnknownError reports a grammar rejection with no more specific mapping.
type UnknownError struct {
	Line   int
	Column int
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown error at %d:%d", e.Line, e.Column)
}
