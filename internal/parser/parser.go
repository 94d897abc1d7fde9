// Package parser turns test-definition source into executable test suites.
// It lexes the source, validates each line against the grammar of its kind
// and materializes the domain model. The first diagnostic aborts the parse;
// there are no partial results.
package parser

import (
	"io"
	"os"
	"strconv"

	"github.com/mweber/serialtest/internal/domain"
	"github.com/mweber/serialtest/internal/format"
	"github.com/mweber/serialtest/internal/lexer"
	"github.com/mweber/serialtest/internal/token"
)

// Parse reads test-definition source from r and returns the suites it
// declares, in declaration order. Empty input yields an empty suite list.
func Parse(r io.Reader) ([]domain.TestSuite, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadFileError{Err: err}
	}
	return analyze(lexer.New(string(input)).Tokens())
}

// ParseFile opens path and parses its contents.
func ParseFile(path string) ([]domain.TestSuite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadFileError{Path: path, Err: err}
	}
	defer f.Close()

	return Parse(f)
}

func analyze(tokens []token.Token) ([]domain.TestSuite, error) {
	for _, tok := range tokens {
		if tok.Kind == token.Illegal {
			return nil, &IllegalTokenError{Value: tok.Value, Line: tok.Line, Column: tok.Column}
		}
	}

	suites := []domain.TestSuite{}

	for _, line := range splitLines(tokens) {
		switch line[0].Kind {
		case token.LeftGroupParenthesis:
			suite, err := analyzeGroup(line)
			if err != nil {
				return nil, err
			}
			suites = append(suites, suite)

		case token.LeftTestParenthesis, token.FormatSpecifier, token.Content:
			test, err := analyzeTest(line)
			if err != nil {
				return nil, err
			}
			// Tests before the first group header go into an implicit
			// unnamed suite.
			if len(suites) == 0 {
				suites = append(suites, domain.TestSuite{})
			}
			current := &suites[len(suites)-1]
			current.Tests = append(current.Tests, test)

		default:
			return nil, &InvalidLineStartError{Line: line[0].Line, Column: line[0].Column}
		}
	}

	return suites, nil
}

// splitLines groups tokens into lines, dropping the newline tokens and
// skipping empty lines.
func splitLines(tokens []token.Token) [][]token.Token {
	var lines [][]token.Token
	var line []token.Token

	for _, tok := range tokens {
		if tok.Kind == token.Newline {
			if len(line) > 0 {
				lines = append(lines, line)
				line = nil
			}
			continue
		}
		line = append(line, tok)
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}

	return lines
}

func analyzeGroup(line []token.Token) (domain.TestSuite, error) {
	if state, tok, ok := groupMachine.Run(line); !ok {
		return domain.TestSuite{}, groupFailure(state, tok)
	}
	return domain.TestSuite{Name: line[1].Value}, nil
}

// analyzeTest validates the line against the test grammar and then walks the
// accepted token sequence positionally to build the test case.
func analyzeTest(line []token.Token) (domain.TestCase, error) {
	if state, tok, ok := testMachine.Run(line); !ok {
		return domain.TestCase{}, testFailure(state, tok)
	}

	test := domain.TestCase{Settings: domain.DefaultTestCaseSettings()}
	i := 0

	if line[i].Kind == token.LeftTestParenthesis {
		i++
		if line[i].Kind == token.Identifier {
			test.Name = line[i].Value
			i++
		}
		for line[i].Kind == token.ContentSeparator {
			if err := setTestOption(&test.Settings, line[i+1], line[i+3]); err != nil {
				return domain.TestCase{}, err
			}
			i += 4
		}
		i++ // closing parenthesis
	}

	if line[i].Kind == token.FormatSpecifier {
		f, err := textFormat(line[i])
		if err != nil {
			return domain.TestCase{}, err
		}
		test.Settings.InputFormat = f
		i++
	}
	test.Input = line[i].Value
	i++

	i++ // direction separator

	if line[i].Kind == token.FormatSpecifier {
		f, err := textFormat(line[i])
		if err != nil {
			return domain.TestCase{}, err
		}
		test.Settings.OutputFormat = f
		i++
	}
	test.Output = line[i].Value

	return test, nil
}

// setTestOption applies one name=value option against the fixed option set.
func setTestOption(settings *domain.TestCaseSettings, name, value token.Token) error {
	switch name.Value {
	case "ignore-case":
		v, ok := format.GetBooleanValue(value.Value)
		if !ok {
			return &InvalidOptionValueError{Expected: "boolean", Line: value.Line, Column: value.Column}
		}
		settings.IgnoreCase = v
	case "delay":
		d, ok := format.GetTimeValue(value.Value)
		if !ok {
			return &InvalidOptionValueError{Expected: "time", Line: value.Line, Column: value.Column}
		}
		settings.Delay = d
	case "timeout":
		d, ok := format.GetTimeValue(value.Value)
		if !ok {
			return &InvalidOptionValueError{Expected: "time", Line: value.Line, Column: value.Column}
		}
		settings.Timeout = d
	case "repeat":
		n, err := strconv.ParseUint(value.Value, 10, 32)
		if err != nil {
			return &InvalidOptionValueError{Expected: "number", Line: value.Line, Column: value.Column}
		}
		settings.Repeat = uint32(n)
	default:
		return &UnknownTestOptionError{Name: name.Value, Line: name.Line, Column: name.Column}
	}

	return nil
}

func textFormat(tok token.Token) (format.TextFormat, error) {
	switch tok.Value {
	case "b":
		return format.Binary, nil
	case "o":
		return format.Octal, nil
	case "d":
		return format.Decimal, nil
	case "h":
		return format.Hex, nil
	}
	return format.Text, &UnknownError{Line: tok.Line, Column: tok.Column}
}
