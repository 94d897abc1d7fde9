package lexer_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mweber/serialtest/internal/lexer"
	"github.com/mweber/serialtest/internal/token"
)

func kinds(tokens []token.Token) []token.Kind {
	ks := make([]token.Kind, 0, len(tokens))
	for _, t := range tokens {
		ks = append(ks, t.Kind)
	}
	return ks
}

var _ = Describe("Lexer", func() {
	Describe("Tokens", func() {
		It("should tokenize a plain test line", func() {
			tokens := lexer.New(`"hello" -> "world"`).Tokens()

			Expect(kinds(tokens)).To(Equal([]token.Kind{
				token.Content,
				token.DirectionSeparator,
				token.Content,
				token.Newline,
			}))
			Expect(tokens[0].Value).To(Equal("hello"))
			Expect(tokens[2].Value).To(Equal("world"))
		})

		It("should tokenize a group header", func() {
			tokens := lexer.New("[Group1]").Tokens()

			Expect(kinds(tokens)).To(Equal([]token.Kind{
				token.LeftGroupParenthesis,
				token.Identifier,
				token.RightGroupParenthesis,
				token.Newline,
			}))
			Expect(tokens[1].Value).To(Equal("Group1"))
		})

		It("should tokenize a named test with options", func() {
			tokens := lexer.New(`( name, ignore-case=true ) "a" -> "b"`).Tokens()

			Expect(kinds(tokens)).To(Equal([]token.Kind{
				token.LeftTestParenthesis,
				token.Identifier,
				token.ContentSeparator,
				token.Identifier,
				token.OptionSeparator,
				token.Identifier,
				token.RightTestParenthesis,
				token.Content,
				token.DirectionSeparator,
				token.Content,
				token.Newline,
			}))
			Expect(tokens[1].Value).To(Equal("name"))
			Expect(tokens[3].Value).To(Equal("ignore-case"))
			Expect(tokens[5].Value).To(Equal("true"))
		})

		It("should return no tokens for empty input", func() {
			Expect(lexer.New("").Tokens()).To(BeEmpty())
		})

		It("should return no tokens for whitespace-only input", func() {
			Expect(lexer.New("  \t \r ").Tokens()).To(BeEmpty())
		})

		It("should append a trailing newline when the input does not end with one", func() {
			tokens := lexer.New(`"a" -> "b"`).Tokens()

			Expect(tokens[len(tokens)-1].Kind).To(Equal(token.Newline))
		})

		It("should not append a second newline when the input ends with one", func() {
			tokens := lexer.New("\"a\" -> \"b\"\n").Tokens()

			Expect(tokens[len(tokens)-1].Kind).To(Equal(token.Newline))
			Expect(tokens[len(tokens)-2].Kind).ToNot(Equal(token.Newline))
		})

		It("should emit a newline token per line break", func() {
			tokens := lexer.New("a\nb").Tokens()

			Expect(kinds(tokens)).To(Equal([]token.Kind{
				token.Identifier,
				token.Newline,
				token.Identifier,
				token.Newline,
			}))
		})

		Describe("positions", func() {
			It("should report 1-based line and column of the first character", func() {
				tokens := lexer.New(`(T1) "a" -> "b"`).Tokens()

				Expect(tokens[0].Line).To(Equal(1))
				Expect(tokens[0].Column).To(Equal(1))
				Expect(tokens[1].Value).To(Equal("T1"))
				Expect(tokens[1].Column).To(Equal(2))
				Expect(tokens[2].Column).To(Equal(4))
				// content position is the opening quote
				Expect(tokens[3].Column).To(Equal(6))
				Expect(tokens[4].Column).To(Equal(10))
				Expect(tokens[5].Column).To(Equal(13))
			})

			It("should reset the column after a newline", func() {
				tokens := lexer.New("[g]\n\"x\" -> \"y\"").Tokens()

				Expect(tokens[3].Kind).To(Equal(token.Newline))
				Expect(tokens[4].Line).To(Equal(2))
				Expect(tokens[4].Column).To(Equal(1))
			})

			It("should count every consumed character as one column", func() {
				tokens := lexer.New("\ta").Tokens()

				Expect(tokens[0].Value).To(Equal("a"))
				Expect(tokens[0].Column).To(Equal(2))
			})
		})

		Describe("format specifiers", func() {
			It("should recognize b, o, d and h directly before a quote", func() {
				tokens := lexer.New(`h"4f" -> b"01001011"`).Tokens()

				Expect(kinds(tokens)).To(Equal([]token.Kind{
					token.FormatSpecifier,
					token.Content,
					token.DirectionSeparator,
					token.FormatSpecifier,
					token.Content,
					token.Newline,
				}))
				Expect(tokens[0].Value).To(Equal("h"))
				Expect(tokens[3].Value).To(Equal("b"))
			})

			It("should treat a format letter without a quote as an identifier", func() {
				tokens := lexer.New("beta").Tokens()

				Expect(tokens[0].Kind).To(Equal(token.Identifier))
				Expect(tokens[0].Value).To(Equal("beta"))
			})
		})

		Describe("identifiers", func() {
			It("should allow letters, digits, underscores, dots and hyphens", func() {
				tokens := lexer.New("my-test_1.2").Tokens()

				Expect(tokens[0].Kind).To(Equal(token.Identifier))
				Expect(tokens[0].Value).To(Equal("my-test_1.2"))
			})

			It("should end an identifier at a direction separator", func() {
				tokens := lexer.New("a->b").Tokens()

				Expect(kinds(tokens)).To(Equal([]token.Kind{
					token.Identifier,
					token.DirectionSeparator,
					token.Identifier,
					token.Newline,
				}))
				Expect(tokens[0].Value).To(Equal("a"))
				Expect(tokens[2].Value).To(Equal("b"))
			})
		})

		Describe("content", func() {
			It("should keep whitespace and structural characters inside quotes verbatim", func() {
				tokens := lexer.New(`"a [b], (c) = d" -> "x"`).Tokens()

				Expect(tokens[0].Kind).To(Equal(token.Content))
				Expect(tokens[0].Value).To(Equal("a [b], (c) = d"))
			})

			It("should let content span line breaks without emitting a newline token", func() {
				tokens := lexer.New("\"ab\ncd\" -> \"x\"").Tokens()

				Expect(tokens[0].Kind).To(Equal(token.Content))
				Expect(tokens[0].Value).To(Equal("ab\ncd"))
				Expect(tokens[1].Kind).To(Equal(token.DirectionSeparator))
				Expect(tokens[1].Line).To(Equal(2))
				Expect(tokens[1].Column).To(Equal(5))
			})

			It("should turn an unterminated quote into an illegal token at the opening quote", func() {
				tokens := lexer.New(`"abc`).Tokens()

				Expect(tokens[0].Kind).To(Equal(token.Illegal))
				Expect(tokens[0].Value).To(Equal(`"abc`))
				Expect(tokens[0].Line).To(Equal(1))
				Expect(tokens[0].Column).To(Equal(1))
			})
		})

		Describe("illegal input", func() {
			It("should collapse a run of unclassifiable characters into one token", func() {
				tokens := lexer.New("@# foo").Tokens()

				Expect(kinds(tokens)).To(Equal([]token.Kind{
					token.Illegal,
					token.Identifier,
					token.Newline,
				}))
				Expect(tokens[0].Value).To(Equal("@#"))
				Expect(tokens[1].Value).To(Equal("foo"))
			})

			It("should keep lexing after an illegal token", func() {
				tokens := lexer.New("! \"a\" -> \"b\"").Tokens()

				Expect(kinds(tokens)).To(Equal([]token.Kind{
					token.Illegal,
					token.Content,
					token.DirectionSeparator,
					token.Content,
					token.Newline,
				}))
			})
		})
	})
})
