package calc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Tokenize splits an expression into tokens. Numbers may carry a decimal
// point and a single scientific-notation exponent with an optional sign
// (1.2e3, 4.2e-2). Alphabetic identifiers must name a known constant.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	runes := []rune(input)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '(':
			tokens = append(tokens, Token{Kind: TokenLeftParen})
			i++
		case r == ')':
			tokens = append(tokens, Token{Kind: TokenRightParen})
			i++
		case unicode.IsSpace(r):
			i++
		case isOperatorRune(r):
			op, _ := operatorForRune(r)
			tokens = append(tokens, operatorToken(op))
			i++
		case unicode.IsDigit(r):
			lit, width := scanNumber(runes[i:])
			num, err := decimal.NewFromString(lit)
			if err != nil {
				return nil, fmt.Errorf("parse number %q: %w", lit, err)
			}
			tokens = append(tokens, numberToken(num))
			i += width
		case isASCIILetter(r):
			ident, width := scanIdent(runes[i:])
			c, err := LookupConstant(ident)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, constantToken(c))
			i += width
		default:
			return nil, fmt.Errorf("unexpected character: %c", r)
		}
	}

	return tokens, nil
}

// scanNumber consumes a numeric literal starting at runes[0], which is known
// to be a digit. It returns the literal and the number of runes consumed.
func scanNumber(runes []rune) (string, int) {
	var sb strings.Builder
	sb.WriteRune(runes[0])
	i := 1
	sawExponent := false

	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsDigit(r) || r == '.':
			sb.WriteRune(r)
			i++
		case (r == 'e' || r == 'E') && !sawExponent:
			sawExponent = true
			sb.WriteRune(r)
			i++
			if i < len(runes) && (runes[i] == '+' || runes[i] == '-') {
				sb.WriteRune(runes[i])
				i++
			}
		default:
			return sb.String(), i
		}
	}
	return sb.String(), i
}

func scanIdent(runes []rune) (string, int) {
	var sb strings.Builder
	sb.WriteRune(runes[0])
	i := 1
	for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
		sb.WriteRune(runes[i])
		i++
	}
	return sb.String(), i
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
