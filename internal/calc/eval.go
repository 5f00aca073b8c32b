package calc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// divisionScale bounds the number of fractional digits produced by
	// division, which otherwise may not terminate.
	divisionScale = 34

	// maxPowExponent caps '^' so pathological exponents fail fast instead
	// of allocating unbounded results.
	maxPowExponent = 100000
)

var errNotEnoughOperands = errors.New("not enough operands for operator")

// Evaluate tokenizes, reorders, and computes an infix expression.
func Evaluate(input string) (decimal.Decimal, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rpn, err := ToRPN(tokens)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return EvalRPN(rpn)
}

// EvalRPN computes the value of a token stream in reverse Polish notation.
func EvalRPN(tokens []Token) (decimal.Decimal, error) {
	var stack []decimal.Decimal

	for _, token := range tokens {
		switch token.Kind {
		case TokenNumber:
			stack = append(stack, token.Value)

		case TokenConstant:
			stack = append(stack, token.Constant.Value())

		case TokenOperator:
			if token.Op == OpNeg {
				if len(stack) < 1 {
					return decimal.Decimal{}, errNotEnoughOperands
				}
				stack[len(stack)-1] = stack[len(stack)-1].Neg()
				continue
			}

			if len(stack) < 2 {
				return decimal.Decimal{}, errNotEnoughOperands
			}
			rhs := stack[len(stack)-1]
			lhs := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			result, err := applyOperator(lhs, rhs, token.Op)
			if err != nil {
				return decimal.Decimal{}, err
			}
			stack = append(stack, result)

		case TokenLeftParen, TokenRightParen:
			return decimal.Decimal{}, errors.New("parenthesis encountered in RPN stream")
		}
	}

	if len(stack) != 1 {
		return decimal.Decimal{}, errors.New("invalid RPN expression")
	}
	return stack[0], nil
}

func applyOperator(lhs, rhs decimal.Decimal, op Operator) (decimal.Decimal, error) {
	switch op {
	case OpAdd:
		return lhs.Add(rhs), nil
	case OpSub:
		return lhs.Sub(rhs), nil
	case OpMul:
		return lhs.Mul(rhs), nil
	case OpDiv:
		if rhs.IsZero() {
			return decimal.Decimal{}, errors.New("division by zero")
		}
		return lhs.DivRound(rhs, divisionScale), nil
	case OpMod:
		if rhs.IsZero() {
			return decimal.Decimal{}, errors.New("modulo by zero")
		}
		return lhs.Mod(rhs), nil
	case OpPow:
		return applyPow(lhs, rhs)
	default:
		return decimal.Decimal{}, fmt.Errorf("operator %s cannot be applied in binary context", op)
	}
}

func applyPow(lhs, rhs decimal.Decimal) (decimal.Decimal, error) {
	if !rhs.IsInteger() {
		return decimal.Decimal{}, errors.New("exponent must be an integer for power operation")
	}
	if rhs.Abs().GreaterThan(decimal.NewFromInt(maxPowExponent)) {
		return decimal.Decimal{}, errors.New("exponent is out of range for power operation")
	}
	exp := rhs.IntPart()

	negative := exp < 0
	if negative {
		exp = -exp
	}

	// Exponentiation by squaring keeps intermediate results exact.
	result := decimal.NewFromInt(1)
	base := lhs
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		exp >>= 1
		if exp > 0 {
			base = base.Mul(base)
		}
	}

	if negative {
		if result.IsZero() {
			return decimal.Decimal{}, errors.New("division by zero")
		}
		return decimal.NewFromInt(1).DivRound(result, divisionScale), nil
	}
	return result, nil
}
