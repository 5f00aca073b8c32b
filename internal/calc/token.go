// Package calc implements an arbitrary-precision arithmetic expression
// evaluator: a lexer, a shunting-yard infix-to-RPN converter, and an RPN
// stack machine over decimal values.
package calc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Operator identifies an arithmetic operator.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	// OpNeg is unary minus. The lexer never emits it directly; the
	// shunting-yard pass rewrites OpSub in operand position to OpNeg.
	OpNeg
)

// Assoc is an operator associativity.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
)

func operatorForRune(r rune) (Operator, bool) {
	switch r {
	case '+':
		return OpAdd, true
	case '-':
		return OpSub, true
	case '*':
		return OpMul, true
	case '/':
		return OpDiv, true
	case '%':
		return OpMod, true
	case '^':
		return OpPow, true
	default:
		return 0, false
	}
}

func isOperatorRune(r rune) bool {
	_, ok := operatorForRune(r)
	return ok
}

// String returns the operator symbol; unary minus renders as "u-".
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	case OpNeg:
		return "u-"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// Precedence orders operators for the shunting-yard pass. Higher binds tighter.
func (op Operator) Precedence() int {
	switch op {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv, OpMod:
		return 2
	case OpNeg:
		return 3
	case OpPow:
		return 4
	default:
		return 0
	}
}

// Associativity reports how equal-precedence operators group.
func (op Operator) Associativity() Assoc {
	switch op {
	case OpPow, OpNeg:
		return AssocRight
	default:
		return AssocLeft
	}
}

// shouldPop reports whether the operator on top of the stack must be moved
// to the output before pushing the incoming operator.
func shouldPop(stackOp, incoming Operator) bool {
	stackPrec := stackOp.Precedence()
	incomingPrec := incoming.Precedence()

	if stackPrec > incomingPrec {
		return true
	}
	if stackPrec == incomingPrec {
		return incoming.Associativity() == AssocLeft
	}
	return false
}

// TokenKind discriminates Token payloads.
type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenConstant
	TokenOperator
	TokenLeftParen
	TokenRightParen
)

// Token is a single lexical element of an expression.
type Token struct {
	Kind     TokenKind
	Value    decimal.Decimal
	Constant Constant
	Op       Operator
}

func numberToken(v decimal.Decimal) Token {
	return Token{Kind: TokenNumber, Value: v}
}

func constantToken(c Constant) Token {
	return Token{Kind: TokenConstant, Constant: c}
}

func operatorToken(op Operator) Token {
	return Token{Kind: TokenOperator, Op: op}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return t.Value.String()
	case TokenConstant:
		return t.Constant.String()
	case TokenOperator:
		return t.Op.String()
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	default:
		return fmt.Sprintf("token(%d)", int(t.Kind))
	}
}
