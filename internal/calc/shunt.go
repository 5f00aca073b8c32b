package calc

import "errors"

var errMismatchedParens = errors.New("mismatched parentheses")

// ToRPN reorders infix tokens into reverse Polish notation using the
// shunting-yard algorithm. A '-' that appears where an operand is expected
// is rewritten to unary minus; any other operator there is rejected.
func ToRPN(tokens []Token) ([]Token, error) {
	var output []Token
	var stack []Token
	expectOperand := true

	for _, token := range tokens {
		switch token.Kind {
		case TokenNumber, TokenConstant:
			output = append(output, token)
			expectOperand = false

		case TokenOperator:
			op := token.Op
			if expectOperand {
				if op != OpSub {
					return nil, errors.New("unexpected operator placement")
				}
				op = OpNeg
			}

			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != TokenOperator || !shouldPop(top.Op, op) {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, operatorToken(op))
			expectOperand = true

		case TokenLeftParen:
			stack = append(stack, token)
			expectOperand = true

		case TokenRightParen:
			foundLeft := false
			for len(stack) > 0 {
				popped := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if popped.Kind == TokenLeftParen {
					foundLeft = true
					break
				}
				if popped.Kind == TokenOperator {
					output = append(output, popped)
				}
			}
			if !foundLeft {
				return nil, errMismatchedParens
			}
			expectOperand = false
		}
	}

	for len(stack) > 0 {
		popped := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if popped.Kind == TokenLeftParen || popped.Kind == TokenRightParen {
			return nil, errMismatchedParens
		}
		output = append(output, popped)
	}

	return output, nil
}
