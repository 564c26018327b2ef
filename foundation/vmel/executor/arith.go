// File: arith.go
// Title: vmel Integer Evaluation
// Description: Evaluates arithmetic and comparison trees to int64 and
//              coerces text operands.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
// - 2026-10-18 v0.1.1: Out of range integers are reported, not byte summed

package executor

import (
	"errors"
	"strconv"

	"github.com/msto63/vmel/foundation/vmel/ast"
	"github.com/msto63/vmel/foundation/vmel/diag"
)

func (s *runState) evalInt(node ast.Node) (int64, error) {
	switch v := node.(type) {
	case *ast.Literal:
		text := v.Value
		switch v.Kind {
		case ast.LiteralIdentifier:
			resolved, err := s.resolve(v.Value, v.Position.Line)
			if err != nil {
				return 0, err
			}
			text = resolved
		case ast.LiteralMixString:
			text = s.interpolate(v.Value, v.Position.Line)
		}
		return s.coerce(text, v.Position.Line)

	case *ast.BinaryOp:
		left, right, err := s.operands(v.Left, v.Right)
		if err != nil {
			return 0, err
		}
		switch v.Op {
		case ast.OpAdd:
			return left + right, nil
		case ast.OpSub:
			return left - right, nil
		case ast.OpMul:
			return left * right, nil
		case ast.OpDiv:
			if right == 0 {
				return 0, newFault(diag.RunDivisionByZero, v.String(), v.Position.Line)
			}
			return left / right, nil
		}

	case *ast.CompareOp:
		left, right, err := s.operands(v.Left, v.Right)
		if err != nil {
			return 0, err
		}
		return Compare(v.Op, left, right), nil
	}

	return 0, newFault(diag.RunInvalidOperand, node.String(), node.Pos().Line)
}

func (s *runState) operands(l, r ast.Node) (int64, int64, error) {
	left, err := s.evalInt(l)
	if err != nil {
		return 0, 0, err
	}
	right, err := s.evalInt(r)
	if err != nil {
		return 0, 0, err
	}
	return left, right, nil
}

// coerce turns text into an integer. A decimal integer outside the int64
// range is an error in every mode.
func (s *runState) coerce(text string, line int) (int64, error) {
	i, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return i, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, newFault(diag.RunIntegerOverflow, text, line)
	}
	if s.strict {
		return 0, newFault(diag.RunNotANumber, text, line)
	}
	return ByteSum(text), nil
}

// ByteSum is the integer value of non-numeric text: the sum of its bytes
func ByteSum(text string) int64 {
	var sum int64
	for i := 0; i < len(text); i++ {
		sum += int64(text[i])
	}
	return sum
}

// Compare applies a comparison operator. Boolean operators yield 1 or 0,
// OpBetween yields -1, 0 or 1.
func Compare(op ast.CompareKind, left, right int64) int64 {
	if op == ast.OpBetween {
		switch {
		case left < right:
			return -1
		case left > right:
			return 1
		default:
			return 0
		}
	}

	var result bool
	switch op {
	case ast.OpEq:
		result = left == right
	case ast.OpNeq:
		result = left != right
	case ast.OpLt:
		result = left < right
	case ast.OpLte:
		result = left <= right
	case ast.OpGt:
		result = left > right
	case ast.OpGte:
		result = left >= right
	}
	if result {
		return 1
	}
	return 0
}
