// Package executor evaluates expression trees over float64.
package executor

import (
	"errors"
	"fmt"
	"strconv"

	"go.creack.net/gocalc/ast"
	"go.creack.net/gocalc/lexer"
)

// ErrDivisionByZero is the only runtime fault.
var ErrDivisionByZero = errors.New("division by zero")

// Error is a runtime fault raised while evaluating a tree.
type Error struct {
	Expr ast.Expr // Faulting subexpression.
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s in %s", e.Err, e.Expr.Dump())
}

func (e *Error) Unwrap() error { return e.Err }

func evaluatePrefix(expr *ast.PrefixExpr) (float64, error) {
	right, err := Evaluate(expr.Right)
	if err != nil {
		return 0, err
	}
	if expr.Operator.Type != lexer.TokDash { // Should never happen.
		panic(fmt.Errorf("unsupported prefix operator %s", expr.Operator.Type))
	}
	return -right, nil
}

func evaluateBinary(expr *ast.BinaryExpr) (float64, error) {
	left, err := Evaluate(expr.Left)
	if err != nil {
		return 0, err
	}
	right, err := Evaluate(expr.Right)
	if err != nil {
		return 0, err
	}

	switch expr.Operator.Type {
	case lexer.TokPlus:
		return left + right, nil
	case lexer.TokDash:
		return left - right, nil
	case lexer.TokMultiply:
		return left * right, nil
	case lexer.TokSlash:
		// Matches -0 too.
		if right == 0 {
			return 0, &Error{Expr: expr, Err: ErrDivisionByZero}
		}
		return left / right, nil
	default:
		panic(fmt.Errorf("unsupported binary operator %s", expr.Operator.Type))
	}
}

// Evaluate computes the value of the tree. NaN and ±Inf coming from
// large magnitudes are regular results.
func Evaluate(expr ast.Expr) (float64, error) {
	switch e := expr.(type) {
	case *ast.NumberExpr:
		return e.Value, nil
	case *ast.PrefixExpr:
		return evaluatePrefix(e)
	case *ast.BinaryExpr:
		return evaluateBinary(e)
	default:
		panic(fmt.Errorf("unsupported expression type %T", e))
	}
}

// FormatResult renders v in decimal notation. A negative precision
// selects the shortest representation that parses back to v.
func FormatResult(v float64, precision int) string {
	if precision < 0 {
		precision = -1
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
