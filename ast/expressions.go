// Package ast defines the expression tree built for one input line.
package ast

import (
	"fmt"
	"strconv"

	"go.creack.net/gocalc/lexer"
)

// Expr is any node of an expression tree.
type Expr interface {
	Dump() string
	expr()
}

// NumberExpr is a literal leaf.
type NumberExpr struct {
	Value float64
}

func (NumberExpr) expr() {}

func (n NumberExpr) Dump() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// PrefixExpr is a unary negation.
type PrefixExpr struct {
	Operator lexer.Token
	Right    Expr
}

func (PrefixExpr) expr() {}

func (p PrefixExpr) Dump() string {
	return fmt.Sprintf("(%s%s)", p.Operator.Type, p.Right.Dump())
}

// BinaryExpr applies one of + - * / to its operands.
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (BinaryExpr) expr() {}

// Dump renders the node fully parenthesized, making grouping explicit.
func (b BinaryExpr) Dump() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.Dump(), b.Operator.Type, b.Right.Dump())
}
