package parser

import (
	"go.creack.net/gocalc/ast"
	"go.creack.net/gocalc/lexer"
)

func parseExpr(p *parser, bp bindingPower) (ast.Expr, error) {
	// Parse the primary expression, always start with nud.
	nudFn, exists := p.nudLookupTable[p.curToken.Type]
	if !exists {
		return nil, p.errorf(ErrMissingOperand)
	}
	left, err := nudFn(p)
	if err != nil {
		return nil, err
	}

	// While we have tokens with a higher binding power, parse them using led.
	// Equal binding power stops the loop, which makes operators left associative.
	for p.bindingPowerLookupTable[p.curToken.Type] > bp {
		ledFn := p.ledLookupTable[p.curToken.Type]
		left, err = ledFn(p, left, p.bindingPowerLookupTable[p.curToken.Type])
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func parsePrimaryExpr(p *parser) (ast.Expr, error) {
	tok := p.curToken
	if tok.Type != lexer.TokNumber {
		return nil, p.errorf(ErrMissingOperand)
	}
	p.nextToken()
	return &ast.NumberExpr{
		Value: tok.Number,
	}, nil
}

func parsePrefixExpr(p *parser) (ast.Expr, error) {
	operator := p.curToken
	p.nextToken()
	right, err := parseExpr(p, bpUnary)
	if err != nil {
		return nil, err
	}

	return &ast.PrefixExpr{
		Operator: operator,
		Right:    right,
	}, nil
}

func parseBinaryExpr(p *parser, left ast.Expr, bp bindingPower) (ast.Expr, error) {
	operator := p.curToken
	p.nextToken()
	right, err := parseExpr(p, bp)
	if err != nil {
		return nil, err
	}

	return &ast.BinaryExpr{
		Left:     left,
		Operator: operator,
		Right:    right,
	}, nil
}
