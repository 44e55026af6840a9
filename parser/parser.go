// Package parser builds expression trees from lexer tokens.
package parser

import (
	"errors"
	"fmt"

	"go.creack.net/gocalc/ast"
	"go.creack.net/gocalc/lexer"
)

// Parse failures. Every *Error wraps exactly one of them.
var (
	ErrEmpty          = errors.New("empty expression")
	ErrMissingOperand = errors.New("missing operand")
	ErrTrailingTokens = errors.New("unexpected token after expression")
)

// Error is a structurally invalid token sequence.
type Error struct {
	Token lexer.Token // Offending token, zero for ErrEmpty.
	Err   error
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrEmpty):
		return e.Err.Error()
	case e.Token.Type == lexer.TokEOF:
		return fmt.Sprintf("%s at end of input", e.Err)
	}
	return fmt.Sprintf("%s: %q at column %d", e.Err, e.Token.Value, e.Token.Pos())
}

func (e *Error) Unwrap() error { return e.Err }

type parser struct {
	tokens []lexer.Token
	pos    int

	prevToken lexer.Token
	curToken  lexer.Token

	nudLookupTable          lookupTable[nudHandler]
	ledLookupTable          lookupTable[ledHandler]
	bindingPowerLookupTable lookupTable[bindingPower]
}

func newParser(tokens []lexer.Token) *parser {
	p := &parser{
		tokens:                  tokens,
		nudLookupTable:          lookupTable[nudHandler]{},
		ledLookupTable:          lookupTable[ledHandler]{},
		bindingPowerLookupTable: lookupTable[bindingPower]{},
	}
	p.createTokenLookups()
	p.nextToken()
	return p
}

// Parse builds the tree of a complete expression. tokens is expected
// to end with an EOF token, as returned by lexer.Tokenize.
func Parse(tokens []lexer.Token) (ast.Expr, error) {
	p := newParser(tokens)
	if p.curToken.Type == lexer.TokEOF {
		return nil, &Error{Err: ErrEmpty}
	}

	expr, err := parseExpr(p, bpDefault)
	if err != nil {
		return nil, err
	}
	if p.curToken.Type != lexer.TokEOF {
		return nil, p.errorf(ErrTrailingTokens)
	}
	return expr, nil
}

// ParseString tokenizes and parses one line.
func ParseString(line string) (ast.Expr, error) {
	tokens, err := lexer.Tokenize(line)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func (p *parser) nextToken() lexer.Token {
	p.prevToken = p.curToken
	if p.pos >= len(p.tokens) {
		p.curToken = lexer.Token{Type: lexer.TokEOF}
		return p.curToken
	}
	p.curToken = p.tokens[p.pos]
	p.pos++
	return p.curToken
}

func (p *parser) errorf(err error) *Error {
	return &Error{Token: p.curToken, Err: err}
}
