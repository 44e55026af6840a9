package lexer

import (
	"fmt"
	"slices"
)

// TokenType is the type of token.
type TokenType int

// Token types as constants.
const (
	TokError TokenType = iota
	TokEOF

	// Literals.
	TokNumber

	// Operators.
	TokPlus
	TokDash
	TokMultiply
	TokSlash

	// End of tokens.
	FinalToken
)

// String returns the string representation of the token type.
func (tt TokenType) String() string {
	return tokenTypeStrings[tt]
}

// Map of token types to their string representation for debugging.
var tokenTypeStrings = map[TokenType]string{
	TokError: "ERROR",
	TokEOF:   "EOF",

	TokNumber: "NUMBER",

	TokPlus:     "+",
	TokDash:     "-",
	TokMultiply: "*",
	TokSlash:    "/",
}

func (tt TokenType) IsOneOf(t ...TokenType) bool {
	return slices.Contains(t, tt)
}

// IsOperator reports whether the token is one of the four arithmetic operators.
func (tt TokenType) IsOperator() bool {
	return tt.IsOneOf(TokPlus, TokDash, TokMultiply, TokSlash)
}

// Token represents a lexical token of an expression line.
type Token struct {
	Type   TokenType
	Value  string
	Number float64 // Set for TokNumber only.

	pos int // 1-based column of the first character.
}

// Pos returns the 1-based column where the token starts.
func (t Token) Pos() int { return t.pos }

func (t Token) String() string {
	switch t.Type {
	case TokEOF:
		return "EOF"
	case TokError:
		return fmt.Sprintf("ERROR [%d]: %s", t.pos, t.Value)
	}
	return fmt.Sprintf("%s[%d]: %q", t.Type, t.pos, t.Value)
}
