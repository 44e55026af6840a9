// Package lexer splits one line of arithmetic into tokens.
package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const digits = "0123456789"

// ErrUnexpectedChar is wrapped by every Error produced by the lexer.
var ErrUnexpectedChar = errors.New("unexpected character")

// Error is returned when a character can't start a token.
type Error struct {
	Char rune
	Pos  int // 1-based column.
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q at column %d", e.Err, e.Char, e.Pos)
}

func (e *Error) Unwrap() error { return e.Err }

type Lexer struct {
	input string

	curToken Token
	err      *Error

	atEOF bool

	pos   int // Current position in input.
	start int // Position of the start of the current token.
}

// New creates a new Lexer for the given line.
func New(input string) *Lexer {
	return &Lexer{
		input: strings.TrimSuffix(input, "\r"),
	}
}

// NextToken returns the next token. Once the input is exhausted or
// an error was hit, it keeps returning EOF or the same error token.
func (l *Lexer) NextToken() Token {
	l.curToken = Token{Type: TokEOF, Value: "EOF", pos: l.pos + 1}
	state := lexText
	for {
		state = state(l)
		if state == nil {
			return l.curToken
		}
	}
}

// Err returns the error hit by the lexer, if any.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// Tokenize returns every token of the line, terminated by a single EOF token.
func Tokenize(line string) ([]Token, error) {
	l := New(line)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokError {
			return nil, l.Err()
		}
		tokens = append(tokens, tok)
		if tok.Type == TokEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.atEOF = true
		return 0
	}
	r, n := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += n
	return r
}

func (l *Lexer) backup() {
	// If we reached eof, we can't back up.
	// If we are at the beginning of the input, we can't back up.
	if l.atEOF || l.pos == 0 {
		return
	}
	_, n := utf8.DecodeLastRuneInString(l.input[:l.pos])
	l.pos -= n
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *Lexer) acceptRun(valid string) bool {
	accepted := false
	for strings.ContainsRune(valid, l.next()) {
		accepted = true
	}
	l.backup()
	return accepted
}

func (l *Lexer) thisToken(tt TokenType) Token {
	t := Token{
		Type:  tt,
		Value: l.input[l.start:l.pos],
		pos:   l.start + 1,
	}
	l.start = l.pos
	return t
}

func (l *Lexer) emitToken(t Token) stateFn {
	l.curToken = t
	return nil
}

func (l *Lexer) emit(tt TokenType) stateFn {
	return l.emitToken(l.thisToken(tt))
}

func (l *Lexer) ignore() {
	l.start = l.pos
}

func (l *Lexer) errorf(r rune) stateFn {
	l.err = &Error{Char: r, Pos: l.pos + 1, Err: ErrUnexpectedChar}
	l.curToken = Token{
		Type:  TokError,
		Value: l.err.Error(),
		pos:   l.pos + 1,
	}
	// Drop the rest of the input so that subsequent calls are stable.
	l.start = 0
	l.pos = 0
	l.input = l.input[:0]
	l.atEOF = true
	return nil
}

func (l *Lexer) emitNumber() stateFn {
	tok := l.thisToken(TokNumber)
	// Out of range literals become ±Inf and are kept as is.
	n, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Only reachable with a malformed literal, which lexNumber never produces.
		r, _ := utf8.DecodeRuneInString(tok.Value)
		return l.errorf(r)
	}
	tok.Number = n
	return l.emitToken(tok)
}
