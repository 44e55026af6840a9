package lexer

type stateFn func(*Lexer) stateFn

func lexText(l *Lexer) stateFn {
	// List of runes that just advance one and emit a token.
	singles := map[rune]TokenType{
		'+': TokPlus,
		'-': TokDash,
		'*': TokMultiply,
		'/': TokSlash,
	}

	switch r := l.peek(); {
	case l.atEOF:
		return l.emit(TokEOF)
	case r == ' ' || r == '\t':
		l.acceptRun(" \t")
		l.ignore()
		return lexText
	case r >= '0' && r <= '9':
		return lexNumber
	default:
		if tok, ok := singles[r]; ok {
			l.next()
			return l.emit(tok)
		}
		return l.errorf(r)
	}
}

func lexNumber(l *Lexer) stateFn {
	l.acceptRun(digits)
	if l.peek() == '.' {
		l.next()
		l.acceptRun(digits)
	}
	return l.emitNumber()
}
