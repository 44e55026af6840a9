// Package repl runs the read/evaluate/print loop of the calculator.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/kr/pretty"
	"github.com/rs/zerolog"

	"go.creack.net/gocalc/config"
	"go.creack.net/gocalc/executor"
	"go.creack.net/gocalc/lexer"
	"go.creack.net/gocalc/parser"
)

// State of a session.
type State int

const (
	StateRunning State = iota
	StateStopped
)

func (s State) String() string {
	if s == StateStopped {
		return "stopped"
	}
	return "running"
}

// Session is one interpreter lifetime, from start until the quit marker
// or the end of input. It is not safe for concurrent use.
type Session struct {
	id     string
	cfg    config.Config
	in     *bufio.Reader
	out    io.Writer
	logger zerolog.Logger

	state State
	lines int // Processed lines, for logging.
}

// New creates a running session reading from in and writing to out.
// in may be nil when the session is only driven through Eval.
func New(cfg config.Config, in io.Reader, out io.Writer, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	s := &Session{
		id:     id,
		cfg:    cfg,
		out:    out,
		logger: logger.With().Str("session", id).Logger(),
		state:  StateRunning,
	}
	if in != nil {
		s.in = bufio.NewReader(in)
	}
	return s
}

func (s *Session) ID() string   { return s.id }
func (s *Session) State() State { return s.state }

// Run processes lines until the quit marker or end of input. Only
// read and write failures are returned, bad expressions never are.
func (s *Session) Run() error {
	if s.in == nil {
		return errors.New("session has no input")
	}
	s.logger.Info().Msg("session started")
	defer func() { s.logger.Info().Int("lines", s.lines).Msg("session ended") }()

	if s.cfg.Banner != "" {
		if _, err := fmt.Fprintln(s.out, s.cfg.Banner); err != nil {
			return fmt.Errorf("write banner: %w", err)
		}
	}

	// Skipped lines print nothing and keep the pending prompt.
	prompted := false
	for s.state == StateRunning {
		if !prompted {
			if _, err := io.WriteString(s.out, s.cfg.Prompt); err != nil {
				return fmt.Errorf("write prompt: %w", err)
			}
			prompted = true
		}
		line, err := s.in.ReadString('\n')
		atEOF := errors.Is(err, io.EOF)
		if err != nil && !atEOF {
			s.state = StateStopped
			return fmt.Errorf("read line: %w", err)
		}
		if atEOF && line == "" {
			s.state = StateStopped
			break
		}

		result, running := s.Eval(strings.TrimRight(line, "\r\n"))
		if result != "" {
			if _, err := fmt.Fprintln(s.out, result); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			prompted = false
		}
		if !running || atEOF {
			s.state = StateStopped
		}
	}
	return nil
}

// Eval handles a single line and returns the text to print after the
// prompt, empty when nothing is printed, and whether the session keeps running.
func (s *Session) Eval(line string) (string, bool) {
	if s.state == StateStopped {
		return "", false
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == s.cfg.QuitMarker {
		s.logger.Debug().Msg("quit marker received")
		s.state = StateStopped
		return "", false
	}
	if trimmed == "" && s.cfg.SkipBlankLines {
		return "", true
	}

	s.lines++
	result, err := s.evaluate(line)
	if err != nil {
		s.logger.Debug().Err(err).Str("line", line).Msg("invalid line")
		return diagnostic(err), true
	}
	return executor.FormatResult(result, s.cfg.Precision), true
}

func (s *Session) evaluate(line string) (float64, error) {
	tokens, err := lexer.Tokenize(line)
	if err != nil {
		return 0, err
	}
	expr, err := parser.Parse(tokens)
	if err != nil {
		return 0, err
	}
	if e := s.logger.Debug(); e.Enabled() {
		e.Str("line", line).Int("tokens", len(tokens)).Str("tree", pretty.Sprint(expr)).Msg("parsed")
	}
	return executor.Evaluate(expr)
}

// diagnostic renders a line failure. Every kind carries "Error" so
// callers can tell it from a number.
func diagnostic(err error) string {
	var (
		lexErr   *lexer.Error
		parseErr *parser.Error
	)
	switch {
	case errors.As(err, &lexErr):
		return "Error: invalid input: " + err.Error()
	case errors.As(err, &parseErr):
		return "Error: invalid expression: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
