package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"go.creack.net/gocalc/compiler"
	"go.creack.net/gocalc/config"
	"go.creack.net/gocalc/parser"
	"go.creack.net/gocalc/repl"
	"go.creack.net/gocalc/server"
)

func emitLLVM(expr string, stdout io.Writer) error {
	tree, err := parser.ParseString(expr)
	if err != nil {
		return fmt.Errorf("parse %q: %w", expr, err)
	}
	mod, err := compiler.Compile(tree)
	if err != nil {
		return fmt.Errorf("compile %q: %w", expr, err)
	}
	if _, err := fmt.Fprint(stdout, mod); err != nil {
		return fmt.Errorf("write module: %w", err)
	}
	return nil
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error), overrides the config")
	serve := flag.String("serve", "", "serve sessions over websocket on this address, overrides the config")
	emit := flag.String("emit-llvm", "", "print the LLVM IR of the given expression and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *serve != "" {
		cfg.ListenAddr = *serve
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(cfg.Level()).
		With().Timestamp().Str("component", "gocalc").Logger()

	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	switch {
	case *emit != "":
		err = emitLLVM(*emit, os.Stdout)
	case cfg.ListenAddr != "":
		err = server.New(cfg, logger).ListenAndServe()
	default:
		err = repl.New(cfg, os.Stdin, os.Stdout, logger).Run()
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("gocalc failed")
	}
}
