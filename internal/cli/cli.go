package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/fnreg/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("fnreg", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
fnreg - Call registered Go functions by name from HCL expressions.

Usage:
  fnreg [options] [EXPR]

Arguments:
  EXPR
    An HCL expression to evaluate, e.g. 'math::add(1, 2)'.

Options:
`)
		flagSet.PrintDefaults()
	}

	listFlag := flagSet.Bool("list", false, "List registered functions with their native signatures.")
	evalFlag := flagSet.String("eval", "", "HCL expression to evaluate.")
	eFlag := flagSet.String("e", "", "HCL expression to evaluate (shorthand).")
	fileFlag := flagSet.String("file", "", "Path to an HCL or HCL JSON file whose attributes are evaluated in order.")
	fFlag := flagSet.String("f", "", "Path to an HCL or HCL JSON file (shorthand).")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	expr := ""
	if *evalFlag != "" {
		expr = *evalFlag
	} else if *eFlag != "" {
		expr = *eFlag
	} else if flagSet.NArg() > 0 {
		expr = strings.Join(flagSet.Args(), " ")
	}

	path := *fileFlag
	if path == "" {
		path = *fFlag
	}
	slog.Debug("Actions determined.", "expr", expr, "file", path, "list", *listFlag)

	if expr == "" && path == "" && !*listFlag {
		slog.Debug("Nothing to do, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Expr:      expr,
		FilePath:  path,
		List:      *listFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
