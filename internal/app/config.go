package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Expr     string // HCL expression to evaluate
	FilePath string // HCL or HCL JSON file to evaluate
	List     bool   // list registered functions

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if !cfg.List && cfg.Expr == "" && cfg.FilePath == "" {
		return nil, errors.New("nothing to do: provide an expression, a file, or -list")
	}
	if cfg.Expr != "" && cfg.FilePath != "" {
		return nil, errors.New("an expression and a file cannot be evaluated in the same run")
	}

	return &cfg, nil
}
