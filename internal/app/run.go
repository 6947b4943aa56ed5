package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/fnreg/internal/ctxlog"
	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/specialistvlad/fnreg/internal/hclhost"
)

// Run executes the actions selected in cfg: listing first, then evaluation.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if cfg.List {
		a.list()
	}

	if cfg.Expr != "" {
		val, err := a.host.EvalExpr(ctx, cfg.Expr)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}
		fmt.Fprintln(a.outW, erased.Format(val))
	}

	if cfg.FilePath != "" {
		results, err := a.host.EvalFile(ctx, cfg.FilePath)
		for _, r := range results {
			fmt.Fprintf(a.outW, "%s = %s\n", r.Name, erased.Format(r.Value))
		}
		if err != nil {
			return fmt.Errorf("evaluation of %s failed: %w", cfg.FilePath, err)
		}
		a.logger.Debug("File evaluated.", "path", cfg.FilePath, "attributes", len(results))
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// list prints every registered function with its native signature, using the
// name HCL code calls it by where there is one.
func (a *App) list() {
	type row struct{ name, sig string }

	names := a.table.ListNames()
	rows := make([]row, 0, len(names))
	width := 0
	for _, name := range names {
		sig, ok := a.table.Signature(name)
		if !ok {
			sig = "<no body>"
		}
		if hclName, ok := hclhost.FunctionName(name); ok {
			name = hclName
		}
		width = max(width, len(name))
		rows = append(rows, row{name: name, sig: sig})
	}

	for _, r := range rows {
		fmt.Fprintf(a.outW, "%-*s  %s\n", width, r.name, r.sig)
	}
	a.logger.Debug("Listed registered functions.", "count", len(rows))
}
