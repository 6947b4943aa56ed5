// Package print registers a variadic print function. It is installed as a raw
// erased body since it accepts any number of arguments of any type.
package print

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/specialistvlad/fnreg/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Out receives printed lines. Defaults to os.Stdout.
	Out io.Writer
}

// Print returns a body that writes its arguments to w on one line, separated by
// spaces, and returns no value.
func Print(w io.Writer) erased.Func {
	return func(args ...cty.Value) (cty.Value, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			if arg.Type() == cty.String && arg.IsKnown() && !arg.IsNull() {
				parts[i] = arg.AsString()
				continue
			}
			parts[i] = erased.Format(arg)
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return cty.NilVal, fmt.Errorf("failed to print: %w", err)
		}
		return erased.None, nil
	}
}

// Register registers the function with the table.
func (m *Module) Register(t *registry.Table) {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	t.MustRegister("print").SetBody(Print(out))
}
