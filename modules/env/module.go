// Package env registers functions that read the process environment.
package env

import (
	"os"
	"strings"

	"github.com/specialistvlad/fnreg/internal/adapt"
	"github.com/specialistvlad/fnreg/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// All returns every environment variable as a map.
func All() map[string]string {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}
	return envMap
}

// Lookup returns the value of name, or fallback when it is unset.
func Lookup(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// Register registers the functions with the table.
func (m *Module) Register(t *registry.Table) {
	t.MustRegister("env.get").SetAdaptedBody(adapt.Func1(os.Getenv))
	t.MustRegister("env.lookup").SetAdaptedBody(adapt.Func2(Lookup))
	t.MustRegister("env.all").SetAdaptedBody(adapt.Func0(All))
}
