// Package strfn registers string functions under the "str." prefix.
package strfn

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/fnreg/internal/adapt"
	"github.com/specialistvlad/fnreg/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Text is a string with methods of its own. Plain HCL strings decode into it.
type Text string

// Words splits the text around runs of white space.
func (t Text) Words() []string {
	return strings.Fields(string(t))
}

// Truncate shortens the text to at most n runes, marking the cut with "...".
func (t Text) Truncate(n int) Text {
	r := []rune(string(t))
	if n < 0 || len(r) <= n {
		return t
	}
	return Text(string(r[:n]) + "...")
}

// Concat joins two strings.
func Concat(a, b string) string { return a + b }

// MaxRepeatLen caps the length of a string built by str.repeat.
const MaxRepeatLen = 1 << 20

// Repeat returns s repeated count times.
func Repeat(s string, count int) (string, error) {
	if count < 0 {
		return "", fmt.Errorf("negative repeat count %d", count)
	}
	if count > 0 && len(s) > MaxRepeatLen/count {
		return "", fmt.Errorf("repeating %d bytes %d times exceeds %d bytes", len(s), count, MaxRepeatLen)
	}
	return strings.Repeat(s, count), nil
}

// Register registers the functions with the table.
func (m *Module) Register(t *registry.Table) {
	t.MustRegister("str.upper").SetAdaptedBody(adapt.Func1(strings.ToUpper))
	t.MustRegister("str.lower").SetAdaptedBody(adapt.Func1(strings.ToLower))
	t.MustRegister("str.concat").SetAdaptedBody(adapt.Func2(Concat))
	t.MustRegister("str.join").SetAdaptedBody(adapt.Func2(strings.Join))
	t.MustRegister("str.split").SetAdaptedBody(adapt.Func2(strings.Split))
	t.MustRegister("str.repeat").SetAdaptedBody(adapt.FuncE2(Repeat))
	t.MustRegister("str.words").SetAdaptedBody(adapt.Method0(Text.Words))
	t.MustRegister("str.truncate").SetAdaptedBody(adapt.Method1(Text.Truncate))
}
