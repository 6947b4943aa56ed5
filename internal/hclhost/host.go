package hclhost

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/fnreg/internal/ctxlog"
	"github.com/specialistvlad/fnreg/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// ErrUnknownFunction is returned when an expression calls a function that is
// not registered. All unknown names are reported together.
var ErrUnknownFunction = errors.New("call to unknown function")

// CallError reports a failure returned by a registered function during
// evaluation. It unwraps to the function's own error.
type CallError struct {
	Function string
	Range    *hcl.Range
	Err      error
}

func (e *CallError) Error() string {
	if e.Range != nil {
		return fmt.Sprintf("%s: call to %s failed: %v", e.Range, e.Function, e.Err)
	}
	return fmt.Sprintf("call to %s failed: %v", e.Function, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Result is one evaluated attribute of a file.
type Result struct {
	Name  string
	Value cty.Value
}

// Host evaluates HCL against a registry table.
type Host struct {
	table *registry.Table
}

// New creates a host that resolves function calls in t.
func New(t *registry.Table) *Host {
	return &Host{table: t}
}

// EvalExpr parses and evaluates a single native-syntax expression.
func (h *Host) EvalExpr(ctx context.Context, src string) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Evaluating expression.", "src", src)

	expr, diags := hclsyntax.ParseExpression([]byte(src), "<expr>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to parse expression: %w", diags)
	}

	funcs := Functions(h.table)
	if err := checkCalls(funcs, expr); err != nil {
		return cty.NilVal, err
	}

	val, diags := expr.Value(&hcl.EvalContext{Functions: funcs})
	if diags.HasErrors() {
		return cty.NilVal, diagnosticsError(diags)
	}
	return val, nil
}

// EvalFile evaluates every attribute of an HCL file. Files ending in .json are
// read as HCL JSON. See EvalSource for the evaluation rules.
func (h *Host) EvalFile(ctx context.Context, path string) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Evaluating file.", "path", path)

	parser := hclparse.NewParser()
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		file, diags = parser.ParseJSONFile(path)
	} else {
		file, diags = parser.ParseHCLFile(path)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}
	return h.evalBody(ctx, file.Body)
}

// EvalSource evaluates every attribute of src, which must be a flat HCL body
// with no blocks. Attributes are evaluated in source order and each one may
// refer to the attributes above it by name.
func (h *Host) EvalSource(ctx context.Context, filename string, src []byte) ([]Result, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	return h.evalBody(ctx, file.Body)
}

func (h *Host) evalBody(ctx context.Context, body hcl.Body) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)

	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read attributes: %w", diags)
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	exprs := make([]hcl.Expression, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
		exprs = append(exprs, attr.Expr)
	}
	slices.SortFunc(ordered, func(a, b *hcl.Attribute) int {
		return a.Range.Start.Byte - b.Range.Start.Byte
	})

	funcs := Functions(h.table)
	if err := checkCalls(funcs, exprs...); err != nil {
		return nil, err
	}

	evalCtx := &hcl.EvalContext{
		Variables: make(map[string]cty.Value, len(ordered)),
		Functions: funcs,
	}
	results := make([]Result, 0, len(ordered))
	for _, attr := range ordered {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return results, fmt.Errorf("attribute %q: %w", attr.Name, diagnosticsError(diags))
		}
		logger.Debug("Attribute evaluated.", "name", attr.Name, "type", val.Type().FriendlyName())
		evalCtx.Variables[attr.Name] = val
		results = append(results, Result{Name: attr.Name, Value: val})
	}
	return results, nil
}

func checkCalls(funcs map[string]function.Function, exprs ...hcl.Expression) error {
	var missing []string
	for _, name := range CalledFunctions(exprs...) {
		if _, ok := funcs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownFunction, strings.Join(missing, ", "))
	}
	return nil
}

// diagnosticsError prefers the error returned by a registered function over
// HCL's rendering of it, so callers can match it with errors.Is.
func diagnosticsError(diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		// JSON bodies are not covered by checkCalls.
		if unknown, ok := hcl.DiagnosticExtra[hclsyntax.FunctionCallUnknownDiagExtra](d); ok {
			return fmt.Errorf("%w: %s", ErrUnknownFunction, unknown.CalledFunctionNamespace()+unknown.CalledFunctionName())
		}
		extra, ok := hcl.DiagnosticExtra[hclsyntax.FunctionCallDiagExtra](d)
		if ok && extra.FunctionCallError() != nil {
			return &CallError{
				Function: extra.CalledFunctionName(),
				Range:    d.Subject,
				Err:      extra.FunctionCallError(),
			}
		}
	}
	return diags
}
