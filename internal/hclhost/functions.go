package hclhost

import (
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/specialistvlad/fnreg/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// FunctionName maps a registry name to the name HCL code calls it by. It
// reports false for names that cannot be spelled in HCL syntax.
func FunctionName(name string) (string, bool) {
	segments := strings.Split(name, ".")
	for _, s := range segments {
		if !hclsyntax.ValidIdentifier(s) {
			return "", false
		}
	}
	return strings.Join(segments, "::"), true
}

// Functions builds the HCL function table for every entry of t that has a body
// installed and a name HCL can spell. The result is a snapshot; entries
// registered later are not included, but a body replaced later is picked up
// on the next call.
func Functions(t *registry.Table) map[string]function.Function {
	names := t.ListNames()
	funcs := make(map[string]function.Function, len(names))
	for _, name := range names {
		sig, ok := t.Signature(name)
		if !ok {
			continue
		}
		hclName, ok := FunctionName(name)
		if !ok {
			continue
		}
		funcs[hclName] = bridge(t, name, sig)
	}
	return funcs
}

func bridge(t *registry.Table, name, signature string) function.Function {
	return function.New(&function.Spec{
		Description: signature,
		VarParam: &function.Parameter{
			Name:             "args",
			Type:             cty.DynamicPseudoType,
			AllowNull:        true,
			AllowDynamicType: true,
		},
		Type: function.StaticReturnType(cty.DynamicPseudoType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			out, err := t.Call(name, args...)
			if err != nil {
				return cty.NilVal, err
			}
			if out == cty.NilVal {
				return erased.None, nil
			}
			return out, nil
		},
	})
}
