package hclhost

import (
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// CalledFunctions returns the sorted, unique names of all functions called
// anywhere inside exprs, nested calls included. Expressions that are not
// native syntax (JSON) are skipped.
func CalledFunctions(exprs ...hcl.Expression) []string {
	seen := make(map[string]struct{})
	for _, expr := range exprs {
		syntaxExpr, ok := expr.(hclsyntax.Expression)
		if !ok {
			continue
		}
		hclsyntax.VisitAll(syntaxExpr, func(node hclsyntax.Node) hcl.Diagnostics {
			if call, ok := node.(*hclsyntax.FunctionCallExpr); ok {
				seen[call.Name] = struct{}{}
			}
			return nil
		})
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
