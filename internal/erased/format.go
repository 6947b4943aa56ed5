package erased

import (
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/zclconf/go-cty/cty"
)

// Format renders v for display. Plain data is rendered as JSON; handles and
// values that JSON cannot express are rendered as a bracketed marker.
func Format(v cty.Value) string {
	switch {
	case v == cty.NilVal:
		return "<no value>"
	case !v.IsKnown():
		return "<unknown>"
	case v.IsNull():
		return "null"
	case v.Type().IsCapsuleType():
		return "<" + v.Type().FriendlyName() + ">"
	}

	out, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return "<" + v.Type().FriendlyName() + ">"
	}
	return string(out)
}
