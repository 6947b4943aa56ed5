package erased

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// From converts an erased value into the native type T.
//
// A cty.Value target receives v unchanged and an `any` target receives the
// natural Go form produced by Native. Capsules decode only into the Go type
// they were created from (or a pointer to it), preserving identity. Everything
// else goes through gocty, which rejects lossy conversions such as a
// fractional number into an int.
func From[T any](v cty.Value) (T, error) {
	var out T

	switch target := any(&out).(type) {
	case *cty.Value:
		*target = v
		return out, nil
	case *any:
		native, err := Native(v)
		if err != nil {
			return out, mismatch[T](v, err)
		}
		*target = native
		return out, nil
	}

	if v == cty.NilVal {
		return out, mismatch[T](v, nil)
	}
	if !v.IsKnown() {
		return out, mismatch[T](v, fmt.Errorf("value must be known"))
	}

	ty := v.Type()
	if ty.IsCapsuleType() {
		if v.IsNull() {
			return out, nil
		}
		enc := v.EncapsulatedValue()
		if p, ok := enc.(*T); ok {
			return *p, nil
		}
		if x, ok := enc.(T); ok {
			return x, nil
		}
		return out, mismatch[T](v, nil)
	}

	// gocty decodes into Go collections only from the exactly matching cty
	// collection kind, so tuples and objects are first reshaped into the type
	// implied by the target.
	structural := ty.IsTupleType() || ty.IsObjectType() || ty.IsSetType() || ty.IsListType() || ty.IsMapType()
	if structural && reflect.TypeFor[T]().Kind() != reflect.Interface {
		if want, err := gocty.ImpliedType(out); err == nil && !want.Equals(ty) {
			converted, err := convert.Convert(v, want)
			if err != nil {
				return out, mismatch[T](v, err)
			}
			v = converted
		}
	}

	if err := gocty.FromCtyValue(v, &out); err != nil {
		return out, mismatch[T](v, err)
	}
	return out, nil
}

// To converts a native value into its erased form.
//
// Registered handle types become capsules. Any other pointer, function or
// channel is rejected rather than flattened, since copying it into plain data
// would silently drop its identity.
func To[T any](x T) (cty.Value, error) {
	switch x := any(x).(type) {
	case cty.Value:
		return x, nil
	case Func:
		return FuncVal(x), nil
	case nil:
		return None, nil
	}

	if ty, ok := HandleTypeOf[T](); ok {
		return cty.CapsuleVal(ty, &x), nil
	}

	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return cty.NilVal, &ConversionError{
			Index: ValueIndex,
			Want:  "erased value",
			Got:   typeName[T](),
			Err:   fmt.Errorf("%s is not a registered handle type", typeName[T]()),
		}
	}

	ty, err := gocty.ImpliedType(x)
	if err != nil {
		return cty.NilVal, &ConversionError{Index: ValueIndex, Want: "erased value", Got: typeName[T](), Err: err}
	}
	v, err := gocty.ToCtyValue(x, ty)
	if err != nil {
		return cty.NilVal, &ConversionError{Index: ValueIndex, Want: ty.FriendlyName(), Got: typeName[T](), Err: err}
	}
	return v, nil
}

// Arg converts args[i] into T, positioning any error at argument i.
func Arg[T any](args []cty.Value, i int) (T, error) {
	x, err := From[T](args[i])
	if err != nil {
		return x, at(err, i)
	}
	return x, nil
}

// Return converts a native result into its erased form, positioning any error
// at the return value.
func Return[T any](x T) (cty.Value, error) {
	v, err := To(x)
	if err != nil {
		return cty.NilVal, at(err, ReturnIndex)
	}
	return v, nil
}

// ReturnE is Return for natives that also report an error. The native error
// is passed through untouched.
func ReturnE[T any](x T, err error) (cty.Value, error) {
	if err != nil {
		return cty.NilVal, err
	}
	return Return(x)
}

// Native recursively converts v to its most natural Go counterpart: nil,
// string, float64, bool, []any, map[string]any, or the value held by a
// capsule.
func Native(v cty.Value) (any, error) {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsCapsuleType():
		return reflect.ValueOf(v.EncapsulatedValue()).Elem().Interface(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			native, err := Native(ev)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, ev := it.Element()
			native, err := Native(ev)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}

func mismatch[T any](v cty.Value, err error) *ConversionError {
	return &ConversionError{Index: ValueIndex, Want: typeName[T](), Got: describe(v), Err: err}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func describe(v cty.Value) string {
	switch {
	case v == cty.NilVal:
		return "no value"
	case !v.IsKnown():
		return "unknown " + v.Type().FriendlyName()
	case v.IsNull():
		return "null"
	}
	return v.Type().FriendlyName()
}
