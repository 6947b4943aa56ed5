package adapt

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/zclconf/go-cty/cty"
)

// A Go method expression is already a function whose first parameter is the
// receiver, so owner methods share the free-function mechanics. Argument 0 of
// the erased call becomes the receiver.

// Method0 adapts a method expression with a value receiver, such as Point.Norm.
func Method0[T, R any](m func(T) R) Body {
	return Func1(m).as(ValueMethod)
}

// Method1 adapts a one-parameter method expression with a value receiver.
func Method1[T, A1, R any](m func(T, A1) R) Body {
	return Func2(m).as(ValueMethod)
}

// Method2 adapts a two-parameter method expression with a value receiver.
func Method2[T, A1, A2, R any](m func(T, A1, A2) R) Body {
	return Func3(m).as(ValueMethod)
}

// Method3 adapts a three-parameter method expression with a value receiver.
func Method3[T, A1, A2, A3, R any](m func(T, A1, A2, A3) R) Body {
	return Func4(m).as(ValueMethod)
}

// RefMethod0 adapts a method expression with a pointer receiver, such as
// (*Point).Reset. The owner must arrive as a handle for mutations to be
// visible to the caller afterwards; plain data decodes into a fresh copy.
func RefMethod0[T, R any](m func(*T) R) Body {
	return Func1(m).as(RefMethod)
}

// RefMethod1 adapts a one-parameter method expression with a pointer receiver.
func RefMethod1[T, A1, R any](m func(*T, A1) R) Body {
	return Func2(m).as(RefMethod)
}

// RefMethod2 adapts a two-parameter method expression with a pointer receiver.
func RefMethod2[T, A1, A2, R any](m func(*T, A1, A2) R) Body {
	return Func3(m).as(RefMethod)
}

// RefMethod3 adapts a three-parameter method expression with a pointer receiver.
func RefMethod3[T, A1, A2, A3, R any](m func(*T, A1, A2, A3) R) Body {
	return Func4(m).as(RefMethod)
}

// IndirectMethod0 adapts a payload method reached through handle H. The
// erased call takes the handle as its only argument.
func IndirectMethod0[H Deref[P], P, R any](m func(P) R) Body {
	return newIndirect[H](m, 1, func(args []cty.Value) (cty.Value, error) {
		h, err := erased.Arg[H](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.Return(m(h.Deref()))
	})
}

// IndirectMethod1 adapts a one-parameter payload method reached through
// handle H. Only H needs to be spelled out; the payload and parameter types
// are inferred from m:
//
//	adapt.IndirectMethod1[counter.Counter]((*counter.Node).Add)
func IndirectMethod1[H Deref[P], P, A1, R any](m func(P, A1) R) Body {
	return newIndirect[H](m, 2, func(args []cty.Value) (cty.Value, error) {
		h, err := erased.Arg[H](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		a1, err := erased.Arg[A1](args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.Return(m(h.Deref(), a1))
	})
}

// IndirectMethod2 adapts a two-parameter payload method reached through H.
func IndirectMethod2[H Deref[P], P, A1, A2, R any](m func(P, A1, A2) R) Body {
	return newIndirect[H](m, 3, func(args []cty.Value) (cty.Value, error) {
		h, err := erased.Arg[H](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		a1, err := erased.Arg[A1](args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		a2, err := erased.Arg[A2](args, 2)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.Return(m(h.Deref(), a1, a2))
	})
}

// IndirectMethod3 adapts a three-parameter payload method reached through H.
func IndirectMethod3[H Deref[P], P, A1, A2, A3, R any](m func(P, A1, A2, A3) R) Body {
	return newIndirect[H](m, 4, func(args []cty.Value) (cty.Value, error) {
		h, err := erased.Arg[H](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		a1, err := erased.Arg[A1](args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		a2, err := erased.Arg[A2](args, 2)
		if err != nil {
			return cty.NilVal, err
		}
		a3, err := erased.Arg[A3](args, 3)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.Return(m(h.Deref(), a1, a2, a3))
	})
}

func newIndirect[H any](m any, arity int, call func(args []cty.Value) (cty.Value, error)) Body {
	b := newBody(IndirectMethod, m, arity, call)
	b.signature = fmt.Sprintf("%s via %s", b.signature, reflect.TypeFor[H]())
	return b
}
