// Package adapt converts natively typed Go functions and method expressions
// into the uniform erased.Func calling convention.
//
// Each constructor is generic over the native signature, so parameter and
// result types are captured at compile time from the value passed in:
//
//	adapt.Func2(func(a, b int) int { return a + b })
//	adapt.Method0(Point.Norm)
//	adapt.RefMethod1((*Point).Scale)
//	adapt.IndirectMethod1[counter.Counter]((*counter.Node).Add)
//
// Adaptation itself cannot fail. Every check happens when the resulting
// function is called: the argument count first, then each argument's
// conversion in order, and only then the native call.
package adapt

import (
	"fmt"

	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/zclconf/go-cty/cty"
)

// Shape identifies how a native callable receives its target.
type Shape int

const (
	// FreeFunction is a plain function; every erased argument is a parameter.
	FreeFunction Shape = iota
	// ValueMethod receives its owner by value in argument 0.
	ValueMethod
	// RefMethod receives a pointer to its owner in argument 0, so mutations
	// made by the method are visible to whoever holds that pointer.
	RefMethod
	// IndirectMethod receives a handle in argument 0 and runs on the payload
	// the handle dereferences to.
	IndirectMethod
)

func (s Shape) String() string {
	switch s {
	case FreeFunction:
		return "function"
	case ValueMethod:
		return "value method"
	case RefMethod:
		return "reference method"
	case IndirectMethod:
		return "indirect method"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Deref is implemented by handle types that resolve to a backing payload.
type Deref[P any] interface {
	Deref() P
}

// Body is an adapted native callable together with what was learned about
// its signature.
type Body struct {
	shape     Shape
	arity     int
	signature string
	call      func(args []cty.Value) (cty.Value, error)
}

func newBody(shape Shape, native any, arity int, call func(args []cty.Value) (cty.Value, error)) Body {
	return Body{
		shape:     shape,
		arity:     arity,
		signature: fmt.Sprintf("%T", native),
		call:      call,
	}
}

// as relabels a body whose mechanics are shared with another shape.
func (b Body) as(shape Shape) Body {
	b.shape = shape
	return b
}

// Shape returns the call shape the body was built from.
func (b Body) Shape() Shape { return b.shape }

// Arity returns the number of erased arguments the body expects, including
// the owner or handle for method shapes.
func (b Body) Arity() int { return b.arity }

// Signature returns the native signature in Go syntax.
func (b Body) Signature() string { return b.signature }

// Func returns the erased form of the body.
func (b Body) Func() erased.Func {
	return func(args ...cty.Value) (ret cty.Value, err error) {
		if len(args) != b.arity {
			return cty.NilVal, &erased.ArityError{Want: b.arity, Got: len(args)}
		}
		defer func() {
			if r := recover(); r != nil {
				ret, err = cty.NilVal, erased.Recovered(r)
			}
		}()
		return b.call(args)
	}
}

// Call invokes the body directly.
func (b Body) Call(args ...cty.Value) (cty.Value, error) {
	return b.Func()(args...)
}
