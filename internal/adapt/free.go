package adapt

import (
	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/zclconf/go-cty/cty"
)

// Func0 adapts a function of no arguments.
func Func0[R any](fn func() R) Body {
	return newBody(FreeFunction, fn, 0, func(args []cty.Value) (cty.Value, error) {
		return erased.Return(fn())
	})
}

// Func1 adapts a one-argument function.
func Func1[A1, R any](fn func(A1) R) Body {
	return newBody(FreeFunction, fn, 1, func(args []cty.Value) (cty.Value, error) {
		a1, err := erased.Arg[A1](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.Return(fn(a1))
	})
}

// Func2 adapts a two-argument function.
func Func2[A1, A2, R any](fn func(A1, A2) R) Body {
	return newBody(FreeFunction, fn, 2, func(args []cty.Value) (cty.Value, error) {
		a1, err := erased.Arg[A1](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		a2, err := erased.Arg[A2](args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.Return(fn(a1, a2))
	})
}

// Func3 adapts a three-argument function.
func Func3[A1, A2, A3, R any](fn func(A1, A2, A3) R) Body {
	return newBody(FreeFunction, fn, 3, func(args []cty.Value) (cty.Value, error) {
		a1, err := erased.Arg[A1](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		a2, err := erased.Arg[A2](args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		a3, err := erased.Arg[A3](args, 2)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.Return(fn(a1, a2, a3))
	})
}

// Func4 adapts a four-argument function.
func Func4[A1, A2, A3, A4, R any](fn func(A1, A2, A3, A4) R) Body {
	return newBody(FreeFunction, fn, 4, func(args []cty.Value) (cty.Value, error) {
		a1, err := erased.Arg[A1](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		a2, err := erased.Arg[A2](args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		a3, err := erased.Arg[A3](args, 2)
		if err != nil {
			return cty.NilVal, err
		}
		a4, err := erased.Arg[A4](args, 3)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.Return(fn(a1, a2, a3, a4))
	})
}

// FuncE0 adapts a function of no arguments that can fail.
func FuncE0[R any](fn func() (R, error)) Body {
	return newBody(FreeFunction, fn, 0, func(args []cty.Value) (cty.Value, error) {
		return erased.ReturnE(fn())
	})
}

// FuncE1 adapts a one-argument function that can fail. The native error is
// returned to the caller unchanged.
func FuncE1[A1, R any](fn func(A1) (R, error)) Body {
	return newBody(FreeFunction, fn, 1, func(args []cty.Value) (cty.Value, error) {
		a1, err := erased.Arg[A1](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.ReturnE(fn(a1))
	})
}

// FuncE2 adapts a two-argument function that can fail.
func FuncE2[A1, A2, R any](fn func(A1, A2) (R, error)) Body {
	return newBody(FreeFunction, fn, 2, func(args []cty.Value) (cty.Value, error) {
		a1, err := erased.Arg[A1](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		a2, err := erased.Arg[A2](args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.ReturnE(fn(a1, a2))
	})
}

// FuncE3 adapts a three-argument function that can fail.
func FuncE3[A1, A2, A3, R any](fn func(A1, A2, A3) (R, error)) Body {
	return newBody(FreeFunction, fn, 3, func(args []cty.Value) (cty.Value, error) {
		a1, err := erased.Arg[A1](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		a2, err := erased.Arg[A2](args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		a3, err := erased.Arg[A3](args, 2)
		if err != nil {
			return cty.NilVal, err
		}
		return erased.ReturnE(fn(a1, a2, a3))
	})
}

// Proc0 adapts a function with no arguments and no result.
func Proc0(fn func()) Body {
	return newBody(FreeFunction, fn, 0, func(args []cty.Value) (cty.Value, error) {
		fn()
		return erased.None, nil
	})
}

// Proc1 adapts a one-argument function with no result.
func Proc1[A1 any](fn func(A1)) Body {
	return newBody(FreeFunction, fn, 1, func(args []cty.Value) (cty.Value, error) {
		a1, err := erased.Arg[A1](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		fn(a1)
		return erased.None, nil
	})
}

// Proc2 adapts a two-argument function with no result.
func Proc2[A1, A2 any](fn func(A1, A2)) Body {
	return newBody(FreeFunction, fn, 2, func(args []cty.Value) (cty.Value, error) {
		a1, err := erased.Arg[A1](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		a2, err := erased.Arg[A2](args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		fn(a1, a2)
		return erased.None, nil
	})
}

// Proc3 adapts a three-argument function with no result.
func Proc3[A1, A2, A3 any](fn func(A1, A2, A3)) Body {
	return newBody(FreeFunction, fn, 3, func(args []cty.Value) (cty.Value, error) {
		a1, err := erased.Arg[A1](args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		a2, err := erased.Arg[A2](args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		a3, err := erased.Arg[A3](args, 2)
		if err != nil {
			return cty.NilVal, err
		}
		fn(a1, a2, a3)
		return erased.None, nil
	})
}
