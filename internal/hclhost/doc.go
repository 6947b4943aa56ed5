// Package hclhost evaluates HCL native-syntax expressions against a
// registry.Table. Every callable entry in the table is exposed to HCL as a
// function; dotted registry names use HCL's namespace separator, so the entry
// "math.add" is called as math::add(1, 2).
//
// The bridge does no type checking of its own: arguments travel as cty values
// into the registered erased.Func, which reports arity and conversion errors.
// Those errors come back out of EvalExpr and EvalFile unwrapped far enough for
// errors.Is to match erased.ErrArityMismatch and friends.
package hclhost
