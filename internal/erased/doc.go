// Package erased defines the uniform, type-erased calling convention used by
// the function table and everything that calls into it.
//
// Values are carried as cty.Value. Plain data (numbers, strings, bools and
// collections of them) maps onto the matching cty primitive and collection
// types through gocty. Go values that must keep their identity, such as
// handles to mutable objects and nested callables, travel as cty capsules:
// the capsule holds a pointer, so a value decoded from it refers to the same
// object the caller wrapped.
//
// Conversions never panic. A value that cannot be represented in the
// requested native type yields a *ConversionError, which matches
// ErrTypeMismatch with errors.Is.
package erased
