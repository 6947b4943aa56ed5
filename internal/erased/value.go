package erased

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/zclconf/go-cty/cty"
)

// Func is the uniform calling convention. Every registered function, whatever
// its native signature, is invoked through this shape.
type Func func(args ...cty.Value) (cty.Value, error)

// None is the erased "no value", returned by functions without a result.
var None = cty.NullVal(cty.DynamicPseudoType)

var (
	handlesMu sync.Mutex
	handles   = make(map[reflect.Type]cty.Type)
)

// FuncType is the capsule type carrying a nested Func.
var FuncType = RegisterHandle[Func]("function")

// FuncVal wraps f so it can be passed as an argument or returned as a result.
func FuncVal(f Func) cty.Value {
	return cty.CapsuleVal(FuncType, &f)
}

// RegisterHandle declares T as an opaque handle type and returns the capsule
// type used to carry it. Registering the same Go type again returns the type
// created the first time, so capsule identity is stable per Go type.
func RegisterHandle[T any](name string) cty.Type {
	rt := reflect.TypeFor[T]()

	handlesMu.Lock()
	defer handlesMu.Unlock()

	if ty, ok := handles[rt]; ok {
		return ty
	}
	ty := cty.Capsule(name, rt)
	handles[rt] = ty
	return ty
}

// HandleTypeOf returns the capsule type registered for T, if any.
func HandleTypeOf[T any]() (cty.Type, bool) {
	rt := reflect.TypeFor[T]()

	handlesMu.Lock()
	defer handlesMu.Unlock()

	ty, ok := handles[rt]
	return ty, ok
}

// Handle wraps x in its handle capsule, registering T under its Go type name
// when it has not been registered yet.
func Handle[T any](x T) cty.Value {
	ty, ok := HandleTypeOf[T]()
	if !ok {
		ty = RegisterHandle[T](fmt.Sprintf("%v", reflect.TypeFor[T]()))
	}
	return cty.CapsuleVal(ty, &x)
}

// IsHandle reports whether v carries an opaque handle or a nested function.
func IsHandle(v cty.Value) bool {
	return v != cty.NilVal && v.Type().IsCapsuleType()
}
