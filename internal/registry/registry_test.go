package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/fnreg/internal/adapt"
	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"pgregory.net/rapid"
)

// constant returns a raw body that ignores its arguments.
func constant(v cty.Value) erased.Func {
	return func(args ...cty.Value) (cty.Value, error) {
		return v, nil
	}
}

func callInt(t *testing.T, tbl *Table, name string, args ...cty.Value) int {
	t.Helper()
	out, err := tbl.Call(name, args...)
	require.NoError(t, err)
	n, err := erased.From[int](out)
	require.NoError(t, err)
	return n
}

func TestGet_NeverRegistered(t *testing.T) {
	tbl := New()

	f, ok := tbl.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, f)
}

func TestGet_RegisteredWithoutBody(t *testing.T) {
	tbl := New()
	tbl.MustRegister("pending")

	_, ok := tbl.Get("pending")
	assert.False(t, ok, "an entry without a body is not callable")
	assert.Equal(t, []string{"pending"}, tbl.ListNames())

	_, err := tbl.Call("pending")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegister_EmptyName(t *testing.T) {
	tbl := New()

	h, err := tbl.Register("", false)
	require.ErrorIs(t, err, ErrInvalidName)
	assert.Nil(t, h)
	assert.Zero(t, tbl.Len())
}

func TestRegister_Duplicate(t *testing.T) {
	tbl := New()
	tbl.MustRegister("f").SetBody(constant(cty.NumberIntVal(1)))

	h, err := tbl.Register("f", false)
	require.ErrorIs(t, err, ErrDuplicateRegistration)
	assert.Nil(t, h)
	assert.Contains(t, err.Error(), `"f"`)

	// The failed attempt leaves the original body in place.
	assert.Equal(t, 1, callInt(t, tbl, "f"))
}

func TestMustRegister_DuplicatePanics(t *testing.T) {
	tbl := New()
	tbl.MustRegister("f")

	assert.PanicsWithValue(t, `registry: function already registered: "f"`, func() {
		tbl.MustRegister("f")
	})
}

func TestRegister_OverrideReplacesBody(t *testing.T) {
	tbl := New()
	tbl.MustRegister("f").SetBody(constant(cty.NumberIntVal(1)))
	old, ok := tbl.Get("f")
	require.True(t, ok)

	h, err := tbl.Register("f", true)
	require.NoError(t, err)
	h.SetBody(constant(cty.NumberIntVal(2)))

	assert.Equal(t, 2, callInt(t, tbl, "f"))
	assert.Equal(t, []string{"f"}, tbl.ListNames(), "override must not add a second entry")

	// A body fetched before the override keeps its old behavior.
	out, err := old()
	require.NoError(t, err)
	assert.True(t, out.RawEquals(cty.NumberIntVal(1)))
}

func TestRegister_OverrideOfAbsentNameCreatesEntry(t *testing.T) {
	tbl := New()
	tbl.MustOverride("fresh").SetBody(constant(cty.StringVal("ok")))

	out, err := tbl.Call("fresh")
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("ok"), out)
}

func TestRemove(t *testing.T) {
	tbl := New()
	tbl.MustRegister("f").SetBody(constant(cty.True))

	assert.True(t, tbl.Remove("f"))
	_, ok := tbl.Get("f")
	assert.False(t, ok)
	assert.False(t, tbl.Remove("f"), "second remove reports absence")
	assert.Empty(t, tbl.ListNames())
}

func TestRemove_ThenRegisterAgain(t *testing.T) {
	tbl := New()
	tbl.MustRegister("f").SetBody(constant(cty.NumberIntVal(1)))
	require.True(t, tbl.Remove("f"))

	// The name is free again, so no override is needed.
	tbl.MustRegister("f").SetBody(constant(cty.NumberIntVal(2)))
	assert.Equal(t, 2, callInt(t, tbl, "f"))
}

func TestListNames_AfterRemove(t *testing.T) {
	tbl := New()
	for _, name := range []string{"a", "b", "c"} {
		tbl.MustRegister(name).SetBody(constant(cty.StringVal(name)))
	}
	require.True(t, tbl.Remove("b"))

	got := tbl.ListNames()
	if diff := cmp.Diff([]string{"a", "c"}, got, cmpopts.SortSlices(func(x, y string) bool { return x < y })); diff != "" {
		t.Errorf("ListNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestListNames_IsSnapshot(t *testing.T) {
	tbl := New()
	tbl.MustRegister("a")
	names := tbl.ListNames()

	tbl.MustRegister("b")
	names[0] = "mutated"

	assert.Equal(t, []string{"mutated"}, names)
	assert.Equal(t, []string{"a", "b"}, tbl.ListNames())
}

func TestHandle_ChainingLastBodyWins(t *testing.T) {
	tbl := New()
	h := tbl.MustRegister("f").
		SetBody(constant(cty.NumberIntVal(1))).
		SetBody(constant(cty.NumberIntVal(2)))

	assert.Equal(t, "f", h.Name())
	assert.Equal(t, 2, callInt(t, tbl, "f"))
}

func TestSignature(t *testing.T) {
	tbl := New()
	tbl.MustRegister("add").SetAdaptedBody(adapt.Func2(func(a, b int) int { return a + b }))
	tbl.MustRegister("raw").SetBody(constant(erased.None))
	tbl.MustRegister("empty")

	sig, ok := tbl.Signature("add")
	require.True(t, ok)
	assert.Equal(t, "func(int, int) int", sig)

	sig, ok = tbl.Signature("raw")
	require.True(t, ok)
	assert.Equal(t, RawSignature, sig)

	_, ok = tbl.Signature("empty")
	assert.False(t, ok)
	_, ok = tbl.Signature("missing")
	assert.False(t, ok)
}

func TestCall_AdaptedFunction(t *testing.T) {
	tbl := New()
	tbl.MustRegister("add").SetAdaptedBody(adapt.Func2(func(a, b int) int { return a + b }))

	assert.Equal(t, 7, callInt(t, tbl, "add", cty.NumberIntVal(3), cty.NumberIntVal(4)))

	_, err := tbl.Call("add", cty.NumberIntVal(3))
	require.ErrorIs(t, err, erased.ErrArityMismatch)

	_, err = tbl.Call("add", cty.StringVal("x"), cty.NumberIntVal(4))
	require.ErrorIs(t, err, erased.ErrTypeMismatch)
}

func TestCall_NotFound(t *testing.T) {
	tbl := New()

	_, err := tbl.Call("nope")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestCall_BodyMayReenterTable(t *testing.T) {
	tbl := New()
	tbl.MustRegister("inner").SetBody(constant(cty.NumberIntVal(41)))
	tbl.MustRegister("outer").SetBody(func(args ...cty.Value) (cty.Value, error) {
		v, err := tbl.Call("inner")
		if err != nil {
			return cty.NilVal, err
		}
		tbl.MustOverride("inner").SetBody(constant(cty.NumberIntVal(0)))
		return v.Add(cty.NumberIntVal(1)), nil
	})

	assert.Equal(t, 42, callInt(t, tbl, "outer"))
	assert.Equal(t, 0, callInt(t, tbl, "inner"))
}

func TestClear(t *testing.T) {
	tbl := New()
	tbl.MustRegister("a").SetBody(constant(cty.True))
	tbl.MustRegister("b")
	require.Equal(t, 2, tbl.Len())

	tbl.Clear()

	assert.Zero(t, tbl.Len())
	assert.Empty(t, tbl.ListNames())
	_, ok := tbl.Get("a")
	assert.False(t, ok)
	tbl.MustRegister("a")
}

// Package-level declarative registration into the process-wide table.
var _ = Global().MustRegister("registry_test.greeting").
	SetAdaptedBody(adapt.Func1(func(name string) string { return "hello, " + name }))

func TestGlobal(t *testing.T) {
	require.Same(t, Global(), Global())

	out, err := Global().Call("registry_test.greeting", cty.StringVal("gopher"))
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("hello, gopher"), out)

	assert.NotSame(t, Global(), New(), "explicit tables are independent")
}

func TestConcurrentRegister_DisjointNames(t *testing.T) {
	const (
		workers   = 16
		perWorker = 64
	)
	tbl := New()

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				name := fmt.Sprintf("w%d.f%d", w, i)
				h, err := tbl.Register(name, false)
				if err != nil {
					errs <- err
					continue
				}
				h.SetBody(constant(cty.NumberIntVal(int64(w*perWorker + i))))
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected registration error: %v", err)
	}
	require.Equal(t, workers*perWorker, tbl.Len())
	require.Len(t, tbl.ListNames(), workers*perWorker)
	for w := range workers {
		for i := range perWorker {
			assert.Equal(t, w*perWorker+i, callInt(t, tbl, fmt.Sprintf("w%d.f%d", w, i)))
		}
	}
}

func TestConcurrentRegister_SameNameExactlyOneWins(t *testing.T) {
	const workers = 32
	tbl := New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
		dupes   int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tbl.Register("contended", false)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case errors.Is(err, ErrDuplicateRegistration):
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, workers-1, dupes)
}

func TestConcurrentCallsAndOverrides(t *testing.T) {
	tbl := New()
	tbl.MustRegister("f").SetBody(constant(cty.NumberIntVal(0)))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 100 {
				_, err := tbl.Call("f")
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			for range 100 {
				tbl.MustOverride("f").SetBody(constant(cty.NumberIntVal(int64(i))))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"f"}, tbl.ListNames())
}

func TestProperty_DistinctNamesAreIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z][a-z0-9_.]{0,8}`), 2, 12, rapid.ID[string]).Draw(t, "names")
		probe := names[0]
		others := names[1:]

		tbl := New()
		tbl.MustRegister(probe).SetBody(constant(cty.StringVal(probe)))
		before, ok := tbl.Get(probe)
		require.True(t, ok)

		for _, name := range others {
			if rapid.Bool().Draw(t, "register "+name) {
				tbl.MustRegister(name).SetBody(constant(cty.StringVal(name)))
				if rapid.Bool().Draw(t, "remove "+name) {
					require.True(t, tbl.Remove(name))
				}
			}
		}

		after, ok := tbl.Get(probe)
		require.True(t, ok)
		want, _ := before()
		got, err := after()
		require.NoError(t, err)
		require.True(t, got.RawEquals(want))
		require.Contains(t, tbl.ListNames(), probe)
	})
}

func TestProperty_OperationsMatchModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tbl := New()
		model := map[string]int64{}
		name := rapid.SampledFrom([]string{"a", "b", "c", "d"})

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := range steps {
			n := name.Draw(t, "name")
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				h, err := tbl.Register(n, false)
				if _, exists := model[n]; exists {
					require.ErrorIs(t, err, ErrDuplicateRegistration)
					continue
				}
				require.NoError(t, err)
				h.SetBody(constant(cty.NumberIntVal(int64(i))))
				model[n] = int64(i)
			case 1:
				tbl.MustOverride(n).SetBody(constant(cty.NumberIntVal(int64(i))))
				model[n] = int64(i)
			case 2:
				_, exists := model[n]
				require.Equal(t, exists, tbl.Remove(n))
				delete(model, n)
			case 3:
				f, ok := tbl.Get(n)
				want, exists := model[n]
				require.Equal(t, exists, ok)
				if ok {
					got, err := f()
					require.NoError(t, err)
					require.True(t, got.RawEquals(cty.NumberIntVal(want)))
				}
			}
		}

		require.Equal(t, len(model), tbl.Len())
		require.ElementsMatch(t, keys(model), tbl.ListNames())
	})
}

func keys(m map[string]int64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
