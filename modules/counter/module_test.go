package counter

import (
	"sync"
	"testing"

	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/specialistvlad/fnreg/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func setupTable(t *testing.T) *registry.Table {
	t.Helper()
	tbl := registry.New()
	(&Module{}).Register(tbl)
	return tbl
}

func callInt(t *testing.T, tbl *registry.Table, name string, args ...cty.Value) int {
	t.Helper()
	out, err := tbl.Call(name, args...)
	require.NoError(t, err)
	n, err := erased.From[int](out)
	require.NoError(t, err)
	return n
}

func TestCounter_MutationVisibleThroughHandle(t *testing.T) {
	tbl := setupTable(t)

	h, err := tbl.Call("counter.new", cty.NumberIntVal(10))
	require.NoError(t, err)
	require.True(t, erased.IsHandle(h))

	assert.Equal(t, 15, callInt(t, tbl, "counter.add", h, cty.NumberIntVal(5)))
	assert.Equal(t, 13, callInt(t, tbl, "counter.add", h, cty.NumberIntVal(-2)))
	assert.Equal(t, 13, callInt(t, tbl, "counter.value", h))

	// The native side sees the same state.
	c, err := erased.From[Counter](h)
	require.NoError(t, err)
	assert.Equal(t, 13, c.Deref().Value())

	assert.Equal(t, 13, callInt(t, tbl, "counter.reset", h))
	assert.Equal(t, 0, callInt(t, tbl, "counter.value", h))
}

func TestCounter_HandlesAreIndependent(t *testing.T) {
	tbl := setupTable(t)

	a, err := tbl.Call("counter.new", cty.NumberIntVal(0))
	require.NoError(t, err)
	b, err := tbl.Call("counter.new", cty.NumberIntVal(100))
	require.NoError(t, err)

	callInt(t, tbl, "counter.add", a, cty.NumberIntVal(1))

	assert.Equal(t, 1, callInt(t, tbl, "counter.value", a))
	assert.Equal(t, 100, callInt(t, tbl, "counter.value", b))
}

func TestCounter_RejectsPlainData(t *testing.T) {
	tbl := setupTable(t)

	_, err := tbl.Call("counter.add", cty.NumberIntVal(1), cty.NumberIntVal(1))
	require.ErrorIs(t, err, erased.ErrTypeMismatch)

	var convErr *erased.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, 0, convErr.Index)
}

func TestCounter_ConcurrentAdds(t *testing.T) {
	tbl := setupTable(t)
	h, err := tbl.Call("counter.new", cty.NumberIntVal(0))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, err := tbl.Call("counter.add", h, cty.NumberIntVal(1))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, callInt(t, tbl, "counter.value", h))
}
