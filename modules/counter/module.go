// Package counter registers a stateful counter reached through a handle. The
// counter functions take the handle as their first argument and operate on
// the shared state behind it.
package counter

import (
	"sync"

	"github.com/specialistvlad/fnreg/internal/adapt"
	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/specialistvlad/fnreg/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Node holds the counter state.
type Node struct {
	mu    sync.Mutex
	value int
}

// Add increases the counter by delta and returns the new value.
func (n *Node) Add(delta int) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.value += delta
	return n.value
}

// Value returns the current value.
func (n *Node) Value() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

// Reset sets the counter back to zero and returns the value it had.
func (n *Node) Reset() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	prev := n.value
	n.value = 0
	return prev
}

// Counter is the handle passed around by callers. Copies share one Node.
type Counter struct {
	node *Node
}

// New returns a handle to a fresh counter starting at start.
func New(start int) Counter {
	return Counter{node: &Node{value: start}}
}

// Deref returns the counter state.
func (c Counter) Deref() *Node {
	return c.node
}

func init() {
	erased.RegisterHandle[Counter]("counter")
}

// Register registers the functions with the table.
func (m *Module) Register(t *registry.Table) {
	t.MustRegister("counter.new").SetAdaptedBody(adapt.Func1(New))
	t.MustRegister("counter.add").SetAdaptedBody(adapt.IndirectMethod1[Counter]((*Node).Add))
	t.MustRegister("counter.value").SetAdaptedBody(adapt.IndirectMethod0[Counter]((*Node).Value))
	t.MustRegister("counter.reset").SetAdaptedBody(adapt.IndirectMethod0[Counter]((*Node).Reset))
}
