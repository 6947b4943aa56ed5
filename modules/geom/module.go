// Package geom registers 2D point functions. Value methods accept plain
// objects such as {x = 3, y = 4}; pointer methods need a point handle from
// geom.new so that their changes stick.
package geom

import (
	"math"

	"github.com/specialistvlad/fnreg/internal/adapt"
	"github.com/specialistvlad/fnreg/internal/erased"
	"github.com/specialistvlad/fnreg/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Point is a 2D point.
type Point struct {
	X float64 `cty:"x"`
	Y float64 `cty:"y"`
}

// Norm returns the distance from the origin.
func (p Point) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Get returns a copy of the point as plain data.
func (p *Point) Get() Point { return *p }

// Scale multiplies both coordinates by k and returns the result.
func (p *Point) Scale(k float64) Point {
	p.X *= k
	p.Y *= k
	return *p
}

// Translate moves the point by (dx, dy) and returns the result.
func (p *Point) Translate(dx, dy float64) Point {
	p.X += dx
	p.Y += dy
	return *p
}

// New returns a point handle.
func New(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

func init() {
	erased.RegisterHandle[*Point]("point")
}

// Register registers the functions with the table.
func (m *Module) Register(t *registry.Table) {
	t.MustRegister("geom.new").SetAdaptedBody(adapt.Func2(New))
	t.MustRegister("geom.norm").SetAdaptedBody(adapt.Method0(Point.Norm))
	t.MustRegister("geom.dot").SetAdaptedBody(adapt.Method1(Point.Dot))
	t.MustRegister("geom.add").SetAdaptedBody(adapt.Method1(Point.Add))
	t.MustRegister("geom.get").SetAdaptedBody(adapt.RefMethod0((*Point).Get))
	t.MustRegister("geom.scale").SetAdaptedBody(adapt.RefMethod1((*Point).Scale))
	t.MustRegister("geom.translate").SetAdaptedBody(adapt.RefMethod2((*Point).Translate))
}
