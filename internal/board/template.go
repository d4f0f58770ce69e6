package board

import (
	"fmt"

	"ShapeBoard/internal/shape"
)

// Template describes one "new shape" menu entry: what to ask for and which
// colour the result starts with.
type Template struct {
	Name   string
	Kind   shape.Kind
	Points int
	Params []string
	Color  shape.Color
}

// Templates mirrors the shape menu of the menu demo.
var Templates = []Template{
	{Name: "Point", Kind: shape.Point, Points: 1, Color: shape.Red},
	{Name: "Line", Kind: shape.Line, Points: 2, Color: shape.Green},
	{Name: "Triangle", Kind: shape.Polygon, Points: 3, Color: shape.Blue},
	{Name: "Quadrilateral", Kind: shape.Polygon, Points: 4, Color: shape.Cyan},
	{Name: "Pentagon", Kind: shape.Polygon, Points: 5, Color: shape.Magenta},
	{Name: "Hexagon", Kind: shape.Polygon, Points: 6, Color: shape.Yellow},
	{Name: "Circle", Kind: shape.Circle, Points: 1, Params: []string{"radius"}, Color: shape.Color{R: 0.5, G: 0.5, B: 1}},
	{Name: "Ellipse", Kind: shape.Ellipse, Points: 1, Params: []string{"semi-axis a", "semi-axis b"}, Color: shape.Color{R: 0.3, G: 0.6, B: 0.9}},
	{Name: "Teapot", Kind: shape.Teapot, Points: 1, Params: []string{"size", "z"}, Color: shape.Color{R: 0.6, G: 0.3, B: 0.4}},
	{Name: "Curve", Kind: shape.Curve, Points: 4, Color: shape.Black},
}

// TemplateByName finds a template case-sensitively.
func TemplateByName(name string) (Template, bool) {
	for _, t := range Templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Fields lists the numbers to ask for, in the order Create expects them.
func (t Template) Fields() []string {
	var out []string
	for i := 1; i <= t.Points; i++ {
		if t.Points == 1 {
			out = append(out, "x", "y")
			continue
		}
		out = append(out, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	return append(out, t.Params...)
}

func (t Template) build(pts []shape.Vec2, params []float64) (*shape.Shape, error) {
	switch t.Kind {
	case shape.Point:
		return shape.NewPoint(pts[0])
	case shape.Line:
		return shape.NewLine(pts[0], pts[1])
	case shape.Polygon:
		return shape.NewPolygon(pts)
	case shape.Curve:
		return shape.NewCurve(pts)
	case shape.Circle:
		return shape.NewCircle(pts[0], params[0])
	case shape.Ellipse:
		return shape.NewEllipse(pts[0], params[0], params[1])
	case shape.Teapot:
		return shape.NewTeapot(pts[0], params[1], params[0])
	}
	return nil, fmt.Errorf("template %s: %w", t.Name, shape.ErrInvalidShape)
}
