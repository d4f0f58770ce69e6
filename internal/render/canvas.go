package render

import (
	"ShapeBoard/internal/shape"

	"github.com/go-gl/mathgl/mgl64"
)

// Canvas is the set of drawing primitives a host backend provides. All
// coordinates are model coordinates; the backend maps them to its own
// surface.
type Canvas interface {
	// Dot draws a single point of the given diameter.
	Dot(p shape.Vec2, c shape.Color, width float64)
	Line(a, b shape.Vec2, c shape.Color, width float64)
	// FillPolygon paints the interior of a closed polygon. Outlines are
	// drawn separately with Line.
	FillPolygon(pts []shape.Vec2, c shape.Color)
	// Mesh draws a wireframe after applying xf to every vertex.
	Mesh(m *Mesh, xf mgl64.Mat4, c shape.Color, width float64)
}

// Viewport maps between window pixels (origin top-left, Y down) and model
// coordinates (origin at the centre, Y up).
type Viewport struct {
	Width, Height float64
}

func (v Viewport) ToModel(px, py float64) shape.Vec2 {
	return shape.Vec2{X: px - v.Width/2, Y: -(py - v.Height/2)}
}

func (v Viewport) ToPixel(p shape.Vec2) (px, py float64) {
	return p.X + v.Width/2, v.Height/2 - p.Y
}

// Bounds is the visible model-space rectangle.
func (v Viewport) Bounds() shape.Rect {
	return shape.RectFrom(v.ToModel(0, 0), v.ToModel(v.Width, v.Height))
}
