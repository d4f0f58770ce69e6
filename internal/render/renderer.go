package render

import (
	"ShapeBoard/internal/shape"
)

const (
	DefaultCircleSegments = 36
	DefaultCurveSteps     = 16
)

type Options struct {
	CircleSegments int
	CurveSteps     int
}

func (o Options) withDefaults() Options {
	if o.CircleSegments < 3 {
		o.CircleSegments = DefaultCircleSegments
	}
	if o.CurveSteps < 1 {
		o.CurveSteps = DefaultCurveSteps
	}
	return o
}

// Renderer turns shapes into Canvas calls. It holds no per-frame state and
// may be shared.
type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts.withDefaults()}
}

func (r *Renderer) Options() Options { return r.opts }

// Outline returns the boundary points drawn for s and whether the last
// point connects back to the first. Teapots have no 2D outline.
func (r *Renderer) Outline(s *shape.Shape) (pts []shape.Vec2, closed bool) {
	switch s.Kind {
	case shape.Point, shape.Line:
		return s.Vertices, false
	case shape.Polygon:
		return s.Vertices, true
	case shape.Circle, shape.Ellipse:
		return EllipseSamples(s.Vertices[0], s.Radii.X, s.Radii.Y, r.opts.CircleSegments), true
	case shape.Curve:
		return CatmullRom(s.Vertices, r.opts.CurveSteps), false
	}
	return nil, false
}

// Draw issues the primitives for one shape, visible or not.
func (r *Renderer) Draw(c Canvas, s *shape.Shape) {
	r.draw(c, s, s.LineColor, s.Fill)
}

// Erase redraws s in the background colour, fill included.
func (r *Renderer) Erase(c Canvas, s *shape.Shape, bg shape.Color) {
	var fill *shape.Color
	if s.Fill != nil {
		fill = &bg
	}
	r.draw(c, s, bg, fill)
}

// DrawList draws every visible shape in order.
func (r *Renderer) DrawList(c Canvas, shapes []*shape.Shape) {
	for _, s := range shapes {
		if s.Visible {
			r.Draw(c, s)
		}
	}
}

func (r *Renderer) draw(c Canvas, s *shape.Shape, col shape.Color, fill *shape.Color) {
	w := float64(s.Width)
	switch s.Kind {
	case shape.Point:
		c.Dot(s.Vertices[0], col, w)
	case shape.Teapot:
		c.Mesh(TeapotMesh(), TeapotTransform(s), col, w)
	default:
		pts, closed := r.Outline(s)
		if closed && fill != nil {
			c.FillPolygon(pts, *fill)
		}
		for i := 1; i < len(pts); i++ {
			c.Line(pts[i-1], pts[i], col, w)
		}
		if closed {
			c.Line(pts[len(pts)-1], pts[0], col, w)
		}
	}
}
