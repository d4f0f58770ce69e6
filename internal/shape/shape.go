package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrInvalidShape is returned when a constructor is given input that does
// not fit the requested kind.
var ErrInvalidShape = errors.New("invalid shape")

type Kind int

const (
	Point Kind = iota
	Line
	Polygon
	Circle
	Ellipse
	Teapot
	Curve
)

var kindNames = [...]string{"point", "line", "polygon", "circle", "ellipse", "teapot", "curve"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vec2 is a point in model coordinates: origin at the window centre, Y up.
type Vec2 struct{ X, Y float64 }

func (v Vec2) Add(o Vec2) Vec2     { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2     { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(k float64) Vec2  { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }
func (v Vec2) String() string      { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }

// Eq compares componentwise within eps.
func (v Vec2) Eq(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Color is an RGB triple with every component in [0,1].
type Color struct{ R, G, B float64 }

var (
	Black   = Color{0, 0, 0}
	White   = Color{1, 1, 1}
	Red     = Color{1, 0, 0}
	Green   = Color{0, 1, 0}
	Blue    = Color{0, 0, 1}
	Yellow  = Color{1, 1, 0}
	Magenta = Color{1, 0, 1}
	Cyan    = Color{0, 1, 1}
)

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// RGB builds a Color, clamping each component into [0,1].
func RGB(r, g, b float64) Color {
	return Color{clamp01(r), clamp01(g), clamp01(b)}
}

// RGBA8 converts to 8-bit channels for raster backends.
func (c Color) RGBA8() (r, g, b uint8) {
	return uint8(math.Round(c.R * 255)), uint8(math.Round(c.G * 255)), uint8(math.Round(c.B * 255))
}

// Shape is one drawable record. Build it with the New* constructors; the
// vertex count is fixed per kind for the life of the shape.
//
//	Point    1 vertex
//	Line     2 vertices
//	Polygon  n >= 3 vertices
//	Curve    n >= 2 control points
//	Circle   centre, Radii.X = Radii.Y = radius
//	Ellipse  centre, Radii = semi-axes
//	Teapot   centre, Size, Depth (z)
type Shape struct {
	ID       string
	Kind     Kind
	Vertices []Vec2
	Radii    Vec2
	Size     float64
	Depth    float64

	LineColor Color
	Width     int
	Fill      *Color
	Rotation  [3]float64
	Visible   bool
}

const DefaultWidth = 2

// TeapotReach bounds the distance of the unit teapot wireframe from its
// centre.
const TeapotReach = 1.7

func newShape(k Kind, verts ...Vec2) *Shape {
	return &Shape{
		ID:        uuid.NewString(),
		Kind:      k,
		Vertices:  verts,
		LineColor: Black,
		Width:     DefaultWidth,
		Visible:   true,
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func finiteVerts(pts []Vec2) bool {
	for _, p := range pts {
		if !finite(p.X, p.Y) {
			return false
		}
	}
	return true
}

func NewPoint(p Vec2) (*Shape, error) {
	if !finiteVerts([]Vec2{p}) {
		return nil, fmt.Errorf("point %v: %w", p, ErrInvalidShape)
	}
	return newShape(Point, p), nil
}

func NewLine(a, b Vec2) (*Shape, error) {
	if !finiteVerts([]Vec2{a, b}) {
		return nil, fmt.Errorf("line %v-%v: %w", a, b, ErrInvalidShape)
	}
	return newShape(Line, a, b), nil
}

func NewPolygon(pts []Vec2) (*Shape, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d: %w", len(pts), ErrInvalidShape)
	}
	if !finiteVerts(pts) {
		return nil, fmt.Errorf("polygon: %w", ErrInvalidShape)
	}
	return newShape(Polygon, append([]Vec2(nil), pts...)...), nil
}

func NewCurve(pts []Vec2) (*Shape, error) {
	if len(pts) < 2 {
		return nil, fmt.Errorf("curve needs at least 2 control points, got %d: %w", len(pts), ErrInvalidShape)
	}
	if !finiteVerts(pts) {
		return nil, fmt.Errorf("curve: %w", ErrInvalidShape)
	}
	return newShape(Curve, append([]Vec2(nil), pts...)...), nil
}

func NewCircle(center Vec2, radius float64) (*Shape, error) {
	if !finite(center.X, center.Y, radius) || radius <= 0 {
		return nil, fmt.Errorf("circle radius %g: %w", radius, ErrInvalidShape)
	}
	s := newShape(Circle, center)
	s.Radii = Vec2{radius, radius}
	return s, nil
}

func NewEllipse(center Vec2, a, b float64) (*Shape, error) {
	if !finite(center.X, center.Y, a, b) || a <= 0 || b <= 0 {
		return nil, fmt.Errorf("ellipse axes %g,%g: %w", a, b, ErrInvalidShape)
	}
	s := newShape(Ellipse, center)
	s.Radii = Vec2{a, b}
	return s, nil
}

func NewTeapot(center Vec2, depth, size float64) (*Shape, error) {
	if !finite(center.X, center.Y, depth, size) || size <= 0 {
		return nil, fmt.Errorf("teapot size %g: %w", size, ErrInvalidShape)
	}
	s := newShape(Teapot, center)
	s.Size = size
	s.Depth = depth
	return s, nil
}

// vertexCount reports the number of stored vertices a kind needs, or -1 and
// the minimum for the variable-length kinds.
func vertexCount(k Kind) (exact, min int) {
	switch k {
	case Point, Circle, Ellipse, Teapot:
		return 1, 1
	case Line:
		return 2, 2
	case Polygon:
		return -1, 3
	case Curve:
		return -1, 2
	}
	return 0, 0
}

// Validate checks the per-kind invariants of a shape built outside the
// constructors, e.g. one decoded from a file or the network.
func (s *Shape) Validate() error {
	exact, min := vertexCount(s.Kind)
	switch {
	case min == 0:
		return fmt.Errorf("unknown kind %d: %w", int(s.Kind), ErrInvalidShape)
	case exact > 0 && len(s.Vertices) != exact:
		return fmt.Errorf("%s needs %d vertices, got %d: %w", s.Kind, exact, len(s.Vertices), ErrInvalidShape)
	case len(s.Vertices) < min:
		return fmt.Errorf("%s needs at least %d vertices, got %d: %w", s.Kind, min, len(s.Vertices), ErrInvalidShape)
	case !finiteVerts(s.Vertices):
		return fmt.Errorf("%s has non-finite vertices: %w", s.Kind, ErrInvalidShape)
	case s.Width <= 0:
		return fmt.Errorf("%s width %d: %w", s.Kind, s.Width, ErrInvalidShape)
	case !finite(s.Radii.X, s.Radii.Y, s.Size, s.Depth) || !finite(s.Rotation[:]...):
		return fmt.Errorf("%s has non-finite dimensions: %w", s.Kind, ErrInvalidShape)
	}
	switch s.Kind {
	case Circle, Ellipse:
		if s.Radii.X <= 0 || s.Radii.Y <= 0 {
			return fmt.Errorf("%s radii %v: %w", s.Kind, s.Radii, ErrInvalidShape)
		}
		if s.Kind == Circle && s.Radii.X != s.Radii.Y {
			return fmt.Errorf("circle radii %v differ: %w", s.Radii, ErrInvalidShape)
		}
	case Teapot:
		if s.Size <= 0 {
			return fmt.Errorf("teapot size %g: %w", s.Size, ErrInvalidShape)
		}
	}
	for _, c := range []Color{s.LineColor, s.fillOrBlack()} {
		if c != RGB(c.R, c.G, c.B) {
			return fmt.Errorf("%s colour %v out of range: %w", s.Kind, c, ErrInvalidShape)
		}
	}
	return nil
}

func (s *Shape) fillOrBlack() Color {
	if s.Fill == nil {
		return Black
	}
	return *s.Fill
}

func (s *Shape) SetLineColor(c Color) { s.LineColor = RGB(c.R, c.G, c.B) }

// SetWidth ignores non-positive widths.
func (s *Shape) SetWidth(w int) {
	if w > 0 {
		s.Width = w
	}
}

// SetFill sets the interior colour; nil clears it.
func (s *Shape) SetFill(c *Color) {
	if c == nil {
		s.Fill = nil
		return
	}
	f := RGB(c.R, c.G, c.B)
	s.Fill = &f
}

// Center is the circle/ellipse/teapot centre, or the vertex mean for the
// other kinds.
func (s *Shape) Center() Vec2 {
	switch s.Kind {
	case Circle, Ellipse, Teapot, Point:
		return s.Vertices[0]
	}
	var c Vec2
	for _, v := range s.Vertices {
		c = c.Add(v)
	}
	return c.Mul(1 / float64(len(s.Vertices)))
}

func (s *Shape) Translate(dx, dy float64) {
	d := Vec2{dx, dy}
	for i := range s.Vertices {
		s.Vertices[i] = s.Vertices[i].Add(d)
	}
}

// Scale multiplies each vertex's distance from the centre by k. Circles,
// ellipses and teapots keep their centre and scale their radii or size.
// A zero factor is ignored.
func (s *Shape) Scale(k float64) {
	if k == 0 || !finite(k) {
		return
	}
	switch s.Kind {
	case Circle, Ellipse:
		s.Radii = s.Radii.Mul(math.Abs(k))
		return
	case Teapot:
		s.Size *= math.Abs(k)
		return
	}
	c := s.Center()
	for i, v := range s.Vertices {
		s.Vertices[i] = c.Add(v.Sub(c).Mul(k))
	}
}

// Rotate adds deg to the stored angle about axis. Only teapots rotate.
func (s *Shape) Rotate(axis Axis, deg float64) {
	if s.Kind != Teapot || axis < AxisX || axis > AxisZ {
		return
	}
	s.Rotation[axis] = math.Mod(s.Rotation[axis]+deg, 360)
}

// Bounds is the axis-aligned box used for region hit tests.
func (s *Shape) Bounds() Rect {
	switch s.Kind {
	case Circle, Ellipse:
		c := s.Vertices[0]
		return Rect{Min: c.Sub(s.Radii), Max: c.Add(s.Radii)}
	case Teapot:
		c := s.Vertices[0]
		// every wireframe vertex, spout tip included, lies within
		// TeapotReach*Size of the centre whatever the rotation
		h := Vec2{TeapotReach * s.Size, TeapotReach * s.Size}
		return Rect{Min: c.Sub(h), Max: c.Add(h)}
	}
	r := Rect{Min: s.Vertices[0], Max: s.Vertices[0]}
	for _, v := range s.Vertices[1:] {
		r = r.Extend(v)
	}
	return r
}

// Clone returns a deep copy with the same ID.
func (s *Shape) Clone() *Shape {
	c := *s
	c.Vertices = append([]Vec2(nil), s.Vertices...)
	if s.Fill != nil {
		f := *s.Fill
		c.Fill = &f
	}
	return &c
}
