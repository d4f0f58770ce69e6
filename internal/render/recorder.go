package render

import (
	"ShapeBoard/internal/shape"

	"github.com/go-gl/mathgl/mgl64"
)

type Op int

const (
	OpDot Op = iota
	OpLine
	OpFill
	OpMesh
)

// Call is one recorded primitive.
type Call struct {
	Op     Op
	Points []shape.Vec2
	Color  shape.Color
	Width  float64
	Mesh   *Mesh
	Xf     mgl64.Mat4
}

// Recorder is a Canvas that keeps every call, for tests and for hit
// previews that need the generated geometry.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) Dot(p shape.Vec2, c shape.Color, width float64) {
	r.Calls = append(r.Calls, Call{Op: OpDot, Points: []shape.Vec2{p}, Color: c, Width: width})
}

func (r *Recorder) Line(a, b shape.Vec2, c shape.Color, width float64) {
	r.Calls = append(r.Calls, Call{Op: OpLine, Points: []shape.Vec2{a, b}, Color: c, Width: width})
}

func (r *Recorder) FillPolygon(pts []shape.Vec2, c shape.Color) {
	r.Calls = append(r.Calls, Call{Op: OpFill, Points: append([]shape.Vec2(nil), pts...), Color: c})
}

func (r *Recorder) Mesh(m *Mesh, xf mgl64.Mat4, c shape.Color, width float64) {
	r.Calls = append(r.Calls, Call{Op: OpMesh, Mesh: m, Xf: xf, Color: c, Width: width})
}

// Only returns the calls of one kind.
func (r *Recorder) Only(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }
