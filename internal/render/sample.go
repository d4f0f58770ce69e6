package render

import (
	"math"

	"ShapeBoard/internal/shape"
)

// CircleSamples returns n points at equal angular steps on the circle,
// starting at angle 0 and running counter-clockwise.
func CircleSamples(c shape.Vec2, radius float64, n int) []shape.Vec2 {
	return EllipseSamples(c, radius, radius, n)
}

// EllipseSamples is CircleSamples with the x and y extents scaled by the
// semi-axes a and b.
func EllipseSamples(c shape.Vec2, a, b float64, n int) []shape.Vec2 {
	if n < 3 {
		n = 3
	}
	out := make([]shape.Vec2, n)
	step := 2 * math.Pi / float64(n)
	for i := range out {
		t := float64(i) * step
		out[i] = shape.Vec2{X: c.X + a*math.Cos(t), Y: c.Y + b*math.Sin(t)}
	}
	return out
}

// CatmullRom interpolates a uniform Catmull-Rom spline through pts, with
// steps segments between each pair of control points. The result starts at
// the first control point, ends at the last one and passes through every
// control point in between.
func CatmullRom(pts []shape.Vec2, steps int) []shape.Vec2 {
	if len(pts) < 3 || steps < 1 {
		return append([]shape.Vec2(nil), pts...)
	}
	at := func(i int) shape.Vec2 {
		if i < 0 {
			// mirror the end tangents
			return pts[0].Mul(2).Sub(pts[1])
		}
		if i >= len(pts) {
			n := len(pts)
			return pts[n-1].Mul(2).Sub(pts[n-2])
		}
		return pts[i]
	}
	out := make([]shape.Vec2, 0, (len(pts)-1)*steps+1)
	out = append(out, pts[0])
	for i := 0; i < len(pts)-1; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)
			if s == steps {
				out = append(out, p2)
				continue
			}
			t2, t3 := t*t, t*t*t
			x := 0.5 * (2*p1.X + (-p0.X+p2.X)*t + (2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 + (-p0.X+3*p1.X-3*p2.X+p3.X)*t3)
			y := 0.5 * (2*p1.Y + (-p0.Y+p2.Y)*t + (2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 + (-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3)
			out = append(out, shape.Vec2{X: x, Y: y})
		}
	}
	return out
}
