package render

import (
	"math"
	"sync"

	"ShapeBoard/internal/shape"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a wireframe: vertices in object space and the edges joining them.
type Mesh struct {
	Vertices []mgl64.Vec3
	Edges    [][2]int
}

func (m *Mesh) vertex(p mgl64.Vec3) int {
	m.Vertices = append(m.Vertices, p)
	return len(m.Vertices) - 1
}

func (m *Mesh) polyline(pts ...mgl64.Vec3) []int {
	idx := make([]int, len(pts))
	for i, p := range pts {
		idx[i] = m.vertex(p)
		if i > 0 {
			m.Edges = append(m.Edges, [2]int{idx[i-1], idx[i]})
		}
	}
	return idx
}

// teapot body and lid profile as (radius, height) pairs, bottom to knob
var teapotProfile = [][2]float64{
	{0.60, -0.75},
	{0.95, -0.45},
	{1.00, -0.05},
	{0.85, 0.35},
	{0.60, 0.55},
	{0.45, 0.62},
	{0.20, 0.78},
	{0.08, 0.92},
}

const teapotRing = 16

var (
	teapotOnce sync.Once
	teapotMesh *Mesh
)

// TeapotMesh returns a shared unit-size teapot wireframe centred on the
// origin: a lathed body and lid, a spout on +X and a handle on -X. The
// returned mesh must not be modified.
func TeapotMesh() *Mesh {
	teapotOnce.Do(func() { teapotMesh = buildTeapot() })
	return teapotMesh
}

func buildTeapot() *Mesh {
	m := &Mesh{}
	rings := make([][]int, len(teapotProfile))
	for i, p := range teapotProfile {
		r, y := p[0], p[1]
		ring := make([]int, teapotRing)
		for j := range ring {
			a := 2 * math.Pi * float64(j) / teapotRing
			ring[j] = m.vertex(mgl64.Vec3{r * math.Cos(a), y, r * math.Sin(a)})
			if j > 0 {
				m.Edges = append(m.Edges, [2]int{ring[j-1], ring[j]})
			}
		}
		m.Edges = append(m.Edges, [2]int{ring[teapotRing-1], ring[0]})
		if i > 0 {
			for j := range ring {
				m.Edges = append(m.Edges, [2]int{rings[i-1][j], ring[j]})
			}
		}
		rings[i] = ring
	}

	lower := m.polyline(mgl64.Vec3{0.95, -0.35, 0}, mgl64.Vec3{1.35, -0.05, 0}, mgl64.Vec3{1.6, 0.45, 0})
	upper := m.polyline(mgl64.Vec3{0.92, 0.05, 0}, mgl64.Vec3{1.25, 0.2, 0}, mgl64.Vec3{1.5, 0.5, 0})
	m.Edges = append(m.Edges, [2]int{lower[len(lower)-1], upper[len(upper)-1]})

	var handle []mgl64.Vec3
	for i := 0; i <= 8; i++ {
		a := math.Pi/2 + math.Pi*float64(i)/8
		handle = append(handle, mgl64.Vec3{-0.9 + 0.45*math.Cos(a), 0.0 + 0.35*math.Sin(a), 0})
	}
	m.polyline(handle...)
	return m
}

// TeapotTransform places a unit teapot: scale by Size, rotate about Z, Y
// then X by the stored angles, and move to the centre at Depth.
func TeapotTransform(s *shape.Shape) mgl64.Mat4 {
	c := s.Vertices[0]
	return mgl64.Translate3D(c.X, c.Y, s.Depth).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(s.Rotation[shape.AxisX]))).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(s.Rotation[shape.AxisY]))).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(s.Rotation[shape.AxisZ]))).
		Mul4(mgl64.Scale3D(s.Size, s.Size, s.Size))
}

// ProjectMesh transforms m by xf and drops Z, giving one 2D segment per
// edge.
func ProjectMesh(m *Mesh, xf mgl64.Mat4) [][2]shape.Vec2 {
	pts := make([]shape.Vec2, len(m.Vertices))
	for i, v := range m.Vertices {
		p := xf.Mul4x1(v.Vec4(1))
		pts[i] = shape.Vec2{X: p.X(), Y: p.Y()}
	}
	out := make([][2]shape.Vec2, len(m.Edges))
	for i, e := range m.Edges {
		out[i] = [2]shape.Vec2{pts[e[0]], pts[e[1]]}
	}
	return out
}
