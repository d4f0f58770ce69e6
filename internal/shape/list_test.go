package shape

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrderAndKinds(t *testing.T) {
	l := NewList()
	p, _ := NewPoint(Vec2{1, 1})
	tp, _ := NewTeapot(Vec2{}, 0, 40)
	c, _ := NewCurve([]Vec2{{0, 0}, {5, 5}, {10, 0}})
	l.Add(p)
	l.Add(tp)
	l.Add(c)

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []*Shape{p, tp, c}, l.All())
	assert.Equal(t, []*Shape{tp}, l.OfKind(Teapot))
	assert.Equal(t, []*Shape{c}, l.OfKind(Curve))

	var seen []Kind
	l.Each(func(s *Shape) bool {
		seen = append(seen, s.Kind)
		return s.Kind != Teapot
	})
	assert.Equal(t, []Kind{Point, Teapot}, seen)

	last, ok := l.Last()
	require.True(t, ok)
	assert.Same(t, c, last)

	require.True(t, l.Hide(c.ID))
	assert.False(t, l.Hide(c.ID))
	last, ok = l.Last()
	require.True(t, ok)
	assert.Same(t, tp, last)
}

func TestRemoveInRegion(t *testing.T) {
	l := NewList()
	line, err := NewLine(Vec2{-10, -10}, Vec2{10, 10})
	require.NoError(t, err)
	pt, err := NewPoint(Vec2{500, 500})
	require.NoError(t, err)
	l.Add(line)
	l.Add(pt)

	n := l.RemoveInRegion(RectFrom(Vec2{-20, -20}, Vec2{20, 20}))
	assert.Equal(t, 1, n)
	assert.False(t, line.Visible)
	assert.True(t, pt.Visible)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []*Shape{pt}, l.Visible())

	// already hidden shapes are not counted again
	assert.Equal(t, 0, l.RemoveInRegion(RectFrom(Vec2{-20, -20}, Vec2{20, 20})))
}

func TestRemoveInRegionPartialOverlap(t *testing.T) {
	l := NewList()
	c, _ := NewCircle(Vec2{100, 0}, 90)
	l.Add(c)
	assert.Equal(t, 1, l.RemoveInRegion(RectFrom(Vec2{-20, -20}, Vec2{20, 20})))
}

func allKinds(t *testing.T) []*Shape {
	t.Helper()
	p, _ := NewPoint(Vec2{-399.5, 299.25})
	ln, _ := NewLine(Vec2{0, 0}, Vec2{100, -100})
	pg, _ := NewPolygon([]Vec2{{0, 0}, {100, 0}, {200, 50}, {100, 50}, {-200, 200}})
	fill := Color{0.3, 0.6, 0.9}
	pg.SetFill(&fill)
	pg.SetWidth(8)
	ci, _ := NewCircle(Vec2{0, 0}, 100)
	ci.SetLineColor(Color{0.5, 0.5, 1})
	el, _ := NewEllipse(Vec2{50, 100}, 100, 40)
	el.Visible = false
	tp, _ := NewTeapot(Vec2{10, -20}, 5, 80)
	tp.Rotate(AxisX, -15)
	tp.Rotate(AxisY, 1.0/3)
	cv, _ := NewCurve([]Vec2{{-100, 0}, {-50, 80}, {50, -80}, {100, 0}})
	return []*Shape{p, ln, pg, ci, el, tp, cv}
}

func TestCodecRoundTrip(t *testing.T) {
	shapes := allKinds(t)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, shapes))

	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(shapes))
	for i, want := range shapes {
		g := got[i]
		assert.Equal(t, want.ID, g.ID)
		assert.Equal(t, want.Kind, g.Kind)
		assert.Equal(t, want.LineColor, g.LineColor)
		assert.Equal(t, want.Width, g.Width)
		assert.Equal(t, want.Fill, g.Fill)
		assert.Equal(t, want.Visible, g.Visible)
		assert.InDeltaSlice(t, want.Rotation[:], g.Rotation[:], 1e-6)
		require.Len(t, g.Vertices, len(want.Vertices))
		for j := range want.Vertices {
			assert.True(t, want.Vertices[j].Eq(g.Vertices[j], 1e-6))
		}
		assert.InDelta(t, want.Radii.X, g.Radii.X, 1e-6)
		assert.InDelta(t, want.Radii.Y, g.Radii.Y, 1e-6)
		assert.InDelta(t, want.Size, g.Size, 1e-6)
		assert.InDelta(t, want.Depth, g.Depth, 1e-6)
	}
}

func TestDecodeSkipsCommentsAndAssignsIDs(t *testing.T) {
	in := "# saved by hand\n\npoint w=5 c=1,0,0 v=3,4\n"
	got, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, 5, got[0].Width)
	assert.True(t, got[0].Visible)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"unknown kind":   "star w=2 c=0,0,0 v=0,0",
		"missing width":  "point c=0,0,0 v=0,0",
		"bad number":     "point w=2 c=0,0,x v=0,0",
		"wrong vertices": "line w=2 c=0,0,0 v=0,0",
		"short polygon":  "polygon w=2 c=0,0,0 v=0,0;1,1",
		"zero width":     "point w=0 c=0,0,0 v=0,0",
		"colour range":   "point w=2 c=2,0,0 v=0,0",
		"no radius":      "circle w=2 c=0,0,0 v=0,0",
		"unknown field":  "point w=2 c=0,0,0 v=0,0 q=1",
		"duplicate":      "point w=2 w=3 c=0,0,0 v=0,0",
		"bare token":     "point w=2 c=0,0,0 v=0,0 oops",
		"nan radius":     "circle w=2 c=0,0,0 v=0,0 r=NaN,NaN",
		"inf radius":     "circle w=2 c=0,0,0 v=0,0 r=Inf,Inf",
		"uneven circle":  "circle w=2 c=0,0,0 v=0,0 r=10,20",
		"nan size":       "teapot w=2 c=0,0,0 v=0,0 size=NaN z=0",
		"nan depth":      "teapot w=2 c=0,0,0 v=0,0 size=10 z=NaN",
		"nan rotation":   "teapot w=2 c=0,0,0 v=0,0 size=10 z=0 rot=NaN,0,0",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRecord(line)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLoadIsAllOrNothing(t *testing.T) {
	l := NewList()
	p, _ := NewPoint(Vec2{1, 1})
	l.Add(p)

	bad := "point w=2 c=0,0,0 v=5,5\nline w=2 c=0,0,0 v=0,0\n"
	err := l.Load(strings.NewReader(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, []*Shape{p}, l.All())

	var buf bytes.Buffer
	require.NoError(t, l.Save(&buf))
	other := NewList()
	require.NoError(t, other.Load(&buf))
	require.Equal(t, 1, other.Len())
	assert.Equal(t, p.ID, other.All()[0].ID)
}
