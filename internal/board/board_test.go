package board

import (
	"bytes"
	"strings"
	"testing"

	"ShapeBoard/internal/config"
	"ShapeBoard/internal/entry"
	"ShapeBoard/internal/render"
	"ShapeBoard/internal/shape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T) (*Board, *int) {
	t.Helper()
	b := New(config.Default(), nil)
	changes := 0
	b.OnChange = func() { changes++ }
	t.Cleanup(b.Close)
	return b, &changes
}

func mustTemplate(t *testing.T, name string) Template {
	t.Helper()
	tpl, ok := TemplateByName(name)
	require.True(t, ok, name)
	return tpl
}

func TestTemplateFields(t *testing.T) {
	assert.Equal(t, []string{"x", "y"}, mustTemplate(t, "Point").Fields())
	assert.Equal(t, []string{"x1", "y1", "x2", "y2"}, mustTemplate(t, "Line").Fields())
	assert.Equal(t, []string{"x", "y", "radius"}, mustTemplate(t, "Circle").Fields())
	assert.Equal(t, []string{"x", "y", "size", "z"}, mustTemplate(t, "Teapot").Fields())
	assert.Len(t, mustTemplate(t, "Hexagon").Fields(), 12)
}

func TestCreate(t *testing.T) {
	b, changes := newBoard(t)

	s, err := b.Create(mustTemplate(t, "Triangle"), []float64{0, 0, 100, 0, 50, 50})
	require.NoError(t, err)
	assert.Equal(t, shape.Polygon, s.Kind)
	assert.Len(t, s.Vertices, 3)
	assert.Equal(t, shape.Blue, s.LineColor)
	assert.Equal(t, 1, *changes)

	tp, err := b.Create(mustTemplate(t, "Teapot"), []float64{10, 20, 80, -5})
	require.NoError(t, err)
	assert.Equal(t, 80.0, tp.Size)
	assert.Equal(t, -5.0, tp.Depth)
	assert.Equal(t, shape.Vec2{X: 10, Y: 20}, tp.Vertices[0])

	cv, err := b.Create(mustTemplate(t, "Curve"), []float64{-100, 0, -50, 80, 50, -80, 100, 0})
	require.NoError(t, err)
	assert.Equal(t, shape.Curve, cv.Kind)

	assert.Len(t, b.Shapes(), 3)
	assert.Equal(t, entry.Idle, b.Entry())
}

func TestCreateRejects(t *testing.T) {
	b, changes := newBoard(t)

	_, err := b.Create(mustTemplate(t, "Line"), []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrBadInput)

	_, err = b.Create(mustTemplate(t, "Circle"), []float64{0, 0, -4})
	assert.ErrorIs(t, err, shape.ErrInvalidShape)

	assert.Empty(t, b.Shapes())
	assert.Zero(t, *changes)
}

func TestDispatchTransformsSelected(t *testing.T) {
	b, _ := newBoard(t)
	first, err := b.Create(mustTemplate(t, "Point"), []float64{0, 0})
	require.NoError(t, err)
	line, err := b.Create(mustTemplate(t, "Line"), []float64{-10, 0, 10, 0})
	require.NoError(t, err)

	require.NoError(t, b.Dispatch(CmdMoveUp))
	require.NoError(t, b.Dispatch(CmdMoveRight))
	assert.Equal(t, shape.Vec2{X: 0, Y: 10}, line.Vertices[0])
	assert.Equal(t, shape.Vec2{X: 20, Y: 10}, line.Vertices[1])
	assert.Equal(t, shape.Vec2{}, first.Vertices[0], "only the selected shape moves")

	require.NoError(t, b.Dispatch(CmdZoomIn))
	require.NoError(t, b.Dispatch(CmdZoomOut))
	assert.True(t, line.Vertices[0].Eq(shape.Vec2{X: 0, Y: 10}, 1e-9))

	require.NoError(t, b.Dispatch(CmdColorMagenta))
	assert.Equal(t, shape.Magenta, line.LineColor)
	require.NoError(t, b.Dispatch(CmdWidth15))
	assert.Equal(t, 15, line.Width)
	assert.Equal(t, 15, b.Style().Width)

	require.NoError(t, b.Dispatch(CmdErase))
	assert.False(t, line.Visible)
	sel, ok := b.Selected()
	require.True(t, ok)
	assert.Same(t, first, sel)
}

func TestLocalEditsFireOnUpdate(t *testing.T) {
	b, _ := newBoard(t)
	var updates [][]*shape.Shape
	b.OnUpdate = func(s []*shape.Shape) { updates = append(updates, s) }

	pot, err := b.Create(mustTemplate(t, "Teapot"), []float64{0, 0, 40, 0})
	require.NoError(t, err)
	line, err := b.Create(mustTemplate(t, "Line"), []float64{0, 0, 10, 10})
	require.NoError(t, err)
	assert.Empty(t, updates, "adds go through OnAdd")

	require.NoError(t, b.Dispatch(CmdZoomIn))
	require.NoError(t, b.SetLineColor(shape.Blue))
	require.NoError(t, b.SetWidth(5))
	b.RotateTeapots(shape.AxisX, 5)
	require.Len(t, updates, 4)
	for _, u := range updates[:3] {
		assert.Equal(t, []*shape.Shape{line}, u)
	}
	assert.Equal(t, []*shape.Shape{pot}, updates[3])

	gen, _ := b.StartLoop()
	assert.True(t, b.Tick(gen))
	assert.Len(t, updates, 5)
}

func TestUpdateRemote(t *testing.T) {
	b, changes := newBoard(t)
	var updates int
	b.OnUpdate = func([]*shape.Shape) { updates++ }
	line, err := b.Create(mustTemplate(t, "Line"), []float64{0, 0, 10, 10})
	require.NoError(t, err)

	moved := line.Clone()
	moved.Translate(0, 10)
	before := *changes
	require.NoError(t, b.UpdateRemote(moved))
	assert.Equal(t, shape.Vec2{X: 0, Y: 10}, line.Vertices[0], "the board's own shape is updated in place")
	assert.Equal(t, before+1, *changes)
	assert.Zero(t, updates)

	moved.Vertices = moved.Vertices[:1]
	assert.ErrorIs(t, b.UpdateRemote(moved), shape.ErrInvalidShape)
}

func TestDispatchFill(t *testing.T) {
	b, _ := newBoard(t)
	s, err := b.Create(mustTemplate(t, "Quadrilateral"), []float64{0, 0, 10, 0, 10, 10, 0, 10})
	require.NoError(t, err)
	require.NoError(t, b.Dispatch(CmdFillYellow))
	require.NotNil(t, s.Fill)
	assert.Equal(t, shape.Yellow, *s.Fill)
}

func TestDispatchErrors(t *testing.T) {
	b, _ := newBoard(t)
	assert.ErrorIs(t, b.Dispatch(CmdMoveUp), ErrNoSelection)
	assert.ErrorIs(t, b.Dispatch(CmdErase), ErrNoSelection)
	assert.ErrorIs(t, b.Dispatch(Command(999)), ErrUnknownCommand)
	// colour and width still update the style
	assert.NoError(t, b.Dispatch(CmdColorGreen))
	assert.Equal(t, shape.Green, b.Style().LineColor)
}

func TestTeapotKeysAndLoop(t *testing.T) {
	b, _ := newBoard(t)
	tp, err := b.Create(mustTemplate(t, "Teapot"), []float64{0, 0, 50, 0})
	require.NoError(t, err)
	cv, err := b.Create(mustTemplate(t, "Curve"), []float64{0, 0, 1, 1, 2, 0, 3, 1})
	require.NoError(t, err)

	assert.True(t, b.Key('w'))
	assert.True(t, b.Key('d'))
	assert.False(t, b.Key('x'))
	assert.Equal(t, [3]float64{-5, 5, 0}, tp.Rotation)

	var started []int
	b.OnLoopStart = func(gen int) { started = append(started, gen) }
	assert.True(t, b.Key('r'))
	gen, fresh := b.StartLoop()
	assert.False(t, fresh, "already armed")
	assert.Equal(t, []int{gen}, started)

	assert.True(t, b.Tick(gen))
	assert.True(t, b.Tick(gen))
	assert.Equal(t, -15.0, tp.Rotation[shape.AxisX])
	assert.Equal(t, [3]float64{}, cv.Rotation, "curves never join the teapot loop")

	assert.True(t, b.Key('e'))
	assert.False(t, b.Looping())
	assert.False(t, b.Tick(gen))
	assert.Equal(t, -15.0, tp.Rotation[shape.AxisX])

	// a tick left over from a stopped loop does not drive a new one
	next, fresh := b.StartLoop()
	require.True(t, fresh)
	assert.False(t, b.Tick(gen))
	assert.True(t, b.Tick(next))
}

func TestCut(t *testing.T) {
	b, _ := newBoard(t)
	line, err := b.Create(mustTemplate(t, "Line"), []float64{-10, -10, 10, 10})
	require.NoError(t, err)
	pt, err := b.Create(mustTemplate(t, "Point"), []float64{500, 500})
	require.NoError(t, err)

	var cut []shape.Rect
	b.OnCut = func(r shape.Rect) { cut = append(cut, r) }

	assert.Equal(t, 1, b.Cut(shape.Vec2{X: 20, Y: 20}, shape.Vec2{X: -20, Y: -20}))
	assert.False(t, line.Visible)
	assert.True(t, pt.Visible)
	require.Len(t, cut, 1)
	assert.Equal(t, shape.Vec2{X: -20, Y: -20}, cut[0].Min)

	rec := &render.Recorder{}
	b.Draw(rec)
	require.Len(t, rec.Calls, 1)
	assert.Equal(t, render.OpDot, rec.Calls[0].Op)
}

func TestSaveLoad(t *testing.T) {
	b, _ := newBoard(t)
	_, err := b.Create(mustTemplate(t, "Ellipse"), []float64{50, 100, 100, 40})
	require.NoError(t, err)
	_, err = b.Create(mustTemplate(t, "Pentagon"), []float64{0, 0, 100, 0, 200, 50, 100, 50, -200, 200})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, b.Save(&buf))

	other, _ := newBoard(t)
	var replaced []*shape.Shape
	other.OnReplace = func(s []*shape.Shape) { replaced = s }
	require.NoError(t, other.Load(&buf))
	assert.Len(t, other.Shapes(), 2)
	assert.Len(t, replaced, 2)
	assert.Equal(t, b.Shapes()[1].ID, other.Shapes()[1].ID)
}

func TestLoadFailureKeepsShapes(t *testing.T) {
	b, changes := newBoard(t)
	_, err := b.Create(mustTemplate(t, "Point"), []float64{1, 1})
	require.NoError(t, err)
	before := b.Shapes()
	*changes = 0

	err = b.Load(strings.NewReader("point w=2 c=0,0,0 v=0,0\ncircle w=2 c=0,0,0 v=0,0 r=-1,-1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, shape.ErrMalformed)
	assert.Equal(t, before, b.Shapes())
	assert.Zero(t, *changes)
}

func TestAddRemote(t *testing.T) {
	b, _ := newBoard(t)
	var sent int
	b.OnAdd = func(*shape.Shape) { sent++ }

	p, _ := shape.NewPoint(shape.Vec2{X: 3, Y: 4})
	assert.True(t, b.AddRemote(p))
	assert.False(t, b.AddRemote(p.Clone()), "duplicate id")
	assert.Zero(t, sent, "remote shapes are not echoed")

	bad := &shape.Shape{ID: "x", Kind: shape.Line, Vertices: []shape.Vec2{{}}, Width: 2}
	assert.False(t, b.AddRemote(bad))
	assert.Len(t, b.Shapes(), 1)

	local, _ := shape.NewPoint(shape.Vec2{})
	require.NoError(t, b.Add(local))
	assert.Equal(t, 1, sent)
}

func TestBuffer(t *testing.T) {
	b, _ := newBoard(t)
	b.SetMode(ModePoint)
	for _, p := range []shape.Vec2{{X: 0, Y: 0}, {X: 50, Y: 50}} {
		res, err := b.Click(p)
		require.NoError(t, err)
		require.Equal(t, ClickAdded, res)
	}

	n, err := b.Buffer(10)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	circles := 0
	for _, s := range b.Shapes() {
		if s.Kind == shape.Circle {
			circles++
			assert.Equal(t, shape.Vec2{X: 10, Y: 10}, s.Radii)
			assert.Equal(t, shape.Red, s.LineColor)
		}
	}
	assert.Equal(t, 2, circles)

	_, err = b.Buffer(0)
	assert.ErrorIs(t, err, ErrBadInput)
}
