package board

import (
	"testing"

	"ShapeBoard/internal/entry"
	"ShapeBoard/internal/shape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func click(t *testing.T, b *Board, x, y float64) ClickResult {
	t.Helper()
	res, err := b.Click(shape.Vec2{X: x, Y: y})
	require.NoError(t, err)
	return res
}

func TestClickPolygonCloses(t *testing.T) {
	b, _ := newBoard(t)
	b.SetMode(ModePolygon)

	assert.Equal(t, ClickPending, click(t, b, 0, 0))
	assert.Equal(t, ClickPending, click(t, b, 100, 0))
	assert.Equal(t, ClickPending, click(t, b, 50, 50))
	assert.Equal(t, ClickAdded, click(t, b, 2, 1))

	shapes := b.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, shape.Polygon, shapes[0].Kind)
	assert.Equal(t, []shape.Vec2{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 50}}, shapes[0].Vertices)

	// the tool stays armed for the next polygon
	assert.Equal(t, entry.Collecting, b.Entry())
}

func TestClickLine(t *testing.T) {
	b, _ := newBoard(t)
	b.SetMode(ModeLine)
	require.NoError(t, b.SetLineColor(shape.Blue))

	assert.Equal(t, ClickPending, click(t, b, -5, -5))
	assert.Equal(t, ClickAdded, click(t, b, 5, 5))
	assert.Equal(t, ClickPending, click(t, b, 1, 1))

	shapes := b.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, shape.Line, shapes[0].Kind)
	assert.Equal(t, shape.Blue, shapes[0].LineColor)
}

func TestClickCircleRadius(t *testing.T) {
	b, _ := newBoard(t)
	b.SetMode(ModeCircle)

	assert.Equal(t, ClickNeedRadius, click(t, b, 30, 40))
	// further clicks wait for the prompt
	assert.Equal(t, ClickIgnored, click(t, b, 0, 0))

	c, err := b.CompleteCircle(50)
	require.NoError(t, err)
	assert.Equal(t, shape.Vec2{X: 30, Y: 40}, c.Vertices[0])
	assert.Equal(t, 50.0, c.Radii.X)

	_, err = b.CompleteCircle(10)
	assert.ErrorIs(t, err, ErrBadInput)
}

func TestClickCircleCancelled(t *testing.T) {
	b, _ := newBoard(t)
	b.SetMode(ModeCircle)

	assert.Equal(t, ClickNeedRadius, click(t, b, 30, 40))
	b.CancelEntry()
	assert.Empty(t, b.Shapes())
	assert.Equal(t, entry.Collecting, b.Entry())

	assert.Equal(t, ClickNeedRadius, click(t, b, 1, 1))
}

func TestSetModeDropsPending(t *testing.T) {
	b, _ := newBoard(t)
	b.SetMode(ModePolygon)
	click(t, b, 0, 0)
	click(t, b, 10, 0)
	b.SetMode(ModePoint)
	assert.Equal(t, entry.Idle, b.Entry())
	assert.Equal(t, ClickAdded, click(t, b, 3, 3))
	assert.Len(t, b.Shapes(), 1)
}

func TestModeNoneIgnoresClicks(t *testing.T) {
	b, _ := newBoard(t)
	assert.Equal(t, ClickIgnored, click(t, b, 0, 0))
	assert.Equal(t, "none", b.Mode().String())
}

func TestStyleFillAppliesToClosedShapes(t *testing.T) {
	b, _ := newBoard(t)
	fill := shape.Cyan
	b.SetStyleFill(&fill)
	b.SetMode(ModePolygon)
	click(t, b, 0, 0)
	click(t, b, 100, 0)
	click(t, b, 0, 100)
	click(t, b, 0, 0)

	shapes := b.Shapes()
	require.Len(t, shapes, 1)
	require.NotNil(t, shapes[0].Fill)
	assert.Equal(t, shape.Cyan, *shapes[0].Fill)
}

func TestStyleSettersLeaveShapesAlone(t *testing.T) {
	b, _ := newBoard(t)
	b.SetMode(ModePoint)
	click(t, b, 0, 0)

	b.SetStyleColor(shape.Green)
	require.NoError(t, b.SetStyleWidth(8))
	assert.ErrorIs(t, b.SetStyleWidth(0), ErrBadInput)
	click(t, b, 5, 5)

	shapes := b.Shapes()
	require.Len(t, shapes, 2)
	assert.Equal(t, shape.Black, shapes[0].LineColor)
	assert.Equal(t, shape.DefaultWidth, shapes[0].Width)
	assert.Equal(t, shape.Green, shapes[1].LineColor)
	assert.Equal(t, 8, shapes[1].Width)
}
