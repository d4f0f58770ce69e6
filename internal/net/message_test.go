package net

import (
	"encoding/json"
	"testing"

	"ShapeBoard/internal/board"
	"ShapeBoard/internal/config"
	"ShapeBoard/internal/shape"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLink(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "shapeboard://10.0.0.5:8888", want: "ws://10.0.0.5:8888/board"},
		{in: "shapeboard://10.0.0.5:8888/", want: "ws://10.0.0.5:8888/board"},
		{in: "localhost:9000", want: "ws://localhost:9000/board"},
		{in: "ws://h:1/board", want: "ws://h:1/board"},
		{in: "shapeboard://nohost", wantErr: true},
		{in: "shapeboard://host:", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLink(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := ParseLink(ShareLink("192.168.1.2", 8888))
	require.NoError(t, err)
	assert.Equal(t, "ws://192.168.1.2:8888/board", got)
}

func TestMessageJSON(t *testing.T) {
	data, err := json.Marshal(CutMessage(shape.RectFrom(shape.Vec2{X: 1, Y: 2}, shape.Vec2{X: -1, Y: 0})))
	require.NoError(t, err)

	var m Message
	require.NoError(t, json.Unmarshal(data, &m))
	require.NoError(t, m.Validate())
	assert.Equal(t, TypeCut, m.Type)
	assert.Equal(t, shape.Vec2{X: -1, Y: 0}, m.Rect.Min)
	assert.Equal(t, shape.Vec2{X: 1, Y: 2}, m.Rect.Max)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Message{Type: "draw"}.Validate(), ErrBadMessage)
	assert.ErrorIs(t, Message{Type: TypeAdd}.Validate(), ErrBadMessage)
	assert.ErrorIs(t, Message{Type: TypeCut}.Validate(), ErrBadMessage)
	assert.ErrorIs(t, Message{Type: TypeUpdate}.Validate(), ErrBadMessage)
	assert.NoError(t, Message{Type: TypeSnapshot}.Validate())
}

func TestApply(t *testing.T) {
	b := board.New(config.Default(), nil)
	p, err := shape.NewPoint(shape.Vec2{X: 5, Y: 5})
	require.NoError(t, err)
	c, err := shape.NewCircle(shape.Vec2{X: 100, Y: 100}, 10)
	require.NoError(t, err)

	require.NoError(t, Apply(b, AddMessage(p)))
	require.NoError(t, Apply(b, AddMessage(p)))
	require.NoError(t, Apply(b, AddMessage(c)))
	shapes := b.Shapes()
	require.Len(t, shapes, 2, "re-delivered adds are ignored")
	assert.Equal(t, p.ID, shapes[0].ID)

	require.NoError(t, Apply(b, CutMessage(shape.RectFrom(shape.Vec2{}, shape.Vec2{X: 10, Y: 10}))))
	assert.False(t, b.Shapes()[0].Visible)
	assert.True(t, b.Shapes()[1].Visible)

	require.NoError(t, Apply(b, SnapshotMessage([]*shape.Shape{c})))
	require.Len(t, b.Shapes(), 1)
	assert.Equal(t, c.ID, b.Shapes()[0].ID)
}

func TestApplyRejectsBadRecords(t *testing.T) {
	b := board.New(config.Default(), nil)
	err := Apply(b, Message{Type: TypeSnapshot, Records: []string{"point w=2 c=0,0,0 v=0,0", "blob"}})
	assert.ErrorIs(t, err, ErrBadMessage)
	assert.Empty(t, b.Shapes())
}

func TestSnapshotKeepsHiddenShapes(t *testing.T) {
	p, err := shape.NewPoint(shape.Vec2{})
	require.NoError(t, err)
	p.Visible = false

	shapes, err := SnapshotMessage([]*shape.Shape{p}).Shapes()
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.False(t, shapes[0].Visible)
	assert.Equal(t, p.ID, shapes[0].ID)
}

// linked wires host's local edits to peer through the JSON wire form.
func linked(t *testing.T) (host, peer *board.Board) {
	t.Helper()
	host = board.New(config.Default(), nil)
	peer = board.New(config.Default(), nil)
	t.Cleanup(host.Close)
	t.Cleanup(peer.Close)

	deliver := func(m Message) {
		data, err := json.Marshal(m)
		require.NoError(t, err)
		var got Message
		require.NoError(t, json.Unmarshal(data, &got))
		require.NoError(t, Apply(peer, got))
	}
	host.OnAdd = func(s *shape.Shape) { deliver(AddMessage(s)) }
	host.OnCut = func(r shape.Rect) { deliver(CutMessage(r)) }
	host.OnUpdate = func(shapes []*shape.Shape) { deliver(UpdateMessage(shapes)) }
	return host, peer
}

func TestEditsReachPeer(t *testing.T) {
	host, peer := linked(t)
	tpl, _ := board.TemplateByName("Line")
	line, err := host.Create(tpl, []float64{0, 0, 10, 10})
	require.NoError(t, err)
	require.Len(t, peer.Shapes(), 1)

	require.NoError(t, host.Dispatch(board.CmdMoveUp))
	require.NoError(t, host.Dispatch(board.CmdColorRed))
	require.NoError(t, host.Dispatch(board.CmdWidth8))

	got := peer.Shapes()[0]
	assert.Equal(t, line.ID, got.ID)
	assert.Equal(t, line.Vertices, got.Vertices)
	assert.Equal(t, shape.Vec2{X: 0, Y: 10}, got.Vertices[0])
	assert.Equal(t, shape.Red, got.LineColor)
	assert.Equal(t, 8, got.Width)

	require.NoError(t, host.Dispatch(board.CmdErase))
	assert.False(t, peer.Shapes()[0].Visible)
}

func TestTeapotRotationReachesPeer(t *testing.T) {
	host, peer := linked(t)
	tpl, _ := board.TemplateByName("Teapot")
	_, err := host.Create(tpl, []float64{0, 0, 40, 0})
	require.NoError(t, err)

	assert.True(t, host.Key('a'))
	assert.Equal(t, -5.0, peer.Shapes()[0].Rotation[shape.AxisY])
}

func TestApplyUpdate(t *testing.T) {
	b := board.New(config.Default(), nil)
	t.Cleanup(b.Close)
	var echoed int
	b.OnUpdate = func([]*shape.Shape) { echoed++ }

	c, err := shape.NewCircle(shape.Vec2{}, 10)
	require.NoError(t, err)
	require.NoError(t, Apply(b, AddMessage(c)))

	moved := c.Clone()
	moved.Translate(5, 0)
	require.NoError(t, Apply(b, UpdateMessage([]*shape.Shape{moved})))
	require.Len(t, b.Shapes(), 1)
	assert.Equal(t, shape.Vec2{X: 5}, b.Shapes()[0].Vertices[0])
	assert.Zero(t, echoed, "remote updates are not sent back")

	// an update for a shape never seen adds it
	p, err := shape.NewPoint(shape.Vec2{X: 1})
	require.NoError(t, err)
	require.NoError(t, Apply(b, UpdateMessage([]*shape.Shape{p})))
	assert.Len(t, b.Shapes(), 2)

	// the kind of a shape never changes
	bad, err := shape.NewPoint(shape.Vec2{})
	require.NoError(t, err)
	bad.ID = c.ID
	assert.ErrorIs(t, Apply(b, UpdateMessage([]*shape.Shape{bad})), shape.ErrInvalidShape)
	assert.Equal(t, shape.Circle, b.Shapes()[0].Kind)
}
