package board

import (
	"errors"
	"fmt"
	"io"

	"ShapeBoard/internal/config"
	"ShapeBoard/internal/entry"
	"ShapeBoard/internal/render"
	"ShapeBoard/internal/shape"

	"go.uber.org/zap"
)

var (
	ErrNoSelection    = errors.New("no shape selected")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadInput       = errors.New("bad input")
)

// Style is applied to shapes drawn in the paint demo.
type Style struct {
	LineColor shape.Color
	Width     int
	Fill      *shape.Color
}

// Board is the application state shared by every event handler: the shape
// list, the current style and the in-progress entry. It is created once at
// startup and must only be used from the UI thread.
type Board struct {
	cfg      *config.Config
	log      *zap.Logger
	list     *shape.List
	renderer *render.Renderer
	entry    entry.Machine
	commands map[Command]func() error

	style        Style
	mode         Mode
	circleCenter *shape.Vec2
	loopGen      int
	looping      bool

	// OnChange fires after anything visible changed.
	OnChange func()
	// OnAdd, OnCut and OnUpdate fire for local edits only, so they can be
	// sent to peers. OnUpdate carries every shape a command changed in
	// place. OnReplace fires after a successful Load.
	OnAdd     func(*shape.Shape)
	OnCut     func(shape.Rect)
	OnUpdate  func([]*shape.Shape)
	OnReplace func([]*shape.Shape)
	// OnLoopStart fires when the rotation loop is armed; the host starts a
	// timer calling Tick(gen).
	OnLoopStart func(gen int)
}

func New(cfg *config.Config, log *zap.Logger) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Board{
		cfg:  cfg,
		log:  log.Named("board"),
		list: shape.NewList(),
		renderer: render.New(render.Options{
			CircleSegments: cfg.Render.CircleSegments,
			CurveSteps:     cfg.Render.CurveSteps,
		}),
		style: Style{LineColor: shape.Black, Width: shape.DefaultWidth},
	}
	b.commands = b.commandTable()
	return b
}

// Close stops the rotation loop and drops hooks. The board must not be used
// afterwards.
func (b *Board) Close() {
	b.StopLoop()
	b.entry.Cancel()
	b.OnChange, b.OnAdd, b.OnCut, b.OnUpdate, b.OnReplace, b.OnLoopStart = nil, nil, nil, nil, nil, nil
	b.log.Debug("board closed", zap.Int("shapes", b.list.Len()))
}

func (b *Board) Config() *config.Config     { return b.cfg }
func (b *Board) Renderer() *render.Renderer { return b.renderer }
func (b *Board) Style() Style               { return b.style }
func (b *Board) Shapes() []*shape.Shape     { return b.list.All() }
func (b *Board) Entry() entry.Phase         { return b.entry.Phase() }

func (b *Board) Background() shape.Color {
	bg := b.cfg.Render.Background
	return shape.RGB(bg[0], bg[1], bg[2])
}

func (b *Board) changed() {
	if b.OnChange != nil {
		b.OnChange()
	}
}

// updated reports shapes edited in place by a local command.
func (b *Board) updated(shapes ...*shape.Shape) {
	if len(shapes) == 0 {
		return
	}
	if b.OnUpdate != nil {
		b.OnUpdate(shapes)
	}
	b.changed()
}

// Selected is the most recently added visible shape, the target of the
// transform, colour, fill and erase commands.
func (b *Board) Selected() (*shape.Shape, bool) {
	return b.list.Last()
}

func (b *Board) add(s *shape.Shape) {
	b.list.Add(s)
	b.log.Info("shape added",
		zap.String("kind", s.Kind.String()),
		zap.String("id", s.ID),
		zap.Int("vertices", len(s.Vertices)))
	if b.OnAdd != nil {
		b.OnAdd(s)
	}
	b.changed()
}

// Create builds a shape from typed numbers laid out as t.Fields and
// appends it. Nothing is appended on error.
func (b *Board) Create(t Template, values []float64) (*shape.Shape, error) {
	fields := t.Fields()
	if len(values) != len(fields) {
		return nil, fmt.Errorf("%s wants %d numbers, got %d: %w", t.Name, len(fields), len(values), ErrBadInput)
	}

	b.entry.Start(t.Kind, t.Points)
	for i := 0; i < t.Points; i++ {
		b.entry.Add(shape.Vec2{X: values[2*i], Y: values[2*i+1]})
	}
	pts := b.entry.Take()
	s, err := t.build(pts, values[2*t.Points:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Name, err)
	}
	s.SetLineColor(t.Color)
	b.add(s)
	return s, nil
}

// Add appends a shape built elsewhere, validating it first.
func (b *Board) Add(s *shape.Shape) error {
	if err := s.Validate(); err != nil {
		return err
	}
	b.add(s)
	return nil
}

// AddRemote appends a shape received from a peer. Shapes already on the
// board are ignored.
func (b *Board) AddRemote(s *shape.Shape) bool {
	if _, ok := b.list.Get(s.ID); ok {
		return false
	}
	if err := s.Validate(); err != nil {
		b.log.Warn("dropping remote shape", zap.Error(err))
		return false
	}
	b.list.Add(s)
	b.log.Debug("remote shape added", zap.String("id", s.ID))
	b.changed()
	return true
}

// UpdateRemote overwrites the shape with s's ID by a peer's copy of it,
// without firing OnUpdate. Unknown IDs are added, as the add may have been
// missed; a changed kind is refused.
func (b *Board) UpdateRemote(s *shape.Shape) error {
	if err := s.Validate(); err != nil {
		return err
	}
	cur, ok := b.list.Get(s.ID)
	if !ok {
		b.list.Add(s)
		b.changed()
		return nil
	}
	if cur.Kind != s.Kind {
		return fmt.Errorf("update turns %s %s into %s: %w", cur.Kind, s.ID, s.Kind, shape.ErrInvalidShape)
	}
	*cur = *s.Clone()
	b.log.Debug("remote shape updated", zap.String("id", s.ID))
	b.changed()
	return nil
}

// Cut hides every shape touching the rectangle spanned by the press and
// release points of a drag.
func (b *Board) Cut(from, to shape.Vec2) int {
	r := shape.RectFrom(from, to)
	n := b.list.RemoveInRegion(r)
	b.log.Info("cut region", zap.Stringer("min", r.Min), zap.Stringer("max", r.Max), zap.Int("hidden", n))
	if b.OnCut != nil {
		b.OnCut(r)
	}
	if n > 0 {
		b.changed()
	}
	return n
}

func (b *Board) CutRemote(r shape.Rect) int {
	n := b.list.RemoveInRegion(r)
	if n > 0 {
		b.changed()
	}
	return n
}

// Buffer outlines a circle of the given radius around every visible point
// and returns how many were added.
func (b *Board) Buffer(width float64) (int, error) {
	if width <= 0 {
		return 0, fmt.Errorf("buffer width %g: %w", width, ErrBadInput)
	}
	n := 0
	for _, p := range b.list.OfKind(shape.Point) {
		if !p.Visible {
			continue
		}
		c, err := shape.NewCircle(p.Vertices[0], width)
		if err != nil {
			return n, err
		}
		c.SetLineColor(shape.Red)
		c.SetWidth(1)
		b.add(c)
		n++
	}
	return n, nil
}

func (b *Board) Save(w io.Writer) error {
	if err := b.list.Save(w); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	b.log.Info("board saved", zap.Int("shapes", b.list.Len()))
	return nil
}

// Load replaces the board content. On error nothing changes.
func (b *Board) Load(r io.Reader) error {
	if err := b.list.Load(r); err != nil {
		b.log.Warn("load failed, keeping current shapes", zap.Error(err))
		return fmt.Errorf("load: %w", err)
	}
	b.CancelEntry()
	b.log.Info("board loaded", zap.Int("shapes", b.list.Len()))
	if b.OnReplace != nil {
		b.OnReplace(b.list.All())
	}
	b.changed()
	return nil
}

// Replace swaps in a snapshot received from a peer.
func (b *Board) Replace(shapes []*shape.Shape) {
	b.list.Replace(shapes)
	b.changed()
}

// Draw paints every visible shape followed by the preview of the shape
// being entered.
func (b *Board) Draw(c render.Canvas) {
	b.renderer.DrawList(c, b.list.All())

	pending := b.entry.Pending()
	preview := shape.Color{R: 0.6, G: 0.6, B: 0.6}
	for i, p := range pending {
		c.Dot(p, preview, 4)
		if i > 0 {
			c.Line(pending[i-1], p, preview, 1)
		}
	}
	if b.circleCenter != nil {
		c.Dot(*b.circleCenter, preview, 4)
	}
}
