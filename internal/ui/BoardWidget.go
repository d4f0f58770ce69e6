package ui

import (
	"ShapeBoard/internal/board"
	"ShapeBoard/internal/render"
	"ShapeBoard/internal/shape"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows a board and turns primary-button mouse input into model
// coordinates.
type BoardWidget struct {
	widget.BaseWidget
	board *board.Board

	// OnClick receives every press.
	OnClick func(p shape.Vec2)
	// OnDrag receives the press and release points of a drag. A click
	// without movement reports the same point twice.
	OnDrag func(from, to shape.Vec2)

	pressed *shape.Vec2
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(b *board.Board) *BoardWidget {
	w := &BoardWidget{board: b}
	w.ExtendBaseWidget(w)
	return w
}

// Viewport is the widget's current size, or the configured window size
// before the first layout.
func (w *BoardWidget) Viewport() render.Viewport {
	s := w.Size()
	if s.Width <= 0 || s.Height <= 0 {
		cfg := w.board.Config().Window
		return render.Viewport{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	}
	return render.Viewport{Width: float64(s.Width), Height: float64(s.Height)}
}

func (w *BoardWidget) toModel(p fyne.Position) shape.Vec2 {
	return w.Viewport().ToModel(float64(p.X), float64(p.Y))
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p := w.toModel(e.Position)
	w.pressed = &p
	if w.OnClick != nil {
		w.OnClick(p)
	}
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || w.pressed == nil {
		return
	}
	from, to := *w.pressed, w.toModel(e.Position)
	w.pressed = nil
	if w.OnDrag != nil {
		w.OnDrag(from, to)
	}
}

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{view: w, background: canvas.NewRectangle(toColor(w.board.Background()))}
	r.rebuild()
	return r
}

type boardWidgetRenderer struct {
	view       *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *boardWidgetRenderer) rebuild() {
	fc := newFyneCanvas(r.view.Viewport())
	r.view.board.Draw(fc)
	r.background.FillColor = toColor(r.view.board.Background())
	r.objects = append([]fyne.CanvasObject{r.background}, fc.objects...)
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardWidgetRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.view)
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.rebuild()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }
func (r *boardWidgetRenderer) Destroy()           {}
