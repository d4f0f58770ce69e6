package ui

import (
	"fmt"
	"image/color"

	"ShapeBoard/internal/board"
	"ShapeBoard/internal/shape"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var toolModes = []struct {
	Name string
	Mode board.Mode
}{
	{"Point", board.ModePoint},
	{"Line", board.ModeLine},
	{"Circle", board.ModeCircle},
	{"Polygon", board.ModePolygon},
}

const noFill = "None"

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    shape.Color
	OnTapped func(shape.Color)
}

func newColorSwatch(c shape.Color, tapped func(shape.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(toColor(s.Color))
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// PaintDemo turns the window into the click-driven demo with a tool bar.
func (w *Window) PaintDemo() {
	w.view.OnDrag = nil
	w.view.OnClick = w.paintClick
	w.setContent(w.paintToolbar())
}

func (w *Window) paintToolbar() fyne.CanvasObject {
	var names []string
	for _, t := range toolModes {
		names = append(names, t.Name)
	}
	tools := widget.NewRadioGroup(names, func(name string) {
		w.selectTool(name)
	})
	tools.Horizontal = true

	buffer := widget.NewButton("Buffer", w.promptBuffer)

	onColorTapped := func(c shape.Color) {
		w.board.SetStyleColor(c)
	}
	colorBox := container.NewHBox(newColorSwatch(shape.Black, onColorTapped))
	fillNames := []string{noFill}
	for _, p := range board.Palette {
		colorBox.Add(newColorSwatch(p.Color, onColorTapped))
		fillNames = append(fillNames, p.Name)
	}

	fill := widget.NewSelect(fillNames, w.selectFill)
	fill.SetSelected(noFill)

	strokeSlider := widget.NewSlider(1, 15)
	strokeSlider.SetValue(float64(w.board.Style().Width))
	strokeSlider.OnChanged = func(val float64) {
		if err := w.board.SetStyleWidth(int(val)); err != nil {
			w.SetStatus(err.Error())
		}
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tools,
		buffer,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewLabel("Fill:"),
		fill,
		layout.NewSpacer(),
	)
}

func (w *Window) selectTool(name string) {
	mode := board.ModeNone
	for _, t := range toolModes {
		if t.Name == name {
			mode = t.Mode
		}
	}
	w.board.SetMode(mode)
	w.SetStatus("Tool: " + mode.String())
}

func (w *Window) selectFill(name string) {
	for _, p := range board.Palette {
		if p.Name == name {
			c := p.Color
			w.board.SetStyleFill(&c)
			return
		}
	}
	w.board.SetStyleFill(nil)
}

func (w *Window) paintClick(p shape.Vec2) {
	res, err := w.board.Click(p)
	if err != nil {
		w.ShowError(err)
		return
	}
	switch res {
	case board.ClickAdded:
		w.SetStatus(fmt.Sprintf("%d shapes", len(w.board.Shapes())))
	case board.ClickNeedRadius:
		w.promptNumber("Circle", "radius", func(r float64) error {
			_, err := w.board.CompleteCircle(r)
			return err
		}, w.board.CancelEntry)
	}
}

func (w *Window) promptBuffer() {
	w.promptNumber("Buffer", "width", func(width float64) error {
		n, err := w.board.Buffer(width)
		if err != nil {
			return err
		}
		w.SetStatus(fmt.Sprintf("Buffered %d points", n))
		return nil
	}, nil)
}
