package ui

import (
	"fmt"
	"strconv"

	"ShapeBoard/internal/board"
	"ShapeBoard/internal/export"
	"ShapeBoard/internal/shape"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

var arrowCommands = map[fyne.KeyName]board.Command{
	fyne.KeyUp:    board.CmdMoveUp,
	fyne.KeyDown:  board.CmdMoveDown,
	fyne.KeyLeft:  board.CmdMoveLeft,
	fyne.KeyRight: board.CmdMoveRight,
}

// MenuDemo turns the window into the menu-driven demo: shapes are created
// from typed coordinates, dragging cuts a region and the keyboard rotates
// teapots.
func (w *Window) MenuDemo() {
	w.view.OnClick = nil
	w.view.OnDrag = func(from, to shape.Vec2) {
		n := w.board.Cut(from, to)
		w.SetStatus(fmt.Sprintf("Cut %d shapes", n))
	}
	w.win.SetMainMenu(w.mainMenu())
	w.win.Canvas().SetOnTypedRune(w.typedRune)
	w.win.Canvas().SetOnTypedKey(w.typedKey)
	w.setContent(nil)
}

func (w *Window) mainMenu() *fyne.MainMenu {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Save...", w.saveDialog),
		fyne.NewMenuItem("Load...", w.loadDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() { w.exportDialog(".pdf", export.PDF) }),
		fyne.NewMenuItem("Export PNG...", func() { w.exportDialog(".png", export.PNG) }),
	)

	var shapes []*fyne.MenuItem
	for _, t := range board.Templates {
		shapes = append(shapes, fyne.NewMenuItem(t.Name, func() { w.promptTemplate(t) }))
	}

	var colours, fills []*fyne.MenuItem
	for i, p := range board.Palette {
		colours = append(colours, fyne.NewMenuItem(p.Name, w.command(board.CmdColorRed+board.Command(i))))
		fills = append(fills, fyne.NewMenuItem(p.Name, w.command(board.CmdFillRed+board.Command(i))))
	}
	var widths []*fyne.MenuItem
	for i, wd := range board.Widths {
		widths = append(widths, fyne.NewMenuItem(strconv.Itoa(wd), w.command(board.CmdWidth2+board.Command(i))))
	}

	transform := fyne.NewMenu("Transform",
		fyne.NewMenuItem("Move Up", w.command(board.CmdMoveUp)),
		fyne.NewMenuItem("Move Down", w.command(board.CmdMoveDown)),
		fyne.NewMenuItem("Move Left", w.command(board.CmdMoveLeft)),
		fyne.NewMenuItem("Move Right", w.command(board.CmdMoveRight)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Zoom In", w.command(board.CmdZoomIn)),
		fyne.NewMenuItem("Zoom Out", w.command(board.CmdZoomOut)),
		fyne.NewMenuItem("Rotate Teapots", w.command(board.CmdRotate)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Erase", w.command(board.CmdErase)),
		fyne.NewMenuItem("Redraw", w.command(board.CmdRedraw)),
	)
	animation := fyne.NewMenu("Animation",
		fyne.NewMenuItem("Start Rotation", w.command(board.CmdLoopStart)),
		fyne.NewMenuItem("Stop Rotation", w.command(board.CmdLoopStop)),
	)

	return fyne.NewMainMenu(
		file,
		fyne.NewMenu("Shapes", shapes...),
		fyne.NewMenu("Colour", colours...),
		fyne.NewMenu("Width", widths...),
		fyne.NewMenu("Fill", fills...),
		transform,
		animation,
	)
}

// promptTemplate asks for every number of t in one form. Cancelling leaves
// the board as it was.
func (w *Window) promptTemplate(t board.Template) {
	fields := t.Fields()
	entries := make([]*widget.Entry, len(fields))
	items := make([]*widget.FormItem, len(fields))
	for i, f := range fields {
		e := widget.NewEntry()
		e.Validator = validateNumber
		entries[i] = e
		items[i] = widget.NewFormItem(f, e)
	}

	dialog.ShowForm("New "+t.Name, "Create", "Cancel", items, func(ok bool) {
		if !ok {
			w.board.CancelEntry()
			w.SetStatus("Cancelled")
			return
		}
		values, err := parseNumbers(entries)
		if err != nil {
			w.ShowError(err)
			return
		}
		s, err := w.board.Create(t, values)
		if err != nil {
			w.ShowError(err)
			return
		}
		w.SetStatus("Added " + s.Kind.String())
	}, w.win)
}

func (w *Window) typedRune(r rune) {
	switch {
	case w.board.Key(r):
	case r == '+':
		w.command(board.CmdZoomIn)()
	case r == '-':
		w.command(board.CmdZoomOut)()
	}
}

func (w *Window) typedKey(e *fyne.KeyEvent) {
	if cmd, ok := arrowCommands[e.Name]; ok {
		w.command(cmd)()
	}
}
