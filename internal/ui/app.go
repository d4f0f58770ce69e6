package ui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ShapeBoard/internal/board"
	"ShapeBoard/internal/export"
	"ShapeBoard/internal/render"
	"ShapeBoard/internal/shape"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

const boardExt = ".board"

type exportFunc func(io.Writer, []*shape.Shape, *render.Renderer, render.Viewport, shape.Color) error

// Window hosts one board. Every method must be called on the fyne UI
// thread; goroutines go through Post.
type Window struct {
	log    *zap.Logger
	win    fyne.Window
	board  *board.Board
	view   *BoardWidget
	status *widget.Label
	share  *widget.Label
}

func NewWindow(a fyne.App, b *board.Board, log *zap.Logger, title string) *Window {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := b.Config().Window
	w := &Window{
		log:    log.Named("ui"),
		win:    a.NewWindow(title),
		board:  b,
		view:   NewBoardWidget(b),
		status: widget.NewLabel("Ready"),
		share:  widget.NewLabel(""),
	}
	w.share.Hide()
	w.win.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))
	w.win.SetOnClosed(b.Close)

	b.OnChange = w.view.Refresh
	b.OnLoopStart = w.runLoop
	w.setContent(nil)
	return w
}

func (w *Window) setContent(top fyne.CanvasObject) {
	bottom := container.NewHBox(
		widget.NewButton("Export PDF", func() { w.exportDialog(".pdf", export.PDF) }),
		widget.NewButton("Export PNG", func() { w.exportDialog(".png", export.PNG) }),
		layout.NewSpacer(),
		w.share,
		widget.NewSeparator(),
		w.status,
	)
	w.win.SetContent(container.NewBorder(top, bottom, nil, nil, w.view))
}

func (w *Window) Board() *board.Board     { return w.board }
func (w *Window) View() *BoardWidget      { return w.view }
func (w *Window) SetStatus(text string)   { w.status.SetText(text) }
func (w *Window) Post(fn func())          { fyne.Do(fn) }
func (w *Window) ShowAndRun()             { w.win.ShowAndRun() }
func (w *Window) SetTitle(title string)   { w.win.SetTitle(title) }
func (w *Window) StatusText() string      { return w.status.Text }
func (w *Window) FyneWindow() fyne.Window { return w.win }

// PostStatus sets the status text from any goroutine.
func (w *Window) PostStatus(text string) {
	fyne.Do(func() { w.status.SetText(text) })
}

func (w *Window) SetShareLink(link string) {
	w.share.SetText("Share: " + link)
	w.share.Show()
}

func (w *Window) ShowError(err error) {
	w.log.Warn("user action failed", zap.Error(err))
	w.status.SetText(err.Error())
	dialog.ShowError(err, w.win)
}

// runLoop drives one generation of the rotation loop until Tick reports
// it stopped.
func (w *Window) runLoop(gen int) {
	interval := w.board.Config().TickInterval()
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for range t.C {
			again := false
			fyne.DoAndWait(func() { again = w.board.Tick(gen) })
			if !again {
				return
			}
		}
	}()
}

func (w *Window) command(cmd board.Command) func() {
	return func() {
		if err := w.board.Dispatch(cmd); err != nil {
			w.SetStatus(err.Error())
		}
	}
}

func (w *Window) saveDialog() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			w.ShowError(err)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := w.board.Save(wc); err != nil {
			w.ShowError(err)
			return
		}
		w.SetStatus(fmt.Sprintf("Saved %d shapes to %s", len(w.board.Shapes()), wc.URI().Name()))
	}, w.win)
	d.SetFileName("shapes" + boardExt)
	d.Show()
}

func (w *Window) loadDialog() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			w.ShowError(err)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		if err := w.board.Load(rc); err != nil {
			w.ShowError(err)
			return
		}
		w.SetStatus(fmt.Sprintf("Loaded %d shapes from %s", len(w.board.Shapes()), rc.URI().Name()))
	}, w.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{boardExt, ".txt"}))
	d.Show()
}

func (w *Window) exportDialog(ext string, write exportFunc) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			w.ShowError(err)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		b := w.board
		if err := write(wc, b.Shapes(), b.Renderer(), w.view.Viewport(), b.Background()); err != nil {
			w.ShowError(err)
			return
		}
		w.SetStatus("Exported " + wc.URI().Name())
	}, w.win)
	d.SetFileName("board" + ext)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func validateNumber(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return errors.New("not a number")
	}
	return nil
}

func parseNumbers(entries []*widget.Entry) ([]float64, error) {
	out := make([]float64, len(entries))
	for i, e := range entries {
		v, err := strconv.ParseFloat(strings.TrimSpace(e.Text), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number: %w", e.Text, board.ErrBadInput)
		}
		out[i] = v
	}
	return out, nil
}

// promptNumber asks for one number. cancel also runs when apply fails.
func (w *Window) promptNumber(title, label string, apply func(float64) error, cancel func()) {
	e := widget.NewEntry()
	e.Validator = validateNumber
	items := []*widget.FormItem{widget.NewFormItem(label, e)}
	dialog.ShowForm(title, "OK", "Cancel", items, func(ok bool) {
		if !ok {
			if cancel != nil {
				cancel()
			}
			return
		}
		v, err := parseNumbers([]*widget.Entry{e})
		if err == nil {
			err = apply(v[0])
		}
		if err != nil {
			if cancel != nil {
				cancel()
			}
			w.ShowError(err)
		}
	}, w.win)
}
