package board

import (
	"fmt"

	"ShapeBoard/internal/shape"

	"go.uber.org/zap"
)

// Command identifies a menu item that needs no further input.
type Command int

const (
	CmdRedraw Command = iota + 1

	CmdColorRed
	CmdColorGreen
	CmdColorBlue
	CmdColorYellow
	CmdColorMagenta
	CmdColorCyan

	CmdWidth2
	CmdWidth5
	CmdWidth8
	CmdWidth10
	CmdWidth15

	CmdMoveUp
	CmdMoveDown
	CmdMoveLeft
	CmdMoveRight

	CmdZoomIn
	CmdZoomOut
	CmdRotate

	CmdFillRed
	CmdFillGreen
	CmdFillBlue
	CmdFillYellow
	CmdFillMagenta
	CmdFillCyan

	CmdErase
	CmdLoopStart
	CmdLoopStop
)

// Palette is the colour order shared by the colour and fill menus.
var Palette = []struct {
	Name  string
	Color shape.Color
}{
	{"Red", shape.Red},
	{"Green", shape.Green},
	{"Blue", shape.Blue},
	{"Yellow", shape.Yellow},
	{"Magenta", shape.Magenta},
	{"Cyan", shape.Cyan},
}

// Widths are the line widths offered by the width menu.
var Widths = []int{2, 5, 8, 10, 15}

func (b *Board) commandTable() map[Command]func() error {
	t := map[Command]func() error{
		CmdRedraw: func() error {
			b.changed()
			return nil
		},
		CmdMoveUp:    func() error { return b.translate(0, b.cfg.Transform.MoveStep) },
		CmdMoveDown:  func() error { return b.translate(0, -b.cfg.Transform.MoveStep) },
		CmdMoveLeft:  func() error { return b.translate(-b.cfg.Transform.MoveStep, 0) },
		CmdMoveRight: func() error { return b.translate(b.cfg.Transform.MoveStep, 0) },
		CmdZoomIn:    func() error { return b.scale(b.cfg.Transform.ScaleStep) },
		CmdZoomOut:   func() error { return b.scale(1 / b.cfg.Transform.ScaleStep) },
		CmdRotate: func() error {
			b.RotateTeapots(shape.AxisY, b.cfg.Transform.RotateStep)
			return nil
		},
		CmdErase: b.eraseSelected,
		CmdLoopStart: func() error {
			b.StartLoop()
			return nil
		},
		CmdLoopStop: func() error {
			b.StopLoop()
			return nil
		},
	}
	for i, p := range Palette {
		c := p.Color
		t[CmdColorRed+Command(i)] = func() error { return b.SetLineColor(c) }
		t[CmdFillRed+Command(i)] = func() error { return b.SetFill(&c) }
	}
	for i, w := range Widths {
		t[CmdWidth2+Command(i)] = func() error { return b.SetWidth(w) }
	}
	return t
}

// Dispatch runs a menu command.
func (b *Board) Dispatch(cmd Command) error {
	fn, ok := b.commands[cmd]
	if !ok {
		return fmt.Errorf("command %d: %w", int(cmd), ErrUnknownCommand)
	}
	if err := fn(); err != nil {
		b.log.Debug("command failed", zap.Int("command", int(cmd)), zap.Error(err))
		return err
	}
	return nil
}

func (b *Board) withSelected(fn func(*shape.Shape)) error {
	s, ok := b.Selected()
	if !ok {
		return ErrNoSelection
	}
	fn(s)
	b.updated(s)
	return nil
}

func (b *Board) translate(dx, dy float64) error {
	return b.withSelected(func(s *shape.Shape) { s.Translate(dx, dy) })
}

func (b *Board) scale(k float64) error {
	return b.withSelected(func(s *shape.Shape) { s.Scale(k) })
}

func (b *Board) eraseSelected() error {
	return b.withSelected(func(s *shape.Shape) {
		b.list.Hide(s.ID)
		b.log.Info("shape erased", zap.String("id", s.ID))
	})
}

// SetLineColor recolours the selected shape and makes c the colour of
// shapes drawn from now on. With nothing selected only the style changes.
func (b *Board) SetLineColor(c shape.Color) error {
	b.style.LineColor = shape.RGB(c.R, c.G, c.B)
	if s, ok := b.Selected(); ok {
		s.SetLineColor(c)
		b.updated(s)
	}
	return nil
}

func (b *Board) SetWidth(w int) error {
	if w <= 0 {
		return fmt.Errorf("width %d: %w", w, ErrBadInput)
	}
	b.style.Width = w
	if s, ok := b.Selected(); ok {
		s.SetWidth(w)
		b.updated(s)
	}
	return nil
}

// SetFill fills the selected shape. Only closed shapes show a fill.
func (b *Board) SetFill(c *shape.Color) error {
	return b.withSelected(func(s *shape.Shape) { s.SetFill(c) })
}

// RotateTeapots rotates every teapot on the board; other kinds, curves
// included, are left alone.
func (b *Board) RotateTeapots(axis shape.Axis, deg float64) int {
	teapots := b.list.OfKind(shape.Teapot)
	for _, s := range teapots {
		s.Rotate(axis, deg)
	}
	b.updated(teapots...)
	return len(teapots)
}

// Key handles the single-letter keyboard commands of the menu demo and
// reports whether the key was used.
func (b *Board) Key(r rune) bool {
	step := b.cfg.Transform.RotateStep
	switch r {
	case 'w':
		b.RotateTeapots(shape.AxisX, -step)
	case 's':
		b.RotateTeapots(shape.AxisX, step)
	case 'a':
		b.RotateTeapots(shape.AxisY, -step)
	case 'd':
		b.RotateTeapots(shape.AxisY, step)
	case 'r':
		b.StartLoop()
	case 'e':
		b.StopLoop()
	default:
		return false
	}
	return true
}
