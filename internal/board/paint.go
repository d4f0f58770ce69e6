package board

import (
	"fmt"

	"ShapeBoard/internal/shape"

	"go.uber.org/zap"
)

// Mode is the active tool of the paint demo.
type Mode int

const (
	ModeNone Mode = iota
	ModePoint
	ModeLine
	ModeCircle
	ModePolygon
)

func (m Mode) String() string {
	switch m {
	case ModePoint:
		return "point"
	case ModeLine:
		return "line"
	case ModeCircle:
		return "circle"
	case ModePolygon:
		return "polygon"
	}
	return "none"
}

// ClickResult tells the host what a click did.
type ClickResult int

const (
	ClickIgnored ClickResult = iota
	ClickPending
	ClickAdded
	// ClickNeedRadius asks the host to prompt for a radius and call
	// CompleteCircle or CancelEntry.
	ClickNeedRadius
)

func (b *Board) Mode() Mode { return b.mode }

// SetMode switches tool and drops any half-entered shape.
func (b *Board) SetMode(m Mode) {
	b.CancelEntry()
	b.mode = m
	b.armEntry()
	b.log.Debug("mode changed", zap.Stringer("mode", m))
}

func (b *Board) armEntry() {
	switch b.mode {
	case ModeLine:
		b.entry.Start(shape.Line, 2)
	case ModeCircle:
		b.entry.Start(shape.Circle, 1)
	case ModePolygon:
		b.entry.StartClosing(shape.Polygon, b.cfg.Entry.CloseThreshold)
	}
}

// CancelEntry aborts the shape being entered and rearms the current tool.
func (b *Board) CancelEntry() {
	hadEntry := (b.entry.Active() && len(b.entry.Pending()) > 0) || b.circleCenter != nil
	b.entry.Cancel()
	b.circleCenter = nil
	b.armEntry()
	if hadEntry {
		b.changed()
	}
}

func (b *Board) styled(s *shape.Shape) *shape.Shape {
	s.SetLineColor(b.style.LineColor)
	s.SetWidth(b.style.Width)
	if s.Kind == shape.Polygon || s.Kind == shape.Circle {
		s.SetFill(b.style.Fill)
	}
	return s
}

// Click feeds one canvas click, in model coordinates, to the current tool.
func (b *Board) Click(p shape.Vec2) (ClickResult, error) {
	if b.circleCenter != nil {
		// waiting for the radius prompt
		return ClickIgnored, nil
	}
	switch b.mode {
	case ModePoint:
		s, err := shape.NewPoint(p)
		if err != nil {
			return ClickIgnored, err
		}
		b.add(b.styled(s))
		return ClickAdded, nil
	case ModeLine, ModeCircle, ModePolygon:
	default:
		return ClickIgnored, nil
	}

	if !b.entry.Add(p) {
		b.changed()
		return ClickPending, nil
	}
	pts := b.entry.Take()

	var (
		s   *shape.Shape
		err error
	)
	switch b.mode {
	case ModeLine:
		s, err = shape.NewLine(pts[0], pts[1])
	case ModeCircle:
		c := pts[0]
		b.circleCenter = &c
		b.changed()
		return ClickNeedRadius, nil
	case ModePolygon:
		s, err = shape.NewPolygon(pts)
	}
	b.armEntry()
	if err != nil {
		return ClickIgnored, err
	}
	b.add(b.styled(s))
	return ClickAdded, nil
}

// CompleteCircle finishes a circle whose centre was clicked.
func (b *Board) CompleteCircle(radius float64) (*shape.Shape, error) {
	if b.circleCenter == nil {
		return nil, fmt.Errorf("no circle centre: %w", ErrBadInput)
	}
	s, err := shape.NewCircle(*b.circleCenter, radius)
	if err != nil {
		return nil, err
	}
	b.circleCenter = nil
	b.armEntry()
	b.add(b.styled(s))
	return s, nil
}

// SetStyleFill sets the fill used for closed shapes drawn from now on.
func (b *Board) SetStyleFill(c *shape.Color) {
	if c == nil {
		b.style.Fill = nil
		return
	}
	f := shape.RGB(c.R, c.G, c.B)
	b.style.Fill = &f
}

// SetStyleColor changes the colour of shapes drawn from now on without
// touching existing ones.
func (b *Board) SetStyleColor(c shape.Color) {
	b.style.LineColor = shape.RGB(c.R, c.G, c.B)
}

func (b *Board) SetStyleWidth(w int) error {
	if w <= 0 {
		return fmt.Errorf("width %d: %w", w, ErrBadInput)
	}
	b.style.Width = w
	return nil
}
