// Package entry collects the coordinates of a shape being entered, one
// point at a time, from typed values or mouse clicks.
package entry

import (
	"ShapeBoard/internal/shape"
)

type Phase int

const (
	Idle Phase = iota
	Collecting
	Complete
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Collecting:
		return "collecting"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// Machine walks Idle → Collecting → Complete → Idle. It holds the finished
// points in Complete until Take hands them out.
//
// A fixed session (Start) completes after exactly n points. A closing
// session (StartClosing) has no fixed count: it completes when a point
// lands within the threshold of the first point while at least three
// points are held, and that closing point is dropped.
type Machine struct {
	phase     Phase
	kind      shape.Kind
	remaining int
	closeDist float64
	points    []shape.Vec2
}

func (m *Machine) Start(kind shape.Kind, n int) {
	m.reset()
	if n <= 0 {
		return
	}
	m.phase = Collecting
	m.kind = kind
	m.remaining = n
	m.points = make([]shape.Vec2, 0, n)
}

func (m *Machine) StartClosing(kind shape.Kind, threshold float64) {
	m.reset()
	m.phase = Collecting
	m.kind = kind
	m.remaining = -1
	m.closeDist = threshold
}

// Add feeds one point and reports whether it completed the session.
// Points fed outside Collecting are ignored.
func (m *Machine) Add(p shape.Vec2) bool {
	if m.phase != Collecting {
		return false
	}
	if m.remaining < 0 {
		if len(m.points) >= 3 && p.Dist(m.points[0]) <= m.closeDist {
			m.phase = Complete
			return true
		}
		m.points = append(m.points, p)
		return false
	}
	m.points = append(m.points, p)
	m.remaining--
	if m.remaining == 0 {
		m.phase = Complete
	}
	return m.phase == Complete
}

// Take returns the points of a completed session and goes back to Idle.
// It returns nil in any other phase.
func (m *Machine) Take() []shape.Vec2 {
	if m.phase != Complete {
		return nil
	}
	pts := m.points
	m.reset()
	return pts
}

// Cancel drops anything collected so far.
func (m *Machine) Cancel() { m.reset() }

func (m *Machine) reset() {
	m.phase = Idle
	m.remaining = 0
	m.closeDist = 0
	m.points = nil
}

func (m *Machine) Phase() Phase     { return m.phase }
func (m *Machine) Kind() shape.Kind { return m.kind }
func (m *Machine) Active() bool     { return m.phase == Collecting }

// Remaining is the number of points still needed, or -1 for a closing
// session.
func (m *Machine) Remaining() int { return m.remaining }

// Pending returns a copy of the points collected so far, for previews.
func (m *Machine) Pending() []shape.Vec2 {
	return append([]shape.Vec2(nil), m.points...)
}
