package shape

// List is the ordered set of shapes drawn in a session. Insertion order is
// draw order, so later shapes paint over earlier ones. Shapes are never
// removed one by one; erasing hides them.
//
// A List is not safe for concurrent use. It belongs to the UI thread.
type List struct {
	shapes []*Shape
}

func NewList() *List {
	return &List{}
}

func (l *List) Add(s *Shape) {
	l.shapes = append(l.shapes, s)
}

func (l *List) Len() int { return len(l.shapes) }

// All returns the shapes in draw order. The slice is a copy; the shapes are
// not.
func (l *List) All() []*Shape {
	return append([]*Shape(nil), l.shapes...)
}

// Each calls fn for every shape in draw order until fn returns false.
func (l *List) Each(fn func(*Shape) bool) {
	for _, s := range l.shapes {
		if !fn(s) {
			return
		}
	}
}

func (l *List) OfKind(k Kind) []*Shape {
	var out []*Shape
	for _, s := range l.shapes {
		if s.Kind == k {
			out = append(out, s)
		}
	}
	return out
}

func (l *List) Visible() []*Shape {
	var out []*Shape
	for _, s := range l.shapes {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}

// Last returns the most recently added visible shape.
func (l *List) Last() (*Shape, bool) {
	for i := len(l.shapes) - 1; i >= 0; i-- {
		if l.shapes[i].Visible {
			return l.shapes[i], true
		}
	}
	return nil, false
}

func (l *List) Get(id string) (*Shape, bool) {
	for _, s := range l.shapes {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Hide marks the shape with the given id invisible.
func (l *List) Hide(id string) bool {
	s, ok := l.Get(id)
	if !ok || !s.Visible {
		return false
	}
	s.Visible = false
	return true
}

// RemoveInRegion hides every visible shape whose bounds touch r and
// returns how many were hidden.
func (l *List) RemoveInRegion(r Rect) int {
	n := 0
	for _, s := range l.shapes {
		if s.Visible && s.Bounds().Intersects(r) {
			s.Visible = false
			n++
		}
	}
	return n
}

// Replace swaps the whole content, e.g. after a successful load.
func (l *List) Replace(shapes []*Shape) {
	l.shapes = append([]*Shape(nil), shapes...)
}

func (l *List) Clear() {
	l.shapes = nil
}
