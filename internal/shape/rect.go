package shape

import "math"

// Rect is an axis-aligned rectangle in model coordinates. Min <= Max after
// RectFrom.
type Rect struct{ Min, Max Vec2 }

// RectFrom normalises two corners, e.g. a mouse press and release.
func RectFrom(a, b Vec2) Rect {
	return Rect{
		Min: Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Extend(p Vec2) Rect {
	return Rect{
		Min: Vec2{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Vec2{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Intersects counts touching edges as an intersection.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
