package ui

import (
	"image/color"
	"math"

	"ShapeBoard/internal/render"
	"ShapeBoard/internal/shape"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/go-gl/mathgl/mgl64"
)

// fyneCanvas turns render primitives into fyne canvas objects positioned
// relative to the board widget.
type fyneCanvas struct {
	vp      render.Viewport
	objects []fyne.CanvasObject
}

func newFyneCanvas(vp render.Viewport) *fyneCanvas {
	return &fyneCanvas{vp: vp}
}

func toColor(c shape.Color) color.Color {
	r, g, b := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func (c *fyneCanvas) pos(p shape.Vec2) fyne.Position {
	x, y := c.vp.ToPixel(p)
	return fyne.NewPos(float32(x), float32(y))
}

func (c *fyneCanvas) Dot(p shape.Vec2, col shape.Color, width float64) {
	r := float32(math.Max(width, 1) / 2)
	dot := canvas.NewCircle(toColor(col))
	dot.Resize(fyne.NewSize(2*r, 2*r))
	dot.Move(c.pos(p).SubtractXY(r, r))
	c.objects = append(c.objects, dot)
}

func (c *fyneCanvas) Line(a, b shape.Vec2, col shape.Color, width float64) {
	l := canvas.NewLine(toColor(col))
	l.StrokeWidth = float32(width)
	l.Position1 = c.pos(a)
	l.Position2 = c.pos(b)
	c.objects = append(c.objects, l)
}

// FillPolygon rasterises the interior into an image covering the
// polygon's pixel bounds clipped to the viewport.
func (c *fyneCanvas) FillPolygon(pts []shape.Vec2, col shape.Color) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		x, y := c.vp.ToPixel(p)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	minX, minY = math.Max(math.Floor(minX), 0), math.Max(math.Floor(minY), 0)
	maxX = math.Min(math.Ceil(maxX)+1, math.Ceil(c.vp.Width))
	maxY = math.Min(math.Ceil(maxY)+1, math.Ceil(c.vp.Height))
	sub := render.Viewport{Width: maxX - minX, Height: maxY - minY}
	// also false for NaN
	if !(sub.Width > 0 && sub.Height > 0) {
		return
	}

	local := make([]shape.Vec2, len(pts))
	for i, p := range pts {
		x, y := c.vp.ToPixel(p)
		local[i] = sub.ToModel(x-minX, y-minY)
	}
	ras := render.NewTransparentRaster(sub)
	ras.FillPolygon(local, col)

	img := canvas.NewImageFromImage(ras.Image())
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScaleFastest
	img.Resize(fyne.NewSize(float32(sub.Width), float32(sub.Height)))
	img.Move(fyne.NewPos(float32(minX), float32(minY)))
	c.objects = append(c.objects, img)
}

func (c *fyneCanvas) Mesh(m *render.Mesh, xf mgl64.Mat4, col shape.Color, width float64) {
	for _, seg := range render.ProjectMesh(m, xf) {
		c.Line(seg[0], seg[1], col, math.Max(width/2, 1))
	}
}
