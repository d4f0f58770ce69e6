package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"ShapeBoard/internal/shape"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/vector"
)

// Raster is a software Canvas over an RGBA image, used for PNG export and
// for filled areas in the fyne board.
type Raster struct {
	vp  Viewport
	img *image.RGBA
	z   *vector.Rasterizer
}

func NewRaster(vp Viewport, bg shape.Color) *Raster {
	w, h := int(math.Ceil(vp.Width)), int(math.Ceil(vp.Height))
	r := &Raster{
		vp:  vp,
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		z:   vector.NewRasterizer(w, h),
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(toRGBA(bg, 255)), image.Point{}, draw.Src)
	return r
}

// NewTransparentRaster starts from a fully transparent image so the result
// can be layered over other canvas objects.
func NewTransparentRaster(vp Viewport) *Raster {
	w, h := int(math.Ceil(vp.Width)), int(math.Ceil(vp.Height))
	return &Raster{
		vp:  vp,
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		z:   vector.NewRasterizer(w, h),
	}
}

func toRGBA(c shape.Color, a uint8) color.RGBA {
	r, g, b := c.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) WritePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) px(p shape.Vec2) (float32, float32) {
	x, y := r.vp.ToPixel(p)
	return float32(x), float32(y)
}

func (r *Raster) paint(c shape.Color) {
	b := r.img.Bounds()
	r.z.Draw(r.img, b, image.NewUniform(toRGBA(c, 255)), image.Point{})
	r.z.Reset(b.Dx(), b.Dy())
}

func (r *Raster) FillPolygon(pts []shape.Vec2, c shape.Color) {
	if len(pts) < 3 {
		return
	}
	r.z.MoveTo(r.px(pts[0]))
	for _, p := range pts[1:] {
		r.z.LineTo(r.px(p))
	}
	r.z.ClosePath()
	r.paint(c)
}

// Line is drawn as a quad of the given width around the segment.
func (r *Raster) Line(a, b shape.Vec2, c shape.Color, width float64) {
	d := b.Sub(a)
	n := math.Hypot(d.X, d.Y)
	if n == 0 {
		r.Dot(a, c, width)
		return
	}
	if width < 1 {
		width = 1
	}
	off := shape.Vec2{X: -d.Y / n, Y: d.X / n}.Mul(width / 2)
	r.z.MoveTo(r.px(a.Add(off)))
	r.z.LineTo(r.px(b.Add(off)))
	r.z.LineTo(r.px(b.Sub(off)))
	r.z.LineTo(r.px(a.Sub(off)))
	r.z.ClosePath()
	r.paint(c)
}

func (r *Raster) Dot(p shape.Vec2, c shape.Color, width float64) {
	if width < 1 {
		width = 1
	}
	pts := CircleSamples(p, width/2, 12)
	r.FillPolygon(pts, c)
}

func (r *Raster) Mesh(m *Mesh, xf mgl64.Mat4, c shape.Color, width float64) {
	for _, seg := range ProjectMesh(m, xf) {
		r.Line(seg[0], seg[1], c, width/2)
	}
}
