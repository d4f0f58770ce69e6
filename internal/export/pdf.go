package export

import (
	"fmt"
	"io"

	"ShapeBoard/internal/render"
	"ShapeBoard/internal/shape"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jung-kurt/gofpdf"
)

// pdfCanvas draws render primitives onto a single gofpdf page whose size in
// points equals the viewport size in pixels.
type pdfCanvas struct {
	pdf *gofpdf.Fpdf
	vp  render.Viewport
}

func newPDFCanvas(vp render.Viewport, bg shape.Color) *pdfCanvas {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: vp.Width, Ht: vp.Height},
	})
	p.SetAutoPageBreak(false, 0)
	p.SetMargins(0, 0, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	c := &pdfCanvas{pdf: p, vp: vp}
	c.fill(bg)
	p.Rect(0, 0, vp.Width, vp.Height, "F")
	return c
}

func rgb(c shape.Color) (int, int, int) {
	r, g, b := c.RGBA8()
	return int(r), int(g), int(b)
}

func (c *pdfCanvas) stroke(col shape.Color, width float64) {
	c.pdf.SetDrawColor(rgb(col))
	if width < 0.5 {
		width = 0.5
	}
	c.pdf.SetLineWidth(width)
}

func (c *pdfCanvas) fill(col shape.Color) {
	c.pdf.SetFillColor(rgb(col))
}

func (c *pdfCanvas) Dot(p shape.Vec2, col shape.Color, width float64) {
	if width < 1 {
		width = 1
	}
	x, y := c.vp.ToPixel(p)
	c.fill(col)
	c.pdf.Circle(x, y, width/2, "F")
}

func (c *pdfCanvas) Line(a, b shape.Vec2, col shape.Color, width float64) {
	ax, ay := c.vp.ToPixel(a)
	bx, by := c.vp.ToPixel(b)
	c.stroke(col, width)
	c.pdf.Line(ax, ay, bx, by)
}

func (c *pdfCanvas) FillPolygon(pts []shape.Vec2, col shape.Color) {
	if len(pts) < 3 {
		return
	}
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		out[i].X, out[i].Y = c.vp.ToPixel(p)
	}
	c.fill(col)
	c.pdf.Polygon(out, "F")
}

func (c *pdfCanvas) Mesh(m *render.Mesh, xf mgl64.Mat4, col shape.Color, width float64) {
	for _, seg := range render.ProjectMesh(m, xf) {
		c.Line(seg[0], seg[1], col, width/2)
	}
}

// PDF renders the visible shapes on a one-page document the size of vp.
func PDF(w io.Writer, shapes []*shape.Shape, r *render.Renderer, vp render.Viewport, bg shape.Color) error {
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("pdf: empty viewport %gx%g", vp.Width, vp.Height)
	}
	c := newPDFCanvas(vp, bg)
	r.DrawList(c, shapes)
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}
