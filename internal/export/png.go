package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ShapeBoard/internal/render"
	"ShapeBoard/internal/shape"
)

// PNG rasterises the visible shapes over bg.
func PNG(w io.Writer, shapes []*shape.Shape, r *render.Renderer, vp render.Viewport, bg shape.Color) error {
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("png: empty viewport %gx%g", vp.Width, vp.Height)
	}
	ras := render.NewRaster(vp, bg)
	r.DrawList(ras, shapes)
	if err := ras.WritePNG(w); err != nil {
		return fmt.Errorf("png: %w", err)
	}
	return nil
}

// ToFile picks PDF or PNG from the file extension.
func ToFile(path string, shapes []*shape.Shape, r *render.Renderer, vp render.Viewport, bg shape.Color) error {
	var write func(io.Writer, []*shape.Shape, *render.Renderer, render.Viewport, shape.Color) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		write = PDF
	case ".png":
		write = PNG
	default:
		return fmt.Errorf("export %s: unsupported format", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, shapes, r, vp, bg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
