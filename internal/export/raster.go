package export

import (
	"fmt"
	"image"
	"image/gif"
	"math"
	"os"

	"github.com/san-kum/springcurve/internal/geom"
	"github.com/san-kum/springcurve/internal/scene"
)

const (
	idxBackground uint8 = iota
	idxSkeleton
	idxTangent
	idxCurve
	idxPoint
	idxPointer
)

// Rasterize draws f onto a paletted image of w x h pixels. The frame is
// given in surface coordinates and scaled by w/surfaceW, h/surfaceH.
// Segments and points with a NaN or Inf coordinate are skipped.
func Rasterize(f scene.Frame, surfaceW, surfaceH float64, w, h int, style Style) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, w, h), style.Palette())
	sx, sy := float64(w)/surfaceW, float64(h)/surfaceH
	scale := func(p geom.Point) (int, int) {
		return int(math.Round(p.X * sx)), int(math.Round(p.Y * sy))
	}

	ok := func(pts ...geom.Point) bool {
		for _, p := range pts {
			if !p.IsValid() {
				return false
			}
		}
		return true
	}

	c := f.Controls
	for i := 0; i < 3; i++ {
		if !ok(c[i], c[i+1]) {
			continue
		}
		x0, y0 := scale(c[i])
		x1, y1 := scale(c[i+1])
		dashed(img, x0, y0, x1, y1, 5, idxSkeleton)
	}

	for _, m := range f.Tangents {
		if !ok(m.Anchor, m.End()) {
			continue
		}
		x0, y0 := scale(m.Anchor)
		x1, y1 := scale(m.End())
		line(img, x0, y0, x1, y1, idxTangent)
	}

	width := int(math.Max(1, math.Round(2*math.Min(sx, sy))))
	for i := 1; i < len(f.Polyline); i++ {
		if !ok(f.Polyline[i-1], f.Polyline[i]) {
			continue
		}
		x0, y0 := scale(f.Polyline[i-1])
		x1, y1 := scale(f.Polyline[i])
		for o := -width / 2; o <= width/2; o++ {
			line(img, x0, y0+o, x1, y1+o, idxCurve)
			line(img, x0+o, y0, x1+o, y1, idxCurve)
		}
	}

	r := int(math.Max(2, math.Round(6*math.Min(sx, sy))))
	for _, p := range []geom.Point{c[1], c[2]} {
		if !ok(p) {
			continue
		}
		x, y := scale(p)
		disc(img, x, y, r, idxPoint)
	}
	if f.Pointer.IsValid() {
		x, y := scale(f.Pointer)
		line(img, x-r, y, x+r, y, idxPointer)
		line(img, x, y-r, x, y+r, idxPointer)
	}
	return img
}

func line(img *image.Paletted, x0, y0, x1, y1 int, idx uint8) {
	plot(x0, y0, x1, y1, func(x, y, _ int) { img.SetColorIndex(x, y, idx) })
}

func dashed(img *image.Paletted, x0, y0, x1, y1, dash int, idx uint8) {
	plot(x0, y0, x1, y1, func(x, y, n int) {
		if (n/dash)%2 == 0 {
			img.SetColorIndex(x, y, idx)
		}
	})
}

func disc(img *image.Paletted, cx, cy, r int, idx uint8) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				img.SetColorIndex(cx+x, cy+y, idx)
			}
		}
	}
}

// plot walks a Bresenham line and passes the step count to fn.
func plot(x0, y0, x1, y1 int, fn func(x, y, n int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for n := 0; ; n++ {
		fn(x0, y0, n)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SaveGIF writes frames as a looping animation with delay in 1/100 s.
func SaveGIF(path string, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("save gif: no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save gif: %w", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return fmt.Errorf("save gif: %w", err)
	}
	return nil
}
