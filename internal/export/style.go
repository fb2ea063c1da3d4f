package export

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Style holds the hex colors used by the file surfaces.
type Style struct {
	Background    string
	Curve         string
	Point         string
	Tangent       string
	TangentAlpha  float64
	Skeleton      string
	SkeletonAlpha float64
	Pointer       string
}

func DefaultStyle() Style {
	return Style{
		Background:    "#0f172a",
		Curve:         "#38bdf8",
		Point:         "#f472b6",
		Tangent:       "#ffffff",
		TangentAlpha:  0.3,
		Skeleton:      "#ffffff",
		SkeletonAlpha: 0.1,
		Pointer:       "#94a3b8",
	}
}

// Flatten blends a translucent foreground onto the background, for surfaces
// without alpha such as paletted GIF frames.
func Flatten(fg, bg string, alpha float64) color.RGBA {
	f, err := colorful.Hex(fg)
	if err != nil {
		f = colorful.Color{R: 1, G: 1, B: 1}
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		b = colorful.Color{}
	}
	return toRGBA(b.BlendRgb(f, alpha))
}

func hexRGBA(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return toRGBA(c)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Palette orders the style colors by the palette indices used in Rasterize.
func (s Style) Palette() color.Palette {
	return color.Palette{
		hexRGBA(s.Background),
		Flatten(s.Skeleton, s.Background, s.SkeletonAlpha),
		Flatten(s.Tangent, s.Background, s.TangentAlpha),
		hexRGBA(s.Curve),
		hexRGBA(s.Point),
		hexRGBA(s.Pointer),
	}
}
