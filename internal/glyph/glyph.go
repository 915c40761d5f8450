// Package glyph rasterises short labels with freetype for places fyne
// cannot draw text itself, such as vertical captions and the tray icon.
package glyph

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
)

// DPI is the resolution labels are rendered at
const DPI = 72

// Padding is the blank border around rendered text, in pixels
const Padding = 2

// Renderer draws text in a single parsed font.
type Renderer struct {
	font *truetype.Font
}

// New parses a TrueType font
func New(fontData []byte) (*Renderer, error) {
	f, err := freetype.ParseFont(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Renderer{font: f}, nil
}

// Measure returns the unpadded width and height of text at size
func (r *Renderer) Measure(text string, size float64) (width, height, ascent int) {
	face := truetype.NewFace(r.font, &truetype.Options{Size: size, DPI: DPI})
	defer face.Close()

	for _, ch := range text {
		if adv, ok := face.GlyphAdvance(ch); ok {
			width += adv.Round()
		}
	}
	metrics := face.Metrics()
	return width, (metrics.Ascent + metrics.Descent).Ceil(), metrics.Ascent.Ceil()
}

// Horizontal renders text left to right on a transparent background
func (r *Renderer) Horizontal(text string, size float64, fg color.Color) (*image.RGBA, error) {
	w, h, ascent := r.Measure(text, size)
	img := image.NewRGBA(image.Rect(0, 0, w+Padding*2, h+Padding*2))
	if err := r.draw(img, text, size, fg, image.Pt(Padding, Padding+ascent)); err != nil {
		return nil, err
	}
	return img, nil
}

// Vertical renders text reading bottom to top
func (r *Renderer) Vertical(text string, size float64, fg color.Color) (*image.RGBA, error) {
	img, err := r.Horizontal(text, size, fg)
	if err != nil {
		return nil, err
	}
	return RotateCCW(img), nil
}

// Badge renders text centred on a filled circle in a side x side square
func (r *Renderer) Badge(text string, side int, size float64, bg, fg color.Color) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	fillCircle(img, bg)

	w, h, ascent := r.Measure(text, size)
	origin := image.Pt((side-w)/2, (side-h)/2+ascent)
	if err := r.draw(img, text, size, fg, origin); err != nil {
		return nil, err
	}
	return img, nil
}

func (r *Renderer) draw(dst draw.Image, text string, size float64, fg color.Color, origin image.Point) error {
	c := freetype.NewContext()
	c.SetFont(r.font)
	c.SetFontSize(size)
	c.SetDPI(DPI)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.NewUniform(fg))

	if _, err := c.DrawString(text, freetype.Pt(origin.X, origin.Y)); err != nil {
		return fmt.Errorf("failed to draw %q: %w", text, err)
	}
	return nil
}

// RotateCCW turns src a quarter turn counter-clockwise
func RotateCCW(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(y, w-1-x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func fillCircle(img *image.RGBA, c color.Color) {
	b := img.Bounds()
	r := b.Dx() / 2
	cx, cy := b.Min.X+r, b.Min.Y+r
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, c)
			}
		}
	}
}
