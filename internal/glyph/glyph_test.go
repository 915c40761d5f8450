package glyph

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(goregular.TTF)
	require.NoError(t, err)
	return r
}

func inked(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A > 0 {
				n++
			}
		}
	}
	return n
}

func TestNewRejectsGarbage(t *testing.T) {
	_, err := New([]byte("not a font"))
	assert.Error(t, err)
}

func TestHorizontalSize(t *testing.T) {
	r := newRenderer(t)
	w, h, ascent := r.Measure("Knob 1", 12)
	require.Positive(t, w)
	require.Positive(t, h)
	assert.LessOrEqual(t, ascent, h)

	img, err := r.Horizontal("Knob 1", 12, color.Black)
	require.NoError(t, err)
	assert.Equal(t, w+Padding*2, img.Bounds().Dx())
	assert.Equal(t, h+Padding*2, img.Bounds().Dy())
	assert.Positive(t, inked(img))
}

func TestVerticalSwapsAxes(t *testing.T) {
	r := newRenderer(t)
	horiz, err := r.Horizontal("Slider 4", 12, color.White)
	require.NoError(t, err)
	vert, err := r.Vertical("Slider 4", 12, color.White)
	require.NoError(t, err)

	assert.Equal(t, horiz.Bounds().Dx(), vert.Bounds().Dy())
	assert.Equal(t, horiz.Bounds().Dy(), vert.Bounds().Dx())
	assert.Equal(t, inked(horiz), inked(vert))
}

func TestRotateCCW(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, red)
	src.SetRGBA(1, 0, blue)

	dst := RotateCCW(src)
	require.Equal(t, image.Rect(0, 0, 1, 2), dst.Bounds())
	assert.Equal(t, blue, dst.RGBAAt(0, 0))
	assert.Equal(t, red, dst.RGBAAt(0, 1))
}

func TestBadge(t *testing.T) {
	r := newRenderer(t)
	bg := color.RGBA{G: 200, A: 255}
	img, err := r.Badge("M", 32, 20, bg, color.White)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	assert.Zero(t, img.RGBAAt(0, 0).A, "corners stay transparent")
	assert.Equal(t, uint8(255), img.RGBAAt(16, 2).A, "circle is filled")
}
