package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// ============ TAPPABLE RECTANGLE WIDGET ============

// tappableRect is a coloured rectangle that reports taps, used for pads
type tappableRect struct {
	widget.BaseWidget
	rect  *canvas.Rectangle
	onTap func()
}

var _ desktop.Cursorable = (*tappableRect)(nil)

func newTappableRect(rect *canvas.Rectangle, onTap func()) *tappableRect {
	t := &tappableRect{rect: rect, onTap: onTap}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tappableRect) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.rect)
}

func (t *tappableRect) MinSize() fyne.Size {
	return t.rect.MinSize()
}

func (t *tappableRect) Tapped(_ *fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}

func (t *tappableRect) TappedSecondary(_ *fyne.PointEvent) {}

func (t *tappableRect) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}
