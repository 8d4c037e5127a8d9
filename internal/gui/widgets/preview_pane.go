package widgets

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	PreviewMinWidth  = 480
	PreviewMinHeight = 300
)

// DisplayRenderer produces the rotated, fit-scaled image shown in a pane.
type DisplayRenderer interface {
	Loaded() bool
	RenderedForDisplay(width, height int) image.Image
}

// PreviewPane shows one card side. It asks its renderer for a fresh image
// whenever it is resized or told the slot changed.
type PreviewPane struct {
	widget.BaseWidget

	renderer    DisplayRenderer
	title       *widget.RichText
	image       *canvas.Image
	placeholder *widget.Label
	frame       *canvas.Rectangle
	content     *fyne.Container

	renderedFor image.Point
}

func NewPreviewPane(title string, renderer DisplayRenderer) *PreviewPane {
	p := &PreviewPane{renderer: renderer}

	p.title = widget.NewRichTextFromMarkdown("**" + title + "**")

	p.image = canvas.NewImageFromImage(nil)
	p.image.FillMode = canvas.ImageFillContain
	p.image.ScaleMode = canvas.ImageScaleSmooth

	p.placeholder = widget.NewLabel("Drop an image here or use Load")
	p.placeholder.Alignment = fyne.TextAlignCenter

	p.frame = canvas.NewRectangle(color.Transparent)
	p.frame.StrokeColor = theme.Color(theme.ColorNameDisabled)
	p.frame.StrokeWidth = 2
	p.frame.SetMinSize(fyne.NewSize(PreviewMinWidth, PreviewMinHeight))

	p.content = container.NewBorder(
		p.title, nil, nil, nil,
		container.NewStack(p.frame, container.NewCenter(p.placeholder), p.image),
	)

	p.ExtendBaseWidget(p)
	return p
}

func (p *PreviewPane) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

func (p *PreviewPane) Resize(size fyne.Size) {
	p.BaseWidget.Resize(size)
	p.render(false)
}

// Update re-renders after the slot was loaded or rotated.
func (p *PreviewPane) Update() {
	p.render(true)
}

// Image returns what the pane currently displays, nil when empty.
func (p *PreviewPane) Image() image.Image {
	return p.image.Image
}

// PlaceholderVisible reports whether the empty-slot hint is showing.
func (p *PreviewPane) PlaceholderVisible() bool {
	return p.placeholder.Visible()
}

func (p *PreviewPane) render(force bool) {
	if p.renderer == nil || !p.renderer.Loaded() {
		p.image.Image = nil
		p.renderedFor = image.Point{}
		p.placeholder.Show()
		p.image.Refresh()
		return
	}

	target := p.pixelSize()
	if target.X <= 0 || target.Y <= 0 {
		return
	}
	if !force && target == p.renderedFor {
		return
	}

	p.image.Image = p.renderer.RenderedForDisplay(target.X, target.Y)
	p.renderedFor = target
	p.placeholder.Hide()
	p.image.Refresh()
}

// pixelSize is the area available to the image in device pixels.
func (p *PreviewPane) pixelSize() image.Point {
	size := p.image.Size()
	if size.Width <= 0 || size.Height <= 0 {
		size = p.frame.MinSize()
	}

	scale := float32(1)
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(p); c != nil {
			scale = c.Scale()
		}
	}
	return image.Pt(int(size.Width*scale), int(size.Height*scale))
}
