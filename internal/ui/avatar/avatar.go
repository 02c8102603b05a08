package avatar

import (
	"image"
	"image/color"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const (
	// BaseDiameter is the unscaled on-screen size of the avatar.
	BaseDiameter = float32(160)

	// ringFraction is the ring stroke width relative to the diameter.
	ringFraction = 6.0 / 160.0

	progressTween = 950 * time.Millisecond
)

var ringBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 20}

// Widget is the circular avatar with a depleting progress ring. The
// ring starts full at twelve o'clock and unwinds clockwise as progress
// falls from 1 to 0; its color encodes the active phase.
type Widget struct {
	widget.BaseWidget

	diameter  float32
	progress  float64
	ringColor color.NRGBA
	source    *image.NRGBA
	anim      *fyne.Animation
}

// New creates the avatar showing the placeholder at full progress.
func New() *Widget {
	avatar := &Widget{
		diameter:  BaseDiameter,
		progress:  1,
		ringColor: color.NRGBA{R: 242, G: 143, B: 173, A: 255},
		source:    Placeholder(),
	}
	avatar.ExtendBaseWidget(avatar)
	return avatar
}

// SetProgress updates the ring sweep. When animated, the change tweens
// over ~950ms with an ease-out curve instead of jumping.
func (avatar *Widget) SetProgress(value float64, animated bool) {
	target := clampUnit(value)
	if !animated {
		if avatar.anim != nil {
			avatar.anim.Stop()
			avatar.anim = nil
		}
		avatar.progress = target
		avatar.Refresh()
		return
	}

	if avatar.anim != nil {
		avatar.anim.Stop()
	}
	start := avatar.progress
	anim := fyne.NewAnimation(progressTween, func(done float32) {
		avatar.progress = start + (target-start)*float64(done)
		avatar.Refresh()
	})
	anim.Curve = fyne.AnimationEaseOut
	avatar.anim = anim
	anim.Start()
}

// Progress returns the currently displayed ring sweep.
func (avatar *Widget) Progress() float64 {
	return avatar.progress
}

// SetRingColor sets the phase color of the progress ring.
func (avatar *Widget) SetRingColor(ringColor color.NRGBA) {
	avatar.ringColor = ringColor
	avatar.Refresh()
}

// SetDiameter resizes the avatar (UI scale changes).
func (avatar *Widget) SetDiameter(diameter float32) {
	if diameter < 8 {
		diameter = 8
	}
	avatar.diameter = diameter
	avatar.Refresh()
}

// LoadImageFile replaces the avatar picture with a processed copy of
// the given file. The current picture is kept on failure.
func (avatar *Widget) LoadImageFile(path string) error {
	processed, err := LoadFromFile(path)
	if err != nil {
		return err
	}
	avatar.source = processed
	avatar.Refresh()
	return nil
}

// UsePlaceholder restores the default programmatic avatar.
func (avatar *Widget) UsePlaceholder() {
	avatar.source = Placeholder()
	avatar.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (avatar *Widget) CreateRenderer() fyne.WidgetRenderer {
	raster := canvas.NewRaster(avatar.draw)
	return &avatarRenderer{avatar: avatar, raster: raster}
}

// draw renders the avatar picture and both rings into a pixel buffer.
// Geometry is computed per pixel; the raster hands us display pixels so
// the result stays sharp on high-DPI canvases.
func (avatar *Widget) draw(pixelWidth, pixelHeight int) image.Image {
	out := image.NewNRGBA(image.Rect(0, 0, pixelWidth, pixelHeight))
	side := pixelWidth
	if pixelHeight < side {
		side = pixelHeight
	}
	if side < 4 {
		return out
	}

	centerX := float64(pixelWidth) / 2
	centerY := float64(pixelHeight) / 2
	outer := float64(side)/2 - 1
	ringWidth := math.Max(2, float64(side)*ringFraction)
	inner := outer - ringWidth
	pictureRadius := inner - 1
	sweep := avatar.progress * 2 * math.Pi

	source := avatar.source
	var sourceSide int
	if source != nil {
		sourceSide = source.Bounds().Dx()
	}

	for y := 0; y < pixelHeight; y++ {
		for x := 0; x < pixelWidth; x++ {
			dx := float64(x) + 0.5 - centerX
			dy := float64(y) + 0.5 - centerY
			distance := math.Hypot(dx, dy)

			if distance <= pictureRadius && source != nil {
				sampleX := int((dx + pictureRadius) / (2 * pictureRadius) * float64(sourceSide))
				sampleY := int((dy + pictureRadius) / (2 * pictureRadius) * float64(sourceSide))
				if sampleX >= 0 && sampleX < sourceSide && sampleY >= 0 && sampleY < sourceSide {
					out.SetNRGBA(x, y, source.NRGBAAt(sampleX, sampleY))
				}
				continue
			}

			if distance >= inner && distance <= outer {
				cover := edgeCoverage(distance, inner, outer)
				if cover <= 0 {
					continue
				}
				pixel := ringBackground
				if sweep > 0 && clockwiseAngle(dx, dy) <= sweep {
					pixel = avatar.ringColor
				}
				pixel.A = uint8(float64(pixel.A) * cover)
				out.SetNRGBA(x, y, pixel)
			}
		}
	}
	return out
}

// clockwiseAngle maps a vector to [0, 2π) measured clockwise from
// twelve o'clock.
func clockwiseAngle(dx, dy float64) float64 {
	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// edgeCoverage feathers the ring band edges by one pixel.
func edgeCoverage(distance, inner, outer float64) float64 {
	cover := 1.0
	if distance < inner+1 {
		cover = distance - inner
	}
	if distance > outer-1 {
		cover = outer - distance
	}
	return clampUnit(cover)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

type avatarRenderer struct {
	avatar *Widget
	raster *canvas.Raster
}

func (renderer *avatarRenderer) Layout(size fyne.Size) {
	renderer.raster.Resize(size)
}

func (renderer *avatarRenderer) MinSize() fyne.Size {
	return fyne.NewSize(renderer.avatar.diameter, renderer.avatar.diameter)
}

func (renderer *avatarRenderer) Refresh() {
	canvas.Refresh(renderer.raster)
}

func (renderer *avatarRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{renderer.raster}
}

func (renderer *avatarRenderer) Destroy() {}
