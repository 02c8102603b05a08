package mainwindow

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

const (
	bubbleFade     = 5 * time.Second
	bubbleFontSize = float32(14)
	bubblePadX     = float32(16)
	bubblePadY     = float32(12)
)

var (
	bubbleFill = color.NRGBA{R: 0, G: 0, B: 0, A: 230}
	bubbleInk  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// bubble is the transient in-app notification: a dark rounded box with
// bold white text, anchored to the bottom of the window, fading out
// after it appears.
type bubble struct {
	background *canvas.Rectangle
	text       *canvas.Text
	anim       *fyne.Animation
}

func newBubble() *bubble {
	background := canvas.NewRectangle(bubbleFill)
	background.CornerRadius = 14
	background.Hide()

	text := canvas.NewText("", bubbleInk)
	text.Alignment = fyne.TextAlignCenter
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.TextSize = bubbleFontSize
	text.Hide()

	return &bubble{background: background, text: text}
}

func (bubble *bubble) show(message string) {
	if bubble.anim != nil {
		bubble.anim.Stop()
	}

	bubble.text.Text = message
	bubble.background.FillColor = bubbleFill
	bubble.text.Color = bubbleInk
	bubble.background.Show()
	bubble.text.Show()
	bubble.background.Refresh()
	bubble.text.Refresh()

	anim := fyne.NewAnimation(bubbleFade, func(done float32) {
		fade := 1 - done
		fill := bubbleFill
		fill.A = uint8(float32(fill.A) * fade)
		ink := bubbleInk
		ink.A = uint8(float32(ink.A) * fade)
		bubble.background.FillColor = fill
		bubble.text.Color = ink
		bubble.background.Refresh()
		bubble.text.Refresh()
		if done >= 1 {
			bubble.background.Hide()
			bubble.text.Hide()
		}
	})
	bubble.anim = anim
	anim.Start()
}
