package mainwindow

import "fyne.io/fyne/v2"

// faceLayout stacks the countdown, avatar and session counter down the
// vertical center of the window and anchors the notification bubble to
// the bottom edge, floating above the rest.
type faceLayout struct{}

func (layout *faceLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 5 {
		return
	}
	timeLabel := objects[0]
	avatarWidget := objects[1]
	sessionLabel := objects[2]
	bubbleBackground := objects[3]
	bubbleText := objects[4]

	pad := size.Height * 0.02

	timeSize := timeLabel.MinSize()
	timeLabel.Move(fyne.NewPos(0, pad))
	timeLabel.Resize(fyne.NewSize(size.Width, timeSize.Height))

	avatarSize := avatarWidget.MinSize()
	avatarY := pad + timeSize.Height + pad
	avatarWidget.Move(fyne.NewPos((size.Width-avatarSize.Width)/2, avatarY))
	avatarWidget.Resize(avatarSize)

	sessionSize := sessionLabel.MinSize()
	sessionY := avatarY + avatarSize.Height + pad
	sessionLabel.Move(fyne.NewPos(0, sessionY))
	sessionLabel.Resize(fyne.NewSize(size.Width, sessionSize.Height))

	textSize := bubbleText.MinSize()
	bubbleWidth := textSize.Width + bubblePadX*2
	if bubbleWidth > size.Width-12 {
		bubbleWidth = size.Width - 12
	}
	bubbleHeight := textSize.Height + bubblePadY*2
	bubbleX := (size.Width - bubbleWidth) / 2
	bubbleY := size.Height - bubbleHeight - 16
	if bubbleY < 0 {
		bubbleY = 0
	}

	bubbleBackground.Move(fyne.NewPos(bubbleX, bubbleY))
	bubbleBackground.Resize(fyne.NewSize(bubbleWidth, bubbleHeight))
	bubbleText.Move(fyne.NewPos(bubbleX+bubblePadX, bubbleY+bubblePadY))
	bubbleText.Resize(fyne.NewSize(bubbleWidth-bubblePadX*2, textSize.Height))
}

func (layout *faceLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	timeSize := objects[0].MinSize()
	avatarSize := objects[1].MinSize()
	sessionSize := objects[2].MinSize()

	width := timeSize.Width
	if avatarSize.Width > width {
		width = avatarSize.Width
	}

	height := timeSize.Height + avatarSize.Height + sessionSize.Height + 48
	return fyne.NewSize(width+24, height)
}
