package mainwindow

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"chibitomo/internal/core/timekeeper"
	"chibitomo/internal/ui/avatar"
)

// Base dimensions; everything visible multiplies these by the UI scale.
const (
	baseWidth       = float32(260)
	baseHeight      = float32(380)
	baseTimeFont    = float32(56)
	baseSessionFont = float32(13)
)

// Config defines the widget window appearance.
type Config struct {
	Opacity float64
	Scale   float64
}

// PhaseColor returns the fixed ring color for a phase.
func PhaseColor(phase timekeeper.Phase) color.NRGBA {
	switch phase {
	case timekeeper.PhaseBreak:
		return color.NRGBA{R: 0x6d, G: 0xe0, B: 0xf2, A: 0xff}
	case timekeeper.PhaseLongBreak:
		return color.NRGBA{R: 0x88, G: 0xf2, B: 0xb6, A: 0xff}
	default:
		return color.NRGBA{R: 0xf2, G: 0x8f, B: 0xad, A: 0xff}
	}
}

// Window is the always-visible widget face: countdown text, avatar with
// progress ring, session counter and the transient notification bubble.
type Window struct {
	app    fyne.App
	window fyne.Window
	config Config

	timeLabel    *canvas.Text
	sessionLabel *canvas.Text
	avatarWidget *avatar.Widget
	bubble       *bubble

	menu *fyne.Menu
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the widget window. The splash driver gives a frameless
// window where available; a decorated window is the fallback.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Chibi-Tomo")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	timeLabel := canvas.NewText("25:00", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Bold: true}
	timeLabel.TextSize = baseTimeFont

	sessionLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 153})
	sessionLabel.Alignment = fyne.TextAlignCenter
	sessionLabel.TextSize = baseSessionFont
	sessionLabel.Hide()

	avatarWidget := avatar.New()

	mainWindow := &Window{
		app:          app,
		window:       window,
		config:       config,
		timeLabel:    timeLabel,
		sessionLabel: sessionLabel,
		avatarWidget: avatarWidget,
		bubble:       newBubble(),
	}

	face := container.New(&faceLayout{},
		timeLabel,
		avatarWidget,
		sessionLabel,
		mainWindow.bubble.background,
		mainWindow.bubble.text,
	)
	window.SetContent(newTapSurface(face, mainWindow.showMenu))

	mainWindow.ApplyScale(config.Scale)
	if config.Opacity > 0 {
		mainWindow.ApplyOpacity(config.Opacity)
	}
	return mainWindow
}

// SetMenu attaches the context menu opened by a right click anywhere on
// the widget.
func (mainWindow *Window) SetMenu(menu *fyne.Menu) {
	mainWindow.menu = menu
}

// Native exposes the underlying Fyne window, used as a dialog parent.
func (mainWindow *Window) Native() fyne.Window {
	return mainWindow.window
}

// Avatar returns the avatar widget.
func (mainWindow *Window) Avatar() *avatar.Widget {
	return mainWindow.avatarWidget
}

// Show displays the window.
func (mainWindow *Window) Show() {
	mainWindow.window.Show()
}

// SetRemaining updates the countdown text.
func (mainWindow *Window) SetRemaining(remaining time.Duration) {
	mainWindow.timeLabel.Text = formatRemaining(remaining)
	mainWindow.timeLabel.Refresh()
}

// SetSession updates the session counter; it is visible only during
// Focus phases.
func (mainWindow *Window) SetSession(ordinal, total int, visible bool) {
	if !visible {
		mainWindow.sessionLabel.Hide()
		return
	}
	mainWindow.sessionLabel.Text = fmt.Sprintf("Session %d/%d", ordinal, total)
	mainWindow.sessionLabel.Show()
	mainWindow.sessionLabel.Refresh()
}

// ApplyScale resizes the window, countdown font and avatar.
func (mainWindow *Window) ApplyScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	mainWindow.config.Scale = scale

	factor := float32(scale)
	mainWindow.timeLabel.TextSize = baseTimeFont * factor
	mainWindow.sessionLabel.TextSize = baseSessionFont * factor
	mainWindow.avatarWidget.SetDiameter(avatar.BaseDiameter * factor)
	mainWindow.window.Resize(fyne.NewSize(baseWidth*factor, baseHeight*factor))
	mainWindow.timeLabel.Refresh()
	mainWindow.sessionLabel.Refresh()
}

// ApplyOpacity sets the whole-window opacity where the platform allows
// it. Values are clamped so the widget can never become invisible.
func (mainWindow *Window) ApplyOpacity(opacity float64) {
	if opacity < 0.2 {
		opacity = 0.2
	}
	if opacity > 1 {
		opacity = 1
	}
	mainWindow.config.Opacity = opacity
	mainWindow.applyNativeOpacity(uint8(opacity * 255))
}

// ShowBubble displays a transient message bubble that fades out over
// five seconds. Safe to call from any goroutine.
func (mainWindow *Window) ShowBubble(text string) {
	fyne.Do(func() {
		mainWindow.bubble.show(text)
	})
}

func (mainWindow *Window) showMenu(event *fyne.PointEvent) {
	if mainWindow.menu == nil {
		return
	}
	widget.ShowPopUpMenuAtPosition(mainWindow.menu, mainWindow.window.Canvas(), event.AbsolutePosition)
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// tapSurface forwards secondary taps on the whole widget face to the
// context menu.
type tapSurface struct {
	widget.BaseWidget
	content     fyne.CanvasObject
	onSecondary func(*fyne.PointEvent)
}

func newTapSurface(content fyne.CanvasObject, onSecondary func(*fyne.PointEvent)) *tapSurface {
	surface := &tapSurface{content: content, onSecondary: onSecondary}
	surface.ExtendBaseWidget(surface)
	return surface
}

func (surface *tapSurface) TappedSecondary(event *fyne.PointEvent) {
	if surface.onSecondary != nil {
		surface.onSecondary(event)
	}
}

func (surface *tapSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(surface.content)
}
