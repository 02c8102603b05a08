package main

import (
	"bytes"
	"image"
	"image/png"
	"log"
	"time"

	"chibitomo/internal/core/model"
	"chibitomo/internal/core/timekeeper"
	"chibitomo/internal/notify"
	"chibitomo/internal/platform"
	"chibitomo/internal/storage"
	"chibitomo/internal/ui/appmenu"
	"chibitomo/internal/ui/mainwindow"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "ChibiTomo"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.chibitomo.app")
	icon := trayIcon()
	fyneApp.SetIcon(icon)

	store := storage.NewStore(appName)
	settings := store.Settings()

	keeper := timekeeper.New(settings.Durations, timekeeper.Config{TickInterval: time.Second})

	mainWindow := mainwindow.New(fyneApp, mainwindow.Config{
		Opacity: settings.Opacity,
		Scale:   settings.UIScale,
	})
	if settings.WindowWidth > 0 && settings.WindowHeight > 0 {
		mainWindow.Native().Resize(fyne.NewSize(float32(settings.WindowWidth), float32(settings.WindowHeight)))
	}
	if settings.ImagePath != "" {
		if err := mainWindow.Avatar().LoadImageFile(settings.ImagePath); err != nil {
			log.Printf("avatar image: %v", err)
		}
	}

	notifier := notify.New(store, mainWindow)

	applyDurations := func(durations model.Durations) {
		keeper.ApplyDurations(durations)
		_ = store.Update(func(settings *storage.Settings) {
			settings.Durations = durations
		})
	}

	shutdown := func() {
		size := mainWindow.Native().Canvas().Size()
		_ = store.Update(func(settings *storage.Settings) {
			settings.WindowWidth = int(size.Width)
			settings.WindowHeight = int(size.Height)
		})
		keeper.Stop()
		fyneApp.Quit()
	}

	var menuManager *appmenu.Manager
	menuManager = appmenu.New(appmenu.Callbacks{
		OnStart: func() { keeper.Start() },
		OnPause: func() { keeper.Pause() },
		OnReset: func() { keeper.Reset() },
		OnApplyDurations: applyDurations,
		OnCustomDurations: func() {
			appmenu.ShowDurationsDialog(mainWindow.Native(), keeper.Durations(), func(durations model.Durations) {
				applyDurations(durations)
				menuManager.SetDurations(durations)
			})
		},
		OnOpacity: func(value float64) {
			mainWindow.ApplyOpacity(value)
			_ = store.Update(func(settings *storage.Settings) {
				settings.Opacity = value
			})
		},
		OnScale: func(value float64) {
			mainWindow.ApplyScale(value)
			_ = store.Update(func(settings *storage.Settings) {
				settings.UIScale = value
			})
		},
		OnSelectPicture: func() {
			appmenu.ShowPicturePicker(mainWindow.Native(), func(path string) {
				if err := mainWindow.Avatar().LoadImageFile(path); err != nil {
					log.Printf("avatar image: %v", err)
					return
				}
				_ = store.Update(func(settings *storage.Settings) {
					settings.ImagePath = path
				})
			})
		},
		OnNotifyPopup: func(enabled bool) {
			_ = store.Update(func(settings *storage.Settings) {
				settings.NotifyPopup = enabled
			})
		},
		OnNotifySound: func(enabled bool) {
			_ = store.Update(func(settings *storage.Settings) {
				settings.NotifySound = enabled
			})
		},
		OnLockPosition: func(locked bool) {
			_ = store.Update(func(settings *storage.Settings) {
				settings.LockPosition = locked
			})
		},
		OnLaunchAtLogin: func(enabled bool) {
			if err := platform.SetLaunchAtLogin(appName, enabled); err != nil {
				log.Printf("launch at login: %v", err)
			}
			_ = store.Update(func(settings *storage.Settings) {
				settings.LaunchAtLogin = enabled
			})
		},
		OnQuit: shutdown,
	}, settings)

	mainWindow.SetMenu(menuManager.Menu())
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		menuManager.InstallTray(desktopApp, icon)
	}

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			switch event.Type {
			case timekeeper.EventPhaseChange:
				handlePhaseChange(event, mainWindow)
			case timekeeper.EventProgress:
				handleProgress(event, mainWindow)
			case timekeeper.EventMilestone:
				notifier.Dispatch(milestoneKind(event.Milestone), milestoneTitle(event))
			}
		}
	}()

	mainWindow.Native().SetCloseIntercept(shutdown)

	status := keeper.Status()
	mainWindow.Avatar().SetRingColor(mainwindow.PhaseColor(status.Phase))
	mainWindow.Avatar().SetProgress(status.Progress, false)
	mainWindow.SetRemaining(status.Remaining)
	mainWindow.SetSession(status.Session, status.SessionTotal, status.Phase == timekeeper.PhaseFocus)

	mainWindow.Show()
	fyneApp.Run()
}

func handlePhaseChange(event timekeeper.Event, mainWindow *mainwindow.Window) {
	fyne.Do(func() {
		mainWindow.Avatar().SetRingColor(mainwindow.PhaseColor(event.Phase))
		mainWindow.Avatar().SetProgress(event.Progress, event.Animate)
		mainWindow.SetRemaining(event.Remaining)
		mainWindow.SetSession(event.Session, event.SessionTotal, event.Phase == timekeeper.PhaseFocus)
	})
}

func handleProgress(event timekeeper.Event, mainWindow *mainwindow.Window) {
	fyne.Do(func() {
		mainWindow.Avatar().SetProgress(event.Progress, event.Running)
		mainWindow.SetRemaining(event.Remaining)
		mainWindow.SetSession(event.Session, event.SessionTotal, event.Phase == timekeeper.PhaseFocus)
	})
}

func milestoneKind(milestone timekeeper.Milestone) notify.Kind {
	switch milestone {
	case timekeeper.MilestoneHalfway:
		return notify.KindHalfway
	case timekeeper.MilestoneQuarter:
		return notify.KindFinalStretch
	default:
		return notify.KindComplete
	}
}

func milestoneTitle(event timekeeper.Event) string {
	switch event.Milestone {
	case timekeeper.MilestoneHalfway:
		return "50% remaining"
	case timekeeper.MilestoneQuarter:
		return "25% remaining"
	default:
		return phaseName(event.Phase) + " Over!"
	}
}

func phaseName(phase timekeeper.Phase) string {
	switch phase {
	case timekeeper.PhaseBreak:
		return "Break"
	case timekeeper.PhaseLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}

// trayIcon renders a small disc in the focus color, used for both the
// app icon and the system tray.
func trayIcon() fyne.Resource {
	const size = 16
	tint := mainwindow.PhaseColor(timekeeper.PhaseFocus)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	radius := center - 1
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			if dx*dx+dy*dy <= radius*radius {
				offset := img.PixOffset(x, y)
				img.Pix[offset] = tint.R
				img.Pix[offset+1] = tint.G
				img.Pix[offset+2] = tint.B
				img.Pix[offset+3] = 0xFF
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fyne.NewStaticResource("chibitomo.png", nil)
	}
	return fyne.NewStaticResource("chibitomo.png", buf.Bytes())
}
