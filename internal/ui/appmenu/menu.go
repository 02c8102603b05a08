package appmenu

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"chibitomo/internal/core/model"
	"chibitomo/internal/storage"
)

// Callbacks defines the handlers behind the menu entries.
type Callbacks struct {
	OnStart           func()
	OnPause           func()
	OnReset           func()
	OnApplyDurations  func(model.Durations)
	OnCustomDurations func()
	OnOpacity         func(float64)
	OnScale           func(float64)
	OnSelectPicture   func()
	OnNotifyPopup     func(bool)
	OnNotifySound     func(bool)
	OnLockPosition    func(bool)
	OnLaunchAtLogin   func(bool)
	OnQuit            func()
}

var (
	opacityPresets = []float64{0.05, 0.25, 0.5, 0.75, 1.0}
	scalePresets   = []float64{0.05, 0.25, 0.5, 0.75, 1.0, 1.25, 1.5, 1.75, 2.0}
)

// Manager owns the single menu shared by the window right-click popup
// and the system tray, and keeps its checkmarks in sync with the
// current settings.
type Manager struct {
	callbacks Callbacks
	menu      *fyne.Menu
	trayApp   desktop.App

	classicItem  *fyne.MenuItem
	extendedItem *fyne.MenuItem
	customItem   *fyne.MenuItem
	opacityItems map[float64]*fyne.MenuItem
	scaleItems   map[float64]*fyne.MenuItem
	popupItem    *fyne.MenuItem
	soundItem    *fyne.MenuItem
	lockItem     *fyne.MenuItem
	loginItem    *fyne.MenuItem
}

// New builds the menu with checkmarks reflecting the given settings.
func New(callbacks Callbacks, settings storage.Settings) *Manager {
	manager := &Manager{
		callbacks:    callbacks,
		opacityItems: make(map[float64]*fyne.MenuItem),
		scaleItems:   make(map[float64]*fyne.MenuItem),
	}

	startItem := fyne.NewMenuItem("Start", func() { invoke(manager.callbacks.OnStart) })
	pauseItem := fyne.NewMenuItem("Pause", func() { invoke(manager.callbacks.OnPause) })
	resetItem := fyne.NewMenuItem("Reset", func() { invoke(manager.callbacks.OnReset) })

	manager.classicItem = fyne.NewMenuItem("Pomodoro (25/5)", func() {
		manager.applyPreset(model.ClassicPreset())
	})
	manager.extendedItem = fyne.NewMenuItem("50/10", func() {
		manager.applyPreset(model.ExtendedPreset())
	})
	manager.customItem = fyne.NewMenuItem("Custom...", func() {
		invoke(manager.callbacks.OnCustomDurations)
	})

	opacityItem := fyne.NewMenuItem("Opacity", nil)
	opacityItem.ChildMenu = fyne.NewMenu("", manager.buildPresetItems(opacityPresets, manager.opacityItems, manager.applyOpacity)...)

	scaleItem := fyne.NewMenuItem("Scale", nil)
	scaleItem.ChildMenu = fyne.NewMenu("", manager.buildPresetItems(scalePresets, manager.scaleItems, manager.applyScale)...)

	pictureItem := fyne.NewMenuItem("Select picture...", func() { invoke(manager.callbacks.OnSelectPicture) })

	manager.popupItem = fyne.NewMenuItem("Popup", nil)
	manager.popupItem.Action = func() {
		manager.popupItem.Checked = !manager.popupItem.Checked
		if manager.callbacks.OnNotifyPopup != nil {
			manager.callbacks.OnNotifyPopup(manager.popupItem.Checked)
		}
		manager.refresh()
	}
	manager.soundItem = fyne.NewMenuItem("Sound", nil)
	manager.soundItem.Action = func() {
		manager.soundItem.Checked = !manager.soundItem.Checked
		if manager.callbacks.OnNotifySound != nil {
			manager.callbacks.OnNotifySound(manager.soundItem.Checked)
		}
		manager.refresh()
	}
	notifyItem := fyne.NewMenuItem("Notification", nil)
	notifyItem.ChildMenu = fyne.NewMenu("", manager.popupItem, manager.soundItem)

	manager.lockItem = fyne.NewMenuItem("Lock position (prevent moving)", nil)
	manager.lockItem.Action = func() {
		manager.lockItem.Checked = !manager.lockItem.Checked
		if manager.callbacks.OnLockPosition != nil {
			manager.callbacks.OnLockPosition(manager.lockItem.Checked)
		}
		manager.refresh()
	}

	manager.loginItem = fyne.NewMenuItem("Launch at login", nil)
	manager.loginItem.Action = func() {
		manager.loginItem.Checked = !manager.loginItem.Checked
		if manager.callbacks.OnLaunchAtLogin != nil {
			manager.callbacks.OnLaunchAtLogin(manager.loginItem.Checked)
		}
		manager.refresh()
	}

	quitItem := fyne.NewMenuItem("Quit", func() { invoke(manager.callbacks.OnQuit) })

	manager.menu = fyne.NewMenu("Chibi-Tomo",
		startItem, pauseItem, resetItem,
		fyne.NewMenuItemSeparator(),
		manager.classicItem, manager.extendedItem, manager.customItem,
		fyne.NewMenuItemSeparator(),
		opacityItem, scaleItem,
		fyne.NewMenuItemSeparator(),
		pictureItem,
		fyne.NewMenuItemSeparator(),
		notifyItem,
		fyne.NewMenuItemSeparator(),
		manager.lockItem, manager.loginItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	manager.ApplySettings(settings)
	return manager
}

// Menu returns the shared menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// InstallTray attaches the menu to the system tray.
func (manager *Manager) InstallTray(app desktop.App, icon fyne.Resource) {
	manager.trayApp = app
	if icon != nil {
		app.SetSystemTrayIcon(icon)
	}
	app.SetSystemTrayMenu(manager.menu)
}

// ApplySettings re-checks every stateful item from the settings.
func (manager *Manager) ApplySettings(settings storage.Settings) {
	manager.SetDurations(settings.Durations)
	checkPreset(manager.opacityItems, settings.Opacity)
	checkPreset(manager.scaleItems, settings.UIScale)
	manager.popupItem.Checked = settings.NotifyPopup
	manager.soundItem.Checked = settings.NotifySound
	manager.lockItem.Checked = settings.LockPosition
	manager.loginItem.Checked = settings.LaunchAtLogin
	manager.refresh()
}

// SetDurations marks the mode entry matching the active durations; a
// non-preset cycle marks Custom.
func (manager *Manager) SetDurations(durations model.Durations) {
	manager.classicItem.Checked = durations == model.ClassicPreset()
	manager.extendedItem.Checked = durations == model.ExtendedPreset()
	manager.customItem.Checked = !manager.classicItem.Checked && !manager.extendedItem.Checked
	manager.refresh()
}

func (manager *Manager) applyPreset(durations model.Durations) {
	manager.SetDurations(durations)
	if manager.callbacks.OnApplyDurations != nil {
		manager.callbacks.OnApplyDurations(durations)
	}
}

func (manager *Manager) applyOpacity(value float64) {
	checkPreset(manager.opacityItems, value)
	if manager.callbacks.OnOpacity != nil {
		manager.callbacks.OnOpacity(value)
	}
	manager.refresh()
}

func (manager *Manager) applyScale(value float64) {
	checkPreset(manager.scaleItems, value)
	if manager.callbacks.OnScale != nil {
		manager.callbacks.OnScale(value)
	}
	manager.refresh()
}

func (manager *Manager) buildPresetItems(presets []float64, registry map[float64]*fyne.MenuItem, apply func(float64)) []*fyne.MenuItem {
	items := make([]*fyne.MenuItem, 0, len(presets))
	for _, preset := range presets {
		value := preset
		item := fyne.NewMenuItem(percentLabel(value), func() { apply(value) })
		registry[value] = item
		items = append(items, item)
	}
	return items
}

func (manager *Manager) refresh() {
	if manager.menu != nil {
		manager.menu.Refresh()
	}
	if manager.trayApp != nil {
		manager.trayApp.SetSystemTrayMenu(manager.menu)
	}
}

func checkPreset(registry map[float64]*fyne.MenuItem, value float64) {
	for preset, item := range registry {
		item.Checked = preset == value
	}
}

func percentLabel(value float64) string {
	return fmt.Sprintf("%d%%", int(value*100+0.5))
}

func invoke(handler func()) {
	if handler != nil {
		handler()
	}
}
