//go:build !windows

package mainwindow

// Whole-window opacity needs layered-window support, which only the
// Windows driver exposes. Elsewhere the preference is persisted but has
// no visual effect.
func (mainWindow *Window) applyNativeOpacity(alpha uint8) {}
