package platform

import (
	"fmt"
	"os"
	"strings"
)

// SetLaunchAtLogin registers or unregisters the current executable to
// start with the user session, using the OS-native mechanism: an
// autostart desktop entry on Linux, a LaunchAgent plist on macOS and the
// HKCU Run registry key on Windows.
func SetLaunchAtLogin(appName string, enabled bool) error {
	if strings.TrimSpace(appName) == "" {
		return fmt.Errorf("launch at login: app name is empty")
	}
	if !enabled {
		return disableLaunchAtLogin(appName)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("launch at login: resolve executable: %w", err)
	}
	return enableLaunchAtLogin(appName, execPath)
}

func loginItemName(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	return strings.ReplaceAll(name, " ", "-")
}
