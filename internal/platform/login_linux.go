//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func enableLaunchAtLogin(appName, execPath string) error {
	autostartDir, err := autostartDirPath()
	if err != nil {
		return fmt.Errorf("launch at login: %w", err)
	}
	if err := os.MkdirAll(autostartDir, 0o755); err != nil {
		return fmt.Errorf("launch at login: create autostart dir: %w", err)
	}

	entryPath := filepath.Join(autostartDir, loginItemName(appName)+".desktop")
	if err := os.WriteFile(entryPath, []byte(desktopEntry(appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("launch at login: write desktop entry: %w", err)
	}
	return nil
}

func disableLaunchAtLogin(appName string) error {
	autostartDir, err := autostartDirPath()
	if err != nil {
		return fmt.Errorf("launch at login: %w", err)
	}

	entryPath := filepath.Join(autostartDir, loginItemName(appName)+".desktop")
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("launch at login: remove desktop entry: %w", err)
	}
	return nil
}

func autostartDirPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(configDir, "autostart"), nil
}

func desktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`, appName, execLine)
}
