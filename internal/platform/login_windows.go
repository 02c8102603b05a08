//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const runKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func enableLaunchAtLogin(appName, execPath string) error {
	quoted := `"` + strings.Trim(execPath, `"`) + `"`
	command := exec.Command("reg", "add", runKey, "/v", appName, "/t", "REG_SZ", "/d", quoted, "/f")
	output, err := command.CombinedOutput()
	if err != nil {
		return fmt.Errorf("launch at login: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func disableLaunchAtLogin(appName string) error {
	command := exec.Command("reg", "delete", runKey, "/v", appName, "/f")
	output, err := command.CombinedOutput()
	if err != nil && !strings.Contains(string(output), "unable to find") {
		return fmt.Errorf("launch at login: reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
