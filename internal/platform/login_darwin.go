//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func enableLaunchAtLogin(appName, execPath string) error {
	agentsDir, err := launchAgentsDir()
	if err != nil {
		return fmt.Errorf("launch at login: %w", err)
	}
	if err := os.MkdirAll(agentsDir, 0o755); err != nil {
		return fmt.Errorf("launch at login: create LaunchAgents dir: %w", err)
	}

	label := agentLabel(appName)
	content := agentPlist(label, execPath)
	if err := os.WriteFile(filepath.Join(agentsDir, label+".plist"), []byte(content), 0o644); err != nil {
		return fmt.Errorf("launch at login: write plist: %w", err)
	}
	return nil
}

func disableLaunchAtLogin(appName string) error {
	agentsDir, err := launchAgentsDir()
	if err != nil {
		return fmt.Errorf("launch at login: %w", err)
	}

	plistPath := filepath.Join(agentsDir, agentLabel(appName)+".plist")
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("launch at login: remove plist: %w", err)
	}
	return nil
}

func launchAgentsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents"), nil
}

func agentLabel(appName string) string {
	return "com.chibitomo." + loginItemName(appName)
}

func agentPlist(label, execPath string) string {
	escape := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	).Replace

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`, escape(label), escape(execPath))
}
