//go:build windows

package cfgpath

import (
	"os"
	"path/filepath"
)

// settings roam with the profile, the cache stays on the machine

func setup() {
	globalSettingFolder = os.Getenv("APPDATA")
	if globalSettingFolder == "" {
		globalSettingFolder = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
	}
	cacheFolder = os.Getenv("LOCALAPPDATA")
	if cacheFolder == "" {
		cacheFolder = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
	}
}
