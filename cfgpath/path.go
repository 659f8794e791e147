package cfgpath

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/TrisTech/goupd"
)

var (
	globalSettingFolder string
	cacheFolder         string
	initialPath         string
)

func init() {
	setup()
	getInitialPath()
}

func getInitialPath() {
	initialPath, _ = os.Getwd()
	exe, err := os.Executable()
	if err != nil {
		log.Printf("[path] failed to get executable path: %s", err)
		return
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		log.Printf("[path] failed to parse executable path: %s", err)
		return
	}

	// get directory
	initialPath = filepath.Dir(exe)
}

func GetCacheDir() string {
	return filepath.Join(cacheFolder, goupd.PROJECT_NAME)
}

func GetConfigDir() string {
	return filepath.Join(globalSettingFolder, goupd.PROJECT_NAME)
}

// GetConfigFile returns the path of the default config file.
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Resolve makes p absolute. Relative paths are taken from the config dir,
// then from the directory of the executable.
func Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	c := filepath.Join(GetConfigDir(), p)
	if _, err := os.Stat(c); err == nil {
		return c
	}
	return filepath.Join(initialPath, p)
}

func EnsureDir(c string) error {
	inf, err := os.Stat(c)
	if err != nil && os.IsNotExist(err) {
		err = os.MkdirAll(c, 0755)
		if err != nil {
			return err
		}
	} else if err != nil {
		return err
	} else if err == nil && !inf.IsDir() {
		return errors.New("error: file exists at directory location")
	}
	return nil
}
