package vault

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// ErrVaultNotFound means no vault export was found in the searched directory.
var ErrVaultNotFound = errors.New("vault: no vault file found")

var exportNameRe = regexp.MustCompile(`^aegis-(backup|export)-\d+(-\d+)*\.json$`)

// FindPath scans dir for Aegis export files and returns the most recently
// modified one.
func FindPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", ErrVaultNotFound
	}

	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() || !exportNameRe.MatchString(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, e.Name())
			newestMod = info.ModTime()
		}
	}

	if newest == "" {
		return "", ErrVaultNotFound
	}
	return newest, nil
}
