package cliconfig

import (
	"os"
	"path/filepath"

	"github.com/restartfu/gophig"
)

// InitFile writes DefaultFileConfig to path unless a file already exists.
// It reports whether a file was created.
func InitFile(path string) (bool, error) {
	if FileExists(path) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}

	g := gophig.NewGophig[FileConfig](path, gophig.TOMLMarshaler{}, 0o644)
	if err := g.SaveConf(DefaultFileConfig()); err != nil {
		return false, err
	}
	return true, nil
}
