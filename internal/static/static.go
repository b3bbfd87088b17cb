// Package static embeds static files into the binary and copies them to the
// filesystem
package static

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/doni-wahyudi/stillmove-planner-sub001/internal/osutil"
)

const (
	filesDir = "files"

	// AppDir is the directory under the data home that holds the files.
	AppDir = "stillmove"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files into dataDir/stillmove. Files that
// already exist are left alone so that users can replace them.
func Install(dataDir string) error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			rel, err := filepath.Rel(filesDir, filepath.FromSlash(p))
			if err != nil {
				return err
			}

			destPath := filepath.Join(dataDir, AppDir, rel)

			_, err = os.Stat(destPath)
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			b, err := embeddedFiles.ReadFile(path.Clean(p))
			if err != nil {
				return err
			}

			err = os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission)
			if err != nil {
				return err
			}

			return os.WriteFile(destPath, b, osutil.FilePermission)
		},
	)
}
