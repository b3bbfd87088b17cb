// Package osutil holds operating system constants and small file helpers
package osutil

import (
	"os"
	"path/filepath"
)

const (
	Windows = "windows"
)

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

const (
	DirPermission  = 0o755
	FilePermission = 0o600
)

// Exit terminates the process with code.
func Exit(code exitCode) {
	os.Exit(int(code))
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, creating the parent directory when needed.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	err := os.MkdirAll(dir, DirPermission)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	_, err = tmp.Write(data)
	if err != nil {
		tmp.Close()
		return err
	}

	err = tmp.Chmod(FilePermission)
	if err != nil {
		tmp.Close()
		return err
	}

	err = tmp.Close()
	if err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
