package storage

import (
	"io"
	"os"
	"path/filepath"
)

// Disk stores files under a local base directory served by the static route.
type Disk struct {
	BaseDir string
}

func NewDisk(baseDir string) (*Disk, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &Disk{BaseDir: baseDir}, nil
}

// Save writes to a temp file and renames it into place, so a failure midway
// never leaves a half-written file under the final name.
func (d *Disk) Save(name string, r io.Reader) (string, error) {
	tmp, err := os.CreateTemp(d.BaseDir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	dest := filepath.Join(d.BaseDir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (d *Disk) Remove(name string) error {
	err := os.Remove(filepath.Join(d.BaseDir, filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
