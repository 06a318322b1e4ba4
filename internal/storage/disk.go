package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"
)

// Disk stores uploaded files on the local filesystem and hands back the
// public path they are served under. Files are never deleted here; replaced
// or orphaned uploads stay on disk.
type Disk struct {
	Dir          string
	PublicPrefix string
}

func NewDisk(dir string) *Disk {
	return &Disk{Dir: dir, PublicPrefix: "/uploads"}
}

// EnsureDir creates the upload directory if it does not exist yet.
func (d *Disk) EnsureDir() error {
	return os.MkdirAll(d.Dir, 0o755)
}

// Save writes the uploaded part as <unix-millis><original extension> and
// returns its public path.
func (d *Disk) Save(fh *multipart.FileHeader) (string, error) {
	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + filepath.Ext(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path.Join(d.PublicPrefix, name), nil
}
