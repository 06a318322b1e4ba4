package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func formFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte(content))
	w.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	return fh
}

func TestDiskSave(t *testing.T) {
	d := NewDisk(t.TempDir())
	if err := d.EnsureDir(); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}

	p, err := d.Save(formFile(t, "cat.png", "image-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(p, "/uploads/") {
		t.Fatalf("public path %q lacks /uploads prefix", p)
	}
	if !strings.HasSuffix(p, ".png") {
		t.Fatalf("public path %q lost the original extension", p)
	}

	data, err := os.ReadFile(filepath.Join(d.Dir, filepath.Base(p)))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("stored content %q", data)
	}
}

func TestDiskEnsureDirCreates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	d := NewDisk(dir)
	if err := d.EnsureDir(); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("dir not created: %v", err)
	}
}
