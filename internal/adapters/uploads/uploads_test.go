package uploads

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestDir(t *testing.T) *Dir {
	t.Helper()
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	return d
}

func TestSavePhoto(t *testing.T) {
	d := newTestDir(t)
	payload := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))

	rel, err := d.SavePhoto("S1", payload)
	if err != nil {
		t.Fatalf("SavePhoto: %v", err)
	}
	if !strings.HasPrefix(rel, "uploads/S1_") || !strings.HasSuffix(rel, ".jpg") {
		t.Fatalf("relative path %q", rel)
	}

	raw, _, err := d.ReadRel(rel)
	if err != nil {
		t.Fatalf("ReadRel: %v", err)
	}
	if string(raw) != "jpeg-bytes" {
		t.Fatalf("content %q", raw)
	}
}

func TestSavePhotoDataURLPrefix(t *testing.T) {
	d := newTestDir(t)
	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("x"))

	if _, err := d.SavePhoto("S1", payload); err != nil {
		t.Fatalf("SavePhoto with data URL: %v", err)
	}
}

func TestSavePhotoBadData(t *testing.T) {
	d := newTestDir(t)
	if _, err := d.SavePhoto("S1", "not!!base64"); !errors.Is(err, ErrBadImageData) {
		t.Fatalf("err = %v, want ErrBadImageData", err)
	}
}

func TestGenerateQR(t *testing.T) {
	d := newTestDir(t)

	rel, err := d.GenerateQR("S2024001")
	if err != nil {
		t.Fatalf("GenerateQR: %v", err)
	}
	raw, ct, err := d.ReadRel(rel)
	if err != nil {
		t.Fatalf("ReadRel: %v", err)
	}
	if ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	// PNG magic bytes.
	if len(raw) < 4 || raw[1] != 'P' || raw[2] != 'N' || raw[3] != 'G' {
		t.Fatal("QR output is not a PNG")
	}
}

func TestReadRefusesTraversal(t *testing.T) {
	d := newTestDir(t)

	for _, name := range []string{"../secret", "a/b.png", ".hidden.png", ""} {
		if _, _, err := d.Read(name); !errors.Is(err, ErrOutsideDir) {
			t.Errorf("Read(%q) = %v, want ErrOutsideDir", name, err)
		}
	}
}

func TestReadUnsupportedExtension(t *testing.T) {
	d := newTestDir(t)
	if _, _, err := d.Read("script.sh"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	d := newTestDir(t)
	if _, _, err := d.Read("nope.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	d := newTestDir(t)
	payload := base64.StdEncoding.EncodeToString([]byte("x"))
	rel, err := d.SavePhoto("S1", payload)
	if err != nil {
		t.Fatalf("SavePhoto: %v", err)
	}

	d.Remove(rel)
	if _, _, err := d.ReadRel(rel); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after Remove: %v, want ErrNotFound", err)
	}

	// Removing something that never existed is a no-op.
	d.Remove("uploads/ghost.png")
	d.Remove("")
}

func TestRemoveStaysInsideDir(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(root, "outside.txt")
	if err := os.WriteFile(outside, []byte("keep"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	d, err := NewDir(filepath.Join(root, "uploads"))
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	d.Remove("../outside.txt")

	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside the uploads dir was removed: %v", err)
	}
}
