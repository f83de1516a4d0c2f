package uploads

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// Domain errors.
var (
	ErrBadImageData = errors.New("photo is not valid base64 image data")
	ErrOutsideDir   = errors.New("path escapes the uploads directory")
	ErrNotFound     = errors.New("file not found")
	ErrUnsupported  = errors.New("unsupported file type")
)

// ContentTypes maps the servable extensions to their MIME types. Anything
// else in the uploads directory is refused.
var ContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// Dir manages registration artifacts (student photos and QR codes) under a
// single uploads directory. Stored paths are relative ("uploads/<file>"), the
// same shape the legacy rows contain.
type Dir struct {
	root string
}

// NewDir creates the uploads directory if needed.
// PRE: root is a writable location
// POST: Directory exists
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Dir{root: root}, nil
}

// SavePhoto decodes inline base64 image data and writes it as the student's
// photo. Returns the relative path recorded in the profile row.
// PRE: studentID non-empty; photoBase64 is standard base64
// POST: File written; returns "uploads/<studentID>_<unix>.jpg"
func (d *Dir) SavePhoto(studentID, photoBase64 string) (string, error) {
	// Data-URL prefixes ("data:image/jpeg;base64,...") are tolerated.
	if i := strings.Index(photoBase64, ","); i >= 0 && strings.HasPrefix(photoBase64, "data:") {
		photoBase64 = photoBase64[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(photoBase64)
	if err != nil {
		return "", ErrBadImageData
	}
	name := fmt.Sprintf("%s_%d.jpg", studentID, time.Now().Unix())
	if err := os.WriteFile(filepath.Join(d.root, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return "uploads/" + name, nil
}

// GenerateQR renders a PNG QR code encoding the student ID.
// PRE: studentID non-empty
// POST: File written; returns "uploads/qr_<studentID>_<unix>.png"
func (d *Dir) GenerateQR(studentID string) (string, error) {
	name := fmt.Sprintf("qr_%s_%d.png", studentID, time.Now().Unix())
	if err := qrcode.WriteFile(studentID, qrcode.Low, 256, filepath.Join(d.root, name)); err != nil {
		return "", fmt.Errorf("write qr code: %w", err)
	}
	return "uploads/" + name, nil
}

// Remove deletes an artifact by its stored relative path. Used for
// best-effort cleanup when a registration fails after files were written.
// PRE: relPath is a path previously returned by SavePhoto/GenerateQR
// POST: File removed if it existed
func (d *Dir) Remove(relPath string) {
	if relPath == "" {
		return
	}
	_ = os.Remove(filepath.Join(d.root, filepath.Base(relPath)))
}

// Read opens an artifact for serving. Only plain filenames inside the
// uploads directory are reachable; traversal attempts get ErrOutsideDir.
// PRE: name is the bare filename from the request path
// POST: Returns content and MIME type, or a typed error
func (d *Dir) Read(name string) ([]byte, string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, "", ErrOutsideDir
	}
	ct, ok := ContentTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return nil, "", ErrUnsupported
	}
	raw, err := os.ReadFile(filepath.Join(d.root, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return raw, ct, nil
}

// ReadRel reads an artifact by its stored relative path ("uploads/<file>").
func (d *Dir) ReadRel(relPath string) ([]byte, string, error) {
	return d.Read(filepath.Base(relPath))
}
