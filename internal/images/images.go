// Package images validates uploaded and base64-encoded map/waypoint images.
// Accepted bytes are stored verbatim; nothing is re-encoded.
package images

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxBytes is the size cap for a single image. Images live in a bytea
// column, so the limit is deliberately small.
const MaxBytes = 2 << 20 // 2 MiB

var (
	// ErrNoFile signals that no image was supplied. Callers treat this as
	// non-fatal and proceed without an image.
	ErrNoFile          = errors.New("no file uploaded")
	ErrInvalidType     = errors.New("invalid image type, only JPEG and PNG are allowed")
	ErrTooLarge        = errors.New("image exceeds the 2MB size limit")
	ErrInvalidEncoding = errors.New("invalid base64 image encoding")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// FromUpload reads and validates a multipart file upload. A nil header
// yields ErrNoFile. The declared Content-Type must be JPEG or PNG.
func FromUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh == nil {
		return nil, ErrNoFile
	}
	if !allowedTypes[fh.Header.Get("Content-Type")] {
		return nil, ErrInvalidType
	}
	if fh.Size > MaxBytes {
		return nil, ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// FromBase64 decodes and validates a base64-encoded image, stripping an
// optional data-URI prefix. The declared MIME in the prefix is not trusted:
// the decoded bytes are sniffed and must be JPEG or PNG.
func FromBase64(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrNoFile
	}

	// "data:image/png;base64,AAAA..." -> "AAAA..."
	if strings.HasPrefix(encoded, "data:") {
		if _, rest, ok := strings.Cut(encoded, "base64,"); ok {
			encoded = rest
		}
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	if len(data) > MaxBytes {
		return nil, ErrTooLarge
	}

	mt := mimetype.Detect(data)
	if !allowedTypes[mt.String()] {
		return nil, ErrInvalidType
	}
	return data, nil
}

// ToBase64 renders stored image bytes for a JSON response. Nil bytes
// serialize as the empty string.
func ToBase64(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}
