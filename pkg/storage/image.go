package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var (
	ErrEmptyImage    = errors.New("empty image")
	ErrImageTooLarge = errors.New("image too large")
	ErrNotImage      = errors.New("not an image")
)

var formats = map[string]struct{ ext, contentType string }{
	"jpeg": {".jpg", "image/jpeg"},
	"png":  {".png", "image/png"},
	"gif":  {".gif", "image/gif"},
	"webp": {".webp", "image/webp"},
}

// DetectImage checks size and decodes the header to find the format.
// It returns the file extension and content type to store the image under.
func DetectImage(data []byte, maxBytes int64) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyImage
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", "", fmt.Errorf("%w: %d bytes (max: %d)", ErrImageTooLarge, len(data), maxBytes)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	f, ok := formats[format]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported format %s", ErrNotImage, format)
	}

	return f.ext, f.contentType, nil
}
