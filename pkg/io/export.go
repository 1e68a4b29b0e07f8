package io

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	rberrors "github.com/spa-dev/rbgen/pkg/errors"
)

// WriteImage encodes img as PNG to w.
func WriteImage(img image.Image, w io.Writer) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return rberrors.Wrap(rberrors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// EncodeImage returns img as PNG bytes.
func EncodeImage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteImage(img, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportImage writes img as PNG to path, creating parent directories.
func ExportImage(img image.Image, path string) error {
	data, err := EncodeImage(img)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile writes already encoded bytes to path, creating parent
// directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return rberrors.Wrap(rberrors.ErrCodeInvalidPath, err, "create output directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return rberrors.Wrap(rberrors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
