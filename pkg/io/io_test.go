package io

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spa-dev/rbgen/pkg/catalog"
	"github.com/spa-dev/rbgen/pkg/errors"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.SetNRGBA(1, 1, color.NRGBA{200, 100, 50, 128})
	return img
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.png")
	require.NoError(t, ExportImage(sample(), path))

	got, err := ImportImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), got.Bounds())
	assert.Equal(t, color.NRGBA{200, 100, 50, 128}, got.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{}, got.NRGBAAt(0, 0))
}

func TestReadImageNormalizesToNRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(0, 0, color.Gray{Y: 90})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, gray))

	got, err := ReadImage(&buf)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{90, 90, 90, 255}, got.NRGBAAt(0, 0))
}

func TestReadImageRejects(t *testing.T) {
	_, err := ReadImage(bytes.NewReader([]byte("not an image")))
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))

	wide := image.NewGray(image.Rect(0, 0, catalog.MaxDimension+1, 1))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, wide))
	_, err = ReadImage(&buf)
	assert.Equal(t, errors.ErrCodeResourceBound, errors.GetCode(err))
}

func TestImportImageMissing(t *testing.T) {
	_, err := ImportImage(filepath.Join(t.TempDir(), "none.png"))
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.GetCode(err))
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "A.PNG", "c.Png", "notes.txt", "d.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	got, err := ListImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "A.PNG"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.Png"),
	}, got)

	_, err = ListImages(filepath.Join(dir, "missing"))
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.GetCode(err))
}
