package io

import (
	"bytes"
	"errors"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/spa-dev/rbgen/pkg/catalog"
	rberrors "github.com/spa-dev/rbgen/pkg/errors"
)

// ReadImage decodes an image from r. Undecodable data is INVALID_INPUT;
// images beyond the synthesis limits are RESOURCE_BOUND. ReadImage does not
// close r.
func ReadImage(r io.Reader) (*image.NRGBA, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, rberrors.Wrap(rberrors.ErrCodeInvalidInput, err, "read image")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, rberrors.Wrap(rberrors.ErrCodeInvalidInput, err, "decode image header")
	}
	if err := rberrors.ValidateDimensions(cfg.Width, cfg.Height, catalog.MaxDimension, catalog.MaxPixels); err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, rberrors.Wrap(rberrors.ErrCodeInvalidInput, err, "decode image")
	}
	return imaging.Clone(img), nil
}

// ImportImage reads the image file at path.
func ImportImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, rberrors.Wrap(rberrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, rberrors.Wrap(rberrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	img, err := ReadImage(f)
	if err != nil {
		return nil, rberrors.Wrap(rberrors.GetCode(err), err, "%s", filepath.Base(path))
	}
	return img, nil
}

// ListImages returns the paths of the PNG files directly inside dir, sorted
// by file name. Subdirectories are not searched.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, rberrors.Wrap(rberrors.ErrCodeFileNotFound, err, "input directory %s", dir)
	}
	if err != nil {
		return nil, rberrors.Wrap(rberrors.ErrCodeInvalidPath, err, "input directory %s", dir)
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
