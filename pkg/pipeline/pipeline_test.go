package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spa-dev/rbgen/pkg/cache"
	"github.com/spa-dev/rbgen/pkg/catalog"
	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/errors"
	rbio "github.com/spa-dev/rbgen/pkg/io"
	"github.com/spa-dev/rbgen/pkg/palette"
)

func seed(v uint64) *uint64 { return &v }

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{})
}

func foreground(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(w/2, h/2, color.NRGBA{10, 20, 30, 255})
	return img
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

// countingCache records traffic to an underlying cache.
type countingCache struct {
	cache.Cache
	gets, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	return c.Cache.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"zero value", Options{}, ""},
		{"mode normalized", Options{Mode: " Marble "}, ""},
		{"unknown mode", Options{Mode: "plasma"}, errors.ErrCodeInvalidMode},
		{"params text", Options{Mode: catalog.ModeCheckered, ParamsText: "square_size = 8"}, ""},
		{"bad params text", Options{Mode: catalog.ModeCheckered, ParamsText: "num_rays = 8"}, errors.ErrCodeInvalidParameter},
		{"params without mode", Options{ParamsText: "square_size = 8"}, errors.ErrCodeInvalidParameter},
		{"params with random", Options{Mode: catalog.ModeCheckered, Random: true, ParamsText: "square_size = 8"}, errors.ErrCodeInvalidParameter},
		{"mismatched params", Options{Mode: catalog.ModeSolid, Params: &catalog.CloudParams{Scale: 10, Octaves: 4}}, errors.ErrCodeInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if tt.code == "" {
				require.NoError(t, err)
				assert.NotNil(t, opts.Logger)
				return
			}
			assert.Equal(t, tt.code, errors.GetCode(err), err)
		})
	}

	opts := Options{Mode: " Marble "}
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, catalog.ModeMarble, opts.Mode)

	opts = Options{Params: catalog.DefaultParams(catalog.ModeWaves)}
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, catalog.ModeWaves, opts.Mode, "mode taken from params")
}

func TestResolve(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	red := []colorspace.Color{{R: 255}}
	req, err := r.Resolve(Options{Mode: catalog.ModeSolid, Colors: red}, 4, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, catalog.ModeSolid, req.Mode())
	assert.Equal(t, red, req.Colors)
	assert.Equal(t, 4, req.Width)

	req, err = r.Resolve(Options{Mode: catalog.ModeCheckered, Theme: "forest"}, 4, 3, seed(1))
	require.NoError(t, err)
	pairs, _ := r.Themes.Pairs("forest")
	assert.Contains(t, pairs, palette.Pair{req.Colors[0], req.Colors[1]})
	assert.Equal(t, catalog.DefaultParams(catalog.ModeCheckered), req.Params)

	a, err := r.Resolve(Options{}, 4, 3, seed(9))
	require.NoError(t, err)
	b, err := r.Resolve(Options{}, 4, 3, seed(9))
	require.NoError(t, err)
	assert.Equal(t, a, b, "seeded random resolution is reproducible")
	assert.True(t, a.Mode().Valid())

	_, err = r.Resolve(Options{Mode: catalog.ModeCloud, Theme: "neon"}, 4, 3, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidTheme))
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), foreground(24, 16), Options{Mode: catalog.ModeStriped})
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, catalog.ModeStriped, res.Mode)
	assert.Equal(t, 24, res.Stats.Width)
	assert.Equal(t, 16, res.Stats.Height)

	img := decode(t, res.PNG)
	assert.Equal(t, image.Rect(0, 0, 24, 16), img.Bounds())
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, color.NRGBAModel.Convert(img.At(12, 8)))
}

func TestExecuteSeededIsCached(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	cc := &countingCache{Cache: store}
	r := NewRunner(cc, nil, quietLogger())
	opts := Options{Mode: catalog.ModeCloud, Seed: seed(3)}

	first, err := r.Execute(ctx, foreground(20, 20), opts)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, cc.sets)

	second, err := r.Execute(ctx, foreground(20, 20), opts)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.PNG, second.PNG)
	assert.Equal(t, 1, cc.sets)

	other := foreground(20, 20)
	other.SetNRGBA(0, 0, color.NRGBA{1, 1, 1, 255})
	third, err := r.Execute(ctx, other, opts)
	require.NoError(t, err)
	assert.False(t, third.Cached, "different foreground, different key")

	opts.Refresh = true
	fourth, err := r.Execute(ctx, foreground(20, 20), opts)
	require.NoError(t, err)
	assert.False(t, fourth.Cached)
	assert.Equal(t, first.PNG, fourth.PNG, "same seed renders the same pixels")
}

func TestExecuteUnseededSkipsCache(t *testing.T) {
	cc := &countingCache{Cache: cache.NewNullCache()}
	r := NewRunner(cc, nil, quietLogger())
	_, err := r.Execute(context.Background(), foreground(8, 8), Options{Mode: catalog.ModeGradient})
	require.NoError(t, err)
	assert.Zero(t, cc.gets)
	assert.Zero(t, cc.sets)
}

func TestExecuteRejects(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Execute(context.Background(), foreground(8, 8), Options{Mode: "plasma"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMode))

	_, err = r.Execute(context.Background(), image.NewNRGBA(image.Rect(0, 0, catalog.MaxDimension+1, 1)), Options{Mode: catalog.ModeSolid})
	assert.True(t, errors.Is(err, errors.ErrCodeResourceBound))
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	require.NoError(t, rbio.ExportImage(img, path))
}

func TestProcessDirectory(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writePNG(t, filepath.Join(in, "a.png"), foreground(12, 10))
	writePNG(t, filepath.Join(in, "B.PNG"), foreground(7, 9))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.png"), []byte("nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "readme.txt"), []byte("skip"), 0o644))

	var progress []Progress
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.ProcessDirectory(context.Background(), in, out, Options{
		Random:   true,
		Seed:     seed(11),
		Progress: func(p Progress) { progress = append(progress, p) },
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{filepath.Join(out, "a.png"), filepath.Join(out, "B.PNG")}, res.Written)
	require.Contains(t, res.Failed, "broken.png")
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(res.Failed["broken.png"]))
	require.Len(t, progress, 3)
	assert.Equal(t, 3, progress[2].Done)
	assert.Equal(t, 3, progress[2].Total)

	got, err := rbio.ImportImage(filepath.Join(out, "B.PNG"))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 7, 9), got.Bounds())
	_, err = os.Stat(filepath.Join(out, "readme.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestProcessDirectoryCanceled(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "a.png"), foreground(4, 4))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, quietLogger())
	res, err := r.ProcessDirectory(ctx, in, t.TempDir(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Empty(t, res.Written)
}

func TestProcessDirectoryMissingInput(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.ProcessDirectory(context.Background(), filepath.Join(t.TempDir(), "none"), t.TempDir(), Options{})
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.GetCode(err))
}

func TestImageSeed(t *testing.T) {
	assert.Nil(t, imageSeed(nil, 3))
	assert.Equal(t, uint64(13), *imageSeed(seed(10), 3))
}

func TestContentHash(t *testing.T) {
	a := foreground(4, 4)
	assert.Equal(t, contentHash(a), contentHash(foreground(4, 4)))
	assert.NotEqual(t, contentHash(a), contentHash(foreground(4, 5)))
	assert.NotEqual(t, contentHash(image.NewNRGBA(image.Rect(0, 0, 2, 8))), contentHash(image.NewNRGBA(image.Rect(0, 0, 8, 2))))
}

func TestArtifactKeyOpts(t *testing.T) {
	req := catalog.Request{
		Params: catalog.DefaultParams(catalog.ModeRadialPattern),
		Colors: []colorspace.Color{{R: 16, G: 32, B: 48}},
		Seed:   seed(9),
	}
	opts, err := ArtifactKeyOpts(req)
	if err != nil {
		t.Fatalf("ArtifactKeyOpts: %v", err)
	}
	want, _ := catalog.EncodeParams(req.Params)
	if opts.Params != want || opts.Mode != "radial_pattern" || opts.Seed != 9 {
		t.Errorf("ArtifactKeyOpts = %+v", opts)
	}
	if len(opts.Colors) != 1 || opts.Colors[0] != "#102030" {
		t.Errorf("colors = %v, want [#102030]", opts.Colors)
	}

	_, err = ArtifactKeyOpts(catalog.Request{Seed: seed(9)})
	if !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("missing params: got %v, want INVALID_MODE", err)
	}
}
