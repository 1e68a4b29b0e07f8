package pipeline

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/spa-dev/rbgen/pkg/cache"
	"github.com/spa-dev/rbgen/pkg/catalog"
	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/errors"
	rbio "github.com/spa-dev/rbgen/pkg/io"
	"github.com/spa-dev/rbgen/pkg/observability"
	"github.com/spa-dev/rbgen/pkg/palette"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner may serve concurrent calls.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Themes *palette.Registry
}

// NewRunner creates a runner. A nil keyer uses the default keyer, a nil
// cache disables caching and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Themes: palette.NewRegistry(),
	}
}

// Execute composites one foreground.
func (r *Runner) Execute(ctx context.Context, fg image.Image, opts Options) (*Result, error) {
	if err := r.validate(&opts); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return r.execute(ctx, fg, opts, opts.Seed)
}

// Resolve picks the mode, colors and parameters for one image of the given
// size.
func (r *Runner) Resolve(opts Options, width, height int, seed *uint64) (catalog.Request, error) {
	if err := r.validate(&opts); err != nil {
		return catalog.Request{}, err
	}
	return r.resolve(opts, width, height, seed)
}

func (r *Runner) resolve(opts Options, width, height int, seed *uint64) (catalog.Request, error) {
	rng := catalog.NewRand(seed)
	req := catalog.Request{Width: width, Height: height, Seed: seed}

	if opts.IsRandom() {
		modes := catalog.Modes()
		m := modes[rng.IntN(len(modes))]
		req.Params = catalog.RandomParams(m, rng)
		req.Colors = palette.GenerateColorPair(rng).Colors()
		return req, nil
	}

	req.Params = opts.Params
	if req.Params == nil {
		req.Params = catalog.DefaultParams(opts.Mode)
	}
	colors, err := r.colors(opts, rng)
	if err != nil {
		return catalog.Request{}, err
	}
	req.Colors = colors
	return req, nil
}

func (r *Runner) colors(opts Options, rng *rand.Rand) ([]colorspace.Color, error) {
	switch {
	case len(opts.Colors) > 0:
		return opts.Colors, nil
	case opts.Theme != "":
		p, err := r.Themes.Pick(opts.Theme, rng)
		if err != nil {
			return nil, err
		}
		return p.Colors(), nil
	default:
		return palette.GenerateColorPair(rng).Colors(), nil
	}
}

func (r *Runner) execute(ctx context.Context, fg image.Image, opts Options, seed *uint64) (*Result, error) {
	b := fg.Bounds()
	req, err := r.resolve(opts, b.Dx(), b.Dy(), seed)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Mode:   req.Mode(),
		Colors: req.Colors,
		Params: req.Params,
		Stats:  Stats{Width: b.Dx(), Height: b.Dy()},
	}

	// Unseeded output is never reproduced, so only seeded runs are cached.
	var key string
	if seed != nil {
		keyOpts, err := ArtifactKeyOpts(req)
		if err != nil {
			return nil, fmt.Errorf("cache key: %w", err)
		}
		key = r.Keyer.ArtifactKey(contentHash(fg), keyOpts)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				res.PNG, res.Cached = data, true
				r.logResult(opts.Logger, res)
				return res, nil
			} else if err != nil {
				opts.Logger.Warn("cache read failed", "err", err)
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
	}

	hooks := observability.Synthesis()
	hooks.OnSynthesisStart(ctx, string(req.Mode()), req.Width, req.Height)
	start := time.Now()
	img, err := catalog.Apply(fg, req)
	res.Stats.SynthesisTime = time.Since(start)
	hooks.OnSynthesisComplete(ctx, string(req.Mode()), res.Stats.SynthesisTime, err)
	if err != nil {
		return nil, fmt.Errorf("synthesize %s: %w", req.Mode(), err)
	}

	start = time.Now()
	if res.PNG, err = rbio.EncodeImage(img); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	res.Stats.EncodeTime = time.Since(start)

	if key != "" {
		if err := r.Cache.Set(ctx, key, res.PNG, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(res.PNG))
		}
	}
	r.logResult(opts.Logger, res)
	return res, nil
}

// validate checks opts and that any named theme exists.
func (r *Runner) validate(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.Theme != "" && !opts.IsRandom() {
		if _, ok := r.Themes.Pairs(opts.Theme); !ok {
			return errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (available: %v)", opts.Theme, r.Themes.Names())
		}
	}
	return nil
}

func (r *Runner) logResult(logger *log.Logger, res *Result) {
	logger.Info("rendered background",
		"mode", res.Mode,
		"colors", res.Colors,
		"duration", res.Stats.SynthesisTime+res.Stats.EncodeTime,
		"cached", res.Cached)
}

// =============================================================================
// Batch Processing
// =============================================================================

// BatchResult summarizes a directory run.
type BatchResult struct {
	Written  []string
	Failed   map[string]error
	Duration time.Duration
}

// ProcessDirectory composites every PNG directly inside inputDir and writes
// each result under the same name into outputDir, which is created if
// needed. A file that fails is recorded and skipped. Cancellation is
// checked between images and returns the partial result with ctx.Err().
func (r *Runner) ProcessDirectory(ctx context.Context, inputDir, outputDir string, opts Options) (*BatchResult, error) {
	if err := r.validate(&opts); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	paths, err := rbio.ListImages(inputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory")
	}

	start := time.Now()
	out := &BatchResult{Failed: make(map[string]error)}
	defer func() {
		out.Duration = time.Since(start)
		observability.Synthesis().OnBatchComplete(ctx, len(out.Written), len(out.Failed), out.Duration)
	}()

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		name := filepath.Base(path)
		err := errors.ValidateFilename(name)
		if err == nil {
			dst := filepath.Join(outputDir, name)
			if err = r.processFile(ctx, path, dst, opts, imageSeed(opts.Seed, i)); err == nil {
				out.Written = append(out.Written, dst)
			}
		}
		if err != nil {
			opts.Logger.Error("failed", "file", name, "err", err)
			out.Failed[name] = err
		}
		if opts.Progress != nil {
			opts.Progress(Progress{Done: i + 1, Total: len(paths), File: name, Err: err})
		}
	}
	opts.Logger.Info("processed directory",
		"written", len(out.Written),
		"failed", len(out.Failed),
		"duration", time.Since(start))
	return out, nil
}

func (r *Runner) processFile(ctx context.Context, src, dst string, opts Options, seed *uint64) error {
	fg, err := rbio.ImportImage(src)
	if err != nil {
		return err
	}
	res, err := r.execute(ctx, fg, opts, seed)
	if err != nil {
		return err
	}
	return rbio.WriteFile(dst, res.PNG)
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// imageSeed returns the seed of batch image i.
func imageSeed(seed *uint64, i int) *uint64 {
	if seed == nil {
		return nil
	}
	s := *seed + uint64(i)
	return &s
}

// contentHash identifies a foreground by its size and pixels.
func contentHash(fg image.Image) string {
	img := imaging.Clone(fg)
	var buf bytes.Buffer
	buf.Grow(16 + len(img.Pix))
	var dims [16]byte
	binary.BigEndian.PutUint64(dims[:8], uint64(img.Rect.Dx()))
	binary.BigEndian.PutUint64(dims[8:], uint64(img.Rect.Dy()))
	buf.Write(dims[:])
	buf.Write(img.Pix)
	return cache.Hash(buf.Bytes())
}
