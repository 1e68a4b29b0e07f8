// Package pipeline turns foreground images into composited results.
//
// It sits between the entry points (CLI, HTTP API) and the synthesis
// engine: it resolves what to draw (mode, colors, parameters), renders and
// composites through [catalog.Apply], encodes PNG and caches seeded
// results. Centralizing this keeps the CLI and the server consistent.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, foreground, pipeline.Options{
//	    Mode:  catalog.ModeMarble,
//	    Theme: "ocean",
//	})
//	os.WriteFile("out.png", res.PNG, 0o644)
//
// Whole directories are handled by [Runner.ProcessDirectory].
//
// # Resolution
//
// Each image gets a mode, colors and parameters:
//
//   - Random mode (Options.Random, or no Mode): a random mode, a generated
//     color pair and randomized parameters.
//   - Fixed mode: Params, else ParamsText decoded for the mode, else the
//     mode defaults. Colors come from Options.Colors, else a pair of the
//     theme, else a generated pair.
//
// With a seed every choice and every pixel is reproducible, and the PNG is
// cached under a key covering the foreground content and the resolved
// request.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spa-dev/rbgen/pkg/cache"
	"github.com/spa-dev/rbgen/pkg/catalog"
	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/errors"
)

// FormatPNG is the only output format.
const FormatPNG = "png"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures how backgrounds are chosen. The zero value renders a
// random background with fresh randomness.
type Options struct {
	Mode   catalog.Mode       `json:"mode,omitempty"`
	Theme  string             `json:"theme,omitempty"`
	Colors []colorspace.Color `json:"colors,omitempty"`

	// Params overrides ParamsText. Its mode must match Mode.
	Params     catalog.Params `json:"-"`
	ParamsText string         `json:"params,omitempty"`

	// Random draws mode, colors and parameters per image even when Mode
	// is set.
	Random bool `json:"random,omitempty"`

	// Seed makes the run reproducible. Image i of a batch uses Seed+i.
	Seed *uint64 `json:"seed,omitempty"`

	// Refresh skips cache reads; fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// Progress, if set, is called after each image of a batch.
	Progress func(Progress) `json:"-"`

	validated bool
}

// Result is one composited image.
type Result struct {
	// PNG is the encoded output.
	PNG []byte

	Mode   catalog.Mode
	Colors []colorspace.Color
	Params catalog.Params

	Stats Stats

	// Cached reports that PNG came from the cache.
	Cached bool
}

// Progress reports batch advancement.
type Progress struct {
	Done  int
	Total int
	File  string
	Err   error
}

// Stats holds timing and size information for one image.
type Stats struct {
	Width         int
	Height        int
	SynthesisTime time.Duration
	EncodeTime    time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and decodes parameter text.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Mode != "" {
		m, err := catalog.ParseMode(string(o.Mode))
		if err != nil {
			return err
		}
		o.Mode = m
	}
	if err := o.validateParams(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func (o *Options) validateParams() error {
	switch {
	case o.Params != nil:
		if o.Mode == "" {
			o.Mode = o.Params.Mode()
		}
		if o.Params.Mode() != o.Mode {
			return errors.New(errors.ErrCodeInvalidParameter, "parameters for %s given with mode %s", o.Params.Mode(), o.Mode)
		}
		return catalog.ValidateParams(o.Params)
	case o.ParamsText != "":
		if o.Mode == "" || o.Random {
			return errors.New(errors.ErrCodeInvalidParameter, "parameters require a fixed mode")
		}
		p, err := catalog.DecodeParams(o.Mode, o.ParamsText)
		if err != nil {
			return err
		}
		o.Params = p
	}
	return nil
}

// IsRandom reports whether each image draws its own mode.
func (o *Options) IsRandom() bool {
	return o.Random || o.Mode == ""
}

// ArtifactKeyOpts returns the cache key options for a resolved request.
func ArtifactKeyOpts(req catalog.Request) (cache.ArtifactKeyOpts, error) {
	if req.Params == nil {
		return cache.ArtifactKeyOpts{}, errors.New(errors.ErrCodeInvalidMode, "no background mode selected")
	}
	params, err := catalog.EncodeParams(req.Params)
	if err != nil {
		return cache.ArtifactKeyOpts{}, err
	}
	colors := make([]string, len(req.Colors))
	for i, c := range req.Colors {
		colors[i] = c.String()
	}
	var seed uint64
	if req.Seed != nil {
		seed = *req.Seed
	}
	return cache.ArtifactKeyOpts{
		Mode:   string(req.Mode()),
		Colors: colors,
		Params: params,
		Seed:   seed,
		Format: FormatPNG,
	}, nil
}
