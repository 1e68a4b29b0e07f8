// Package pkg provides the core libraries for rbgen background synthesis.
//
// # Overview
//
// rbgen draws procedural backgrounds (tilings, fractals, noise, waves and
// more) and composites them behind images with transparent regions. The pkg
// directory is organized into four main areas:
//
//  1. [core] - Pixel work (color math, noise, gradients, generators, compositing)
//  2. [catalog] and [palette] - The mode catalog and color selection
//  3. [pipeline] - Orchestration (resolve → synthesize → compose → encode)
//  4. [cache], [api], [io] - Caching, the HTTP front end and PNG I/O
//
// # Architecture
//
// The typical data flow through rbgen:
//
//	Foreground PNG
//	      ↓
//	 [io] package (decode, bounds check)
//	      ↓
//	 [pipeline] package (resolve mode, colors, params, seed)
//	      ↓
//	 [catalog] package (dispatch to a core generator)
//	      ↓
//	 [core/compose] package (merge foreground over background)
//	      ↓
//	 Composited PNG
//
// # Quick Start
//
//	import (
//	    "github.com/spa-dev/rbgen/pkg/cache"
//	    "github.com/spa-dev/rbgen/pkg/catalog"
//	    "github.com/spa-dev/rbgen/pkg/io"
//	    "github.com/spa-dev/rbgen/pkg/pipeline"
//	)
//
//	fg, _ := io.ImportImage("logo.png")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	seed := uint64(7)
//	res, _ := runner.Execute(ctx, fg, pipeline.Options{
//	    Mode:  catalog.ModeMarble,
//	    Theme: "ocean",
//	    Seed:  &seed,
//	})
//	_ = io.WriteFile("logo_bg.png", res.PNG)
//
// # Main Packages
//
// ## Core
//
// [core/colorspace] - RGB colors, HSV conversion and the color-theory
// derivations (complementary, triadic, monochromatic and friends).
//
// [core/noise] - Multi-octave value noise on a bilinear lattice.
//
// [core/gradient] - Color ramps and directional gradients.
//
// [core/raster] - Canvas helpers: vector drawing, blur, rotation and
// perspective warps.
//
// [core/pattern] - Geometric generators: stripes, checkers, shapes, lines,
// waves, rays and the noise-based textures.
//
// [core/fractal] - Escape-time Mandelbrot and recursive nested polygons.
//
// [core/compose] - Mask and blend rules for merging a foreground over a
// background.
//
// ## Catalog
//
// [catalog] - The sixteen modes, one typed parameter record per mode with
// TOML decoding and validation, random parameter draws and [catalog.Apply].
//
// [palette] - The weighted base palette, harmony strategies and named
// themes, extendable from config.
//
// ## Infrastructure
//
// [pipeline] - Single image and directory runs used by both the CLI and the
// API, with seeded caching of results.
//
// [cache] - File, Redis and null caches behind one interface, plus key
// derivation.
//
// [api] - chi-based HTTP API.
//
// [observability] - Hooks for synthesis, cache and HTTP events.
//
// [errors] - Coded errors shared by every layer.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/core/pattern/   # Specific package
//
// [core]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/core
// [core/colorspace]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/core/colorspace
// [core/noise]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/core/noise
// [core/gradient]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/core/gradient
// [core/raster]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/core/raster
// [core/pattern]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/core/pattern
// [core/fractal]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/core/fractal
// [core/compose]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/core/compose
// [catalog]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/catalog
// [palette]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/palette
// [pipeline]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/cache
// [api]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/api
// [io]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/io
// [observability]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/observability
// [errors]: https://pkg.go.dev/github.com/spa-dev/rbgen/pkg/errors
package pkg
