package palette

import (
	"math/rand/v2"
	"sort"

	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/errors"
)

// ThemeConfig is a user-defined theme as written in a config file:
//
//	[themes.harbor]
//	pairs = [["#1e3c5a", "#78b4d2"], ["#0a1e2d", "#46b4be"]]
type ThemeConfig struct {
	Pairs []Pair `toml:"pairs" validate:"required,min=1"`
}

// Registry maps theme names to their color pairs.
type Registry struct {
	themes map[string][]Pair
}

// NewRegistry returns a registry holding the built-in themes.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string][]Pair, len(builtinThemes))}
	for name, pairs := range builtinThemes {
		r.themes[name] = pairs
	}
	return r
}

var builtinThemes = map[string][]Pair{
	"forest": {
		{rgb(30, 70, 45), rgb(80, 120, 90)},
		{rgb(60, 90, 60), rgb(120, 150, 100)},
		{rgb(30, 60, 40), rgb(100, 80, 60)},
	},
	"ocean": {
		{rgb(40, 80, 120), rgb(120, 180, 210)},
		{rgb(70, 140, 190), rgb(200, 230, 240)},
		{rgb(30, 60, 90), rgb(70, 180, 190)},
	},
	"desert": {
		{rgb(200, 180, 140), rgb(230, 130, 60)},
		{rgb(180, 160, 120), rgb(240, 180, 100)},
		{rgb(160, 120, 80), rgb(220, 200, 180)},
	},
	"twilight": {
		{rgb(70, 40, 90), rgb(180, 140, 200)},
		{rgb(40, 40, 80), rgb(110, 90, 160)},
		{rgb(60, 30, 70), rgb(200, 110, 80)},
	},
	"autumn": {
		{rgb(150, 75, 50), rgb(230, 130, 60)},
		{rgb(180, 100, 60), rgb(240, 180, 100)},
		{rgb(120, 60, 40), rgb(200, 160, 60)},
	},
}

// Register adds or replaces a theme.
func (r *Registry) Register(name string, pairs []Pair) error {
	if err := errors.ValidateKey("theme name", name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTheme, err, "register theme")
	}
	if len(pairs) == 0 {
		return errors.New(errors.ErrCodeInvalidTheme, "theme %q has no color pairs", name)
	}
	r.themes[name] = append([]Pair(nil), pairs...)
	return nil
}

// Merge registers every theme of a config file section.
func (r *Registry) Merge(themes map[string]ThemeConfig) error {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cfg := themes[name]
		if err := errors.ValidateStruct(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTheme, err, "theme %q", name)
		}
		if err := r.Register(name, cfg.Pairs); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the registered theme names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pairs returns the color pairs of a theme.
func (r *Registry) Pairs(name string) ([]Pair, bool) {
	p, ok := r.themes[name]
	return p, ok
}

// Pick returns a random pair of the named theme. An empty name picks a
// random theme first.
func (r *Registry) Pick(name string, rng *rand.Rand) (Pair, error) {
	if name == "" {
		names := r.Names()
		if len(names) == 0 {
			return Pair{}, errors.New(errors.ErrCodeInvalidTheme, "no themes registered")
		}
		name = names[rng.IntN(len(names))]
	}
	pairs, ok := r.themes[name]
	if !ok {
		return Pair{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (available: %v)", name, r.Names())
	}
	return pairs[rng.IntN(len(pairs))], nil
}

// ThemedScheme picks a pair from a built-in theme.
func ThemedScheme(name string, rng *rand.Rand) ([]colorspace.Color, error) {
	p, err := defaultRegistry.Pick(name, rng)
	if err != nil {
		return nil, err
	}
	return p.Colors(), nil
}

var defaultRegistry = NewRegistry()
