package cli

import (
	"github.com/spf13/cobra"

	"github.com/spa-dev/rbgen/pkg/catalog"
	"github.com/spa-dev/rbgen/pkg/core/colorspace"
	"github.com/spa-dev/rbgen/pkg/errors"
	"github.com/spa-dev/rbgen/pkg/pipeline"
)

// synthFlags are the background selection flags shared by process and
// render.
type synthFlags struct {
	mode        string
	theme       string
	colors      string
	params      string
	seed        uint64
	random      bool
	interactive bool
	refresh     bool
}

func (f *synthFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.mode, "mode", "m", "", "background mode (omit for random; see 'rbgen modes')")
	fl.StringVarP(&f.theme, "theme", "t", "", "color theme (see 'rbgen themes')")
	fl.StringVarP(&f.colors, "colors", "c", "", `explicit colors, e.g. "#1e3c5a,#78b4d2"`)
	fl.StringVarP(&f.params, "params", "p", "", `mode parameters as TOML, e.g. "square_size = 30"`)
	fl.Uint64Var(&f.seed, "seed", 0, "seed for reproducible output (enables caching)")
	fl.BoolVarP(&f.random, "random", "r", false, "random mode, colors and parameters per image")
	fl.BoolVarP(&f.interactive, "interactive", "I", false, "pick the mode from a list")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached results")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, m := range catalog.Modes() {
			names = append(names, string(m))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// options merges flags over the config file defaults.
func (c *CLI) options(cmd *cobra.Command, f *synthFlags) (pipeline.Options, error) {
	cfg := c.Config
	opts := pipeline.Options{
		Mode:    catalog.Mode(firstNonEmpty(f.mode, cfg.Mode)),
		Theme:   firstNonEmpty(f.theme, cfg.Theme),
		Random:  f.random,
		Refresh: f.refresh,
		Logger:  c.Logger,
	}
	if f.interactive {
		if f.random {
			return opts, errors.New(errors.ErrCodeInvalidParameter, "--interactive and --random are exclusive")
		}
		m, err := pickMode(cmd.Context(), opts.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}

	if f.colors != "" {
		colors, err := colorspace.ParseList(f.colors)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidColor, err, "--colors")
		}
		opts.Colors = colors
	}

	switch {
	case cmd.Flags().Changed("seed"):
		seed := f.seed
		opts.Seed = &seed
	case cfg.Seed != nil:
		opts.Seed = cfg.Seed
	}

	if f.params != "" {
		opts.ParamsText = f.params
	} else if opts.Mode != "" && !opts.Random {
		m, err := catalog.ParseMode(string(opts.Mode))
		if err != nil {
			return opts, err
		}
		p, err := cfg.ModeParams(m)
		if err != nil {
			return opts, err
		}
		opts.Params = p
	}
	return opts, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
