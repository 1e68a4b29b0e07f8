package cli

import (
	"github.com/spf13/cobra"

	"github.com/spa-dev/rbgen/pkg/buildinfo"
	"github.com/spa-dev/rbgen/pkg/observability"
)

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "rbgen puts procedural backgrounds behind transparent images",
		Long: `rbgen synthesizes backgrounds (noise, fractals, tilings, waves and more)
and composites them behind images with transparency.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			if c.Logger.GetLevel() <= LogDebug {
				observability.NewLogHooks(c.Logger).Install()
			}
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/rbgen/config.toml)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	root.AddCommand(c.processCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.modesCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
