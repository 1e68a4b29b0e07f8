package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/spa-dev/rbgen/pkg/errors"
	"github.com/spa-dev/rbgen/pkg/pipeline"
)

// processCommand creates the batch command.
func (c *CLI) processCommand() *cobra.Command {
	var (
		f      synthFlags
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Put backgrounds behind every PNG in a directory",
		Long: `Process composites a background behind every PNG image directly inside the
input directory and writes the results under the same names into the output
directory.

Without --mode each image gets a random mode. With --seed image i uses
seed+i, so reruns reproduce the same directory and hit the cache.`,
		Example: `  rbgen process -i sprites -o out
  rbgen process -i sprites -o out -m checkered -t ocean --seed 7
  rbgen process -i sprites -o out -m waves -p 'num_waves = 8'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f)
			if err != nil {
				return err
			}
			return c.runProcess(cmd, input, output, opts)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "input directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagDirname("input")
	_ = cmd.MarkFlagDirname("output")

	return cmd
}

func (c *CLI) runProcess(cmd *cobra.Command, input, output string, opts pipeline.Options) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Processing "+input+"...")
	opts.Progress = func(p pipeline.Progress) {
		spinner.SetMessage("%d/%d %s", p.Done, p.Total, p.File)
	}
	spinner.Start()
	res, err := runner.ProcessDirectory(ctx, input, output, opts)
	spinner.Stop()
	if res == nil {
		return err
	}

	switch {
	case len(res.Written) == 0 && len(res.Failed) == 0:
		printWarning("No PNG images in %s", input)
	case len(res.Failed) == 0:
		printSuccess("Processed %d images in %s", len(res.Written), res.Duration.Round(time.Millisecond))
	default:
		printWarning("Processed %d images, %d failed", len(res.Written), len(res.Failed))
	}
	for _, name := range failedNames(res) {
		printDetail("%s: %s", name, errors.UserMessage(res.Failed[name]))
	}
	if len(res.Written) > 0 {
		printFile(output)
	}
	prog.done("processed directory", "written", len(res.Written), "failed", len(res.Failed))

	if err != nil {
		return err
	}
	if len(res.Failed) > 0 {
		return fmt.Errorf("%d of %d images failed", len(res.Failed), len(res.Failed)+len(res.Written))
	}
	if opts.Seed == nil && len(res.Written) > 0 {
		printNextStep("Reproduce this run", "rbgen process --seed N ...")
	}
	return nil
}

func failedNames(res *pipeline.BatchResult) []string {
	names := make([]string, 0, len(res.Failed))
	for name := range res.Failed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
