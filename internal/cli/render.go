package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	rbio "github.com/spa-dev/rbgen/pkg/io"
)

// renderCommand creates the single image command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		f      synthFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Put a background behind one PNG",
		Long: `Render composites a background behind one image. The result is written to
--output, or next to the input as NAME_bg.png.`,
		Example: `  rbgen render logo.png -m marble -t forest
  rbgen render logo.png -o logo-bg.png -c "#1e3c5a,#78b4d2" --seed 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &f)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			fg, err := rbio.ImportImage(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			name := filepath.Base(args[0])
			spinner := newSpinner(ctx, "Rendering "+name+"...")
			spinner.Start()
			res, err := runner.Execute(ctx, fg, opts)
			if err != nil {
				spinner.Stop()
				return err
			}

			dst := output
			if dst == "" {
				dst = defaultRenderPath(args[0])
			}
			if err := rbio.WriteFile(dst, res.PNG); err != nil {
				spinner.Stop()
				return err
			}
			spinner.StopWithSuccess("Rendered %s", name)
			printResult(res)
			printFile(dst)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default NAME_bg.png next to the input)")

	return cmd
}

// defaultRenderPath is "dir/name_bg.png" for "dir/name.png".
func defaultRenderPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_bg.png"
}
