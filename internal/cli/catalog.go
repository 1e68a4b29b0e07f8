package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/spa-dev/rbgen/pkg/catalog"
	"github.com/spa-dev/rbgen/pkg/core/compose"
	"github.com/spa-dev/rbgen/pkg/palette"
)

// modesCommand lists the background modes, or prints one mode's parameters.
func (c *CLI) modesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes [MODE]",
		Short: "List background modes or show a mode's parameters",
		Long: `Without arguments, modes lists every background mode. With a mode name it
prints the parameters that mode uses as TOML, including any overrides from
the config file, ready to pass to --params.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var names []string
			for _, m := range catalog.Modes() {
				names = append(names, string(m)+"\t"+m.Description())
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, modesTable())
				return nil
			}

			m, err := catalog.ParseMode(args[0])
			if err != nil {
				return err
			}
			p, err := c.Config.ModeParams(m)
			if err != nil {
				return err
			}
			if p == nil {
				p = catalog.DefaultParams(m)
			}
			text, err := catalog.EncodeParams(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "# %s: %s\n", m, m.Description())
			if strings.TrimSpace(text) == "" {
				fmt.Fprintln(out, "# no parameters")
				return nil
			}
			fmt.Fprint(out, text)
			return nil
		},
	}
}

func modesTable() string {
	rows := make([][]string, 0, len(catalog.Modes()))
	for _, m := range catalog.Modes() {
		rule := "mask"
		if catalog.BlendRule(m) == compose.RuleBlend {
			rule = "blend"
		}
		rows = append(rows, []string{string(m), fmt.Sprint(m.MinColors()), rule, m.Description()})
	}
	return listTable([]string{"Mode", "Colors", "Merge", "Description"}, rows)
}

// themesCommand lists the color themes with swatches of their pairs.
func (c *CLI) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List color themes",
		Long: `Themes lists the built-in color themes and those defined in the config
file. Each pair is shown as two swatches; a themed render picks one pair at
random.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			themes := palette.NewRegistry()
			if err := themes.Merge(c.Config.Themes); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), themesTable(themes))
			return nil
		},
	}
}

func themesTable(themes *palette.Registry) string {
	var rows [][]string
	for _, name := range themes.Names() {
		pairs, _ := themes.Pairs(name)
		var samples, hexes []string
		for _, p := range pairs {
			samples = append(samples, swatch(p[0].String())+swatch(p[1].String()))
			hexes = append(hexes, p[0].String()+"/"+p[1].String())
		}
		rows = append(rows, []string{name, strings.Join(samples, " "), strings.Join(hexes, " ")})
	}
	return listTable([]string{"Theme", "Pairs", "Colors"}, rows)
}

// listTable renders rows with the header and border styles of every rbgen
// listing.
func listTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == len(headers)-1:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
