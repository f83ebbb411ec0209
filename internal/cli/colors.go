package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/imgrid/imgrid/pkg/render"
)

// colorsCommand creates the colors command listing the border palette.
func (c *CLI) colorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List the selectable border colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range render.PaletteNames() {
				b, _ := render.ParseBorder(name)
				if b.None {
					fmt.Println("       " + StyleValue.Render(fmt.Sprintf("%-11s", name)) + " " + StyleDim.Render("no border"))
					continue
				}
				swatch := lipgloss.NewStyle().
					Background(lipgloss.Color(hexColor(b.Color.R, b.Color.G, b.Color.B))).
					Render("    ")
				rgb := fmt.Sprintf("%d,%d,%d", b.Color.R, b.Color.G, b.Color.B)
				fmt.Println("  " + swatch + " " + StyleValue.Render(fmt.Sprintf("%-11s", name)) + " " + StyleDim.Render(rgb))
			}
			return nil
		},
	}
}
