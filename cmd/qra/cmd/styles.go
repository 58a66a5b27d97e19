package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iiroan/qra/internal/style"
	"github.com/iiroan/qra/internal/ui"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Inspect or reset the menu styles",
}

var stylesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the style declarations and a menu sample",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.plugin.Config()

		fmt.Println(ui.Header("menu styles"))
		for _, d := range style.Project(cfg.MenuStyles) {
			fmt.Printf("%-48s %-20s %s\n", d.Selector, d.Property, ui.Swatch(d.Value))
		}

		theme := ui.NewMenuTheme(cfg.MenuStyles)
		sample := lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render("Quick Replies"),
			theme.Item.Render("Continue"),
			theme.Item.Render("Summarize"),
			theme.EmptyHint.Render("No more replies"),
		)
		fmt.Println()
		fmt.Println(theme.Panel.Render(sample))
		return nil
	},
}

var stylesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default menu styles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.plugin.ResetStyles()
		msg, ok := app.host.LastStatus()
		fmt.Println(ui.Status(msg, ok))
		return nil
	},
}

func init() {
	stylesCmd.AddCommand(stylesShowCmd)
	stylesCmd.AddCommand(stylesResetCmd)
}
