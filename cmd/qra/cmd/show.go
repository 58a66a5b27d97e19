package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iiroan/qra/internal/ui"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings and the overlay preview",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print settings as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := app.plugin.Config()

	if showJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding settings: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	fmt.Println(ui.Header("settings"))
	fmt.Print(string(data))
	if app.hostError != nil {
		fmt.Println(ui.WarningStyle.Render("host settings unreadable: " + app.hostError.Error()))
	}
	fmt.Println()
	printOverlay()
	return nil
}
