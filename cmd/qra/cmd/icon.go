package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/qra/internal/icon"
	"github.com/iiroan/qra/internal/ui"
)

var iconCmd = &cobra.Command{
	Use:   "icon",
	Short: "Manage the overlay icon",
}

var iconUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Store an image file as the custom icon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(args[0])
	},
}

var iconPasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Store the clipboard text as the custom icon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPaste()
	},
}

var iconPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show how the current icon resolves",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview()
	},
}

func init() {
	iconCmd.AddCommand(iconUploadCmd)
	iconCmd.AddCommand(iconPasteCmd)
	iconCmd.AddCommand(iconPreviewCmd)
}

func runUpload(path string) error {
	err := ui.RunWithSpinner(context.Background(), "Uploading icon", func(ctx context.Context) error {
		select {
		case err := <-app.plugin.UploadIcon(path):
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		return fmt.Errorf("uploading icon: %w", err)
	}

	if kind := app.plugin.Config().Icon.Kind; kind != icon.KindCustom {
		fmt.Println(ui.HintStyle.Render("Icon stored. Select the custom icon type to use it: qra set iconType=custom"))
	}
	printOverlay()
	return nil
}

func runPaste() error {
	if !app.plugin.PasteIcon() {
		msg, _ := app.host.LastStatus()
		return errors.New(msg)
	}
	printOverlay()
	return nil
}

func runPreview() error {
	app.plugin.ShowPreview()
	defer app.plugin.ClosePreview()

	cfg := app.plugin.Config()
	d := icon.Resolve(cfg.Icon)
	fmt.Println(ui.KeyValue("kind", cfg.Icon.Kind.Label(), 8))
	fmt.Println(ui.KeyValue("resolves", d.Variant.String(), 8))
	if d.URI != "" {
		fmt.Println(ui.KeyValue("uri", d.URI, 8))
	}
	printOverlay()
	return nil
}
