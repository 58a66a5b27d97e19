package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iiroan/qra/internal/ui"
)

const usageText = `This overlay hides the host's quick-reply bar and adds a compact
button next to the send button instead.

Click the button to open or close the reply menu. Disabling the
overlay brings the original quick-reply bar back.

The icon can be a built-in glyph or custom content: inline SVG,
an image URL, a data URI or bare base64 image data.`

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Explain how the overlay works",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printUsage()
	},
}

func printUsage() {
	fmt.Println(ui.InfoBox.Render(ui.Bold.Render("Usage") + "\n\n" + usageText))
}
