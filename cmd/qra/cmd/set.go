package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iiroan/qra/internal/config"
	"github.com/iiroan/qra/internal/ui"
)

var setCmd = &cobra.Command{
	Use:   "set FIELD=VALUE...",
	Short: "Change settings fields",
	Long: `Change one or more settings fields and save them.

Fields:
  ` + strings.Join(config.Fields(), "\n  "),
	Example: `  qra set enabled=false
  qra set iconType=custom customIconUrl=https://example.com/icon.png
  qra set menuStyles.menuItem.bg=#202020 menuStyles.menuItem.opacity=0.9`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	pairs, err := parseKeyValuePairs(args)
	if err != nil {
		return err
	}

	var failed []string
	for _, field := range sortedKeys(pairs) {
		if !app.plugin.ChangeField(field, pairs[field]) {
			failed = append(failed, field)
			continue
		}
		logger.Debug("field updated", "field", field, "value", pairs[field])
	}

	printOverlay()
	if len(failed) > 0 {
		return fmt.Errorf("rejected fields: %s", strings.Join(failed, ", "))
	}
	if report, ok := app.plugin.LastReport(); ok && !report.Durable() {
		return errors.New(report.Message())
	}
	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("Updated %d field(s)", len(pairs))))
	return nil
}
