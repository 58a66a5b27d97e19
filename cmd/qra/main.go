// qra is a terminal host for the quick-reply overlay and its settings.
package main

import (
	"os"

	"github.com/iiroan/qra/cmd/qra/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
