// Reset command: hard wipe of the key-value entity keys.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove all key-value entity data",
	Long: `Reset unconditionally removes the projects, users, messages, and settings
keys from the key-value store. The engine snapshot key is left untouched, so
"sync --from-engine" can rehydrate the collections afterwards.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagForce, "force", false, "confirm the wipe")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !flagForce {
		return fmt.Errorf("refusing to wipe data without --force")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.kv.ClearAll(); err != nil {
		return fmt.Errorf("clear key-value store: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Key-value data cleared (engine snapshot preserved)")
	return nil
}
