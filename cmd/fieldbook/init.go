// Init command: bootstrap the key-value store and the engine schema.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize fieldbook storage",
	Long: `Create the configuration and data directories, bootstrap the key-value
store (empty projects and messages, one administrator account), and open
the engine so its schema exists. Safe to run repeatedly.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.kv.InitializeEmptyData(); err != nil {
		return fmt.Errorf("bootstrap key-value store: %w", err)
	}

	if a.eng != nil && !a.eng.Durable() {
		fmt.Fprintln(cmd.OutOrStdout(), "Fieldbook initialized (engine running in-memory, no durability)")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Fieldbook initialized")
	return nil
}
