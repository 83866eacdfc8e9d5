// Migrate command: one-time key-value to engine bulk copy.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run the one-time key-value to engine migration",
	Long: `Copy the key-value collections into the engine. The migration runs only
when no engine snapshot is stored yet; re-running it is a no-op.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireEngine(); err != nil {
		return err
	}

	ran, failures := a.svc.Migrate()
	if !ran {
		fmt.Fprintln(cmd.OutOrStdout(), "Engine snapshot already present, nothing to migrate")
		return nil
	}
	if err := reportFailures(failures); err != nil {
		return fmt.Errorf("migration incomplete: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Migration complete")
	return nil
}
