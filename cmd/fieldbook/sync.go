// Sync command: bulk bidirectional projection between the two stores.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagFromEngine bool
	flagDetails    bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy data between the key-value store and the engine",
	Long: `Run the per-entity bulk syncs in fixed order (users, projects, messages,
settings). The default direction is key-value store to engine; --from-engine
reverses it. A failed entity is reported and the batch continues.

--details additionally projects each project's nested collections into the
dedicated analytics tables (boq_items, rfis, lab_tests, schedule_tasks,
daily_reports). The JSON blob columns on the project rows stay authoritative;
the detail tables go stale until this projection is re-run.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&flagFromEngine, "from-engine", false, "sync from the engine into the key-value store")
	syncCmd.Flags().BoolVar(&flagDetails, "details", false, "also project nested collections into the detail tables")
}

func runSync(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireEngine(); err != nil {
		return err
	}

	if flagFromEngine {
		if flagDetails {
			return fmt.Errorf("--details applies only to the key-value to engine direction")
		}
		if err := reportFailures(a.svc.SyncAllFromEngine()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Synced engine data into the key-value store")
		return nil
	}

	if err := reportFailures(a.svc.SyncAllToEngine()); err != nil {
		return err
	}
	if flagDetails {
		if err := a.svc.SyncProjectDetailsToEngine(); err != nil {
			return fmt.Errorf("detail projection: %w", err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Synced key-value data into the engine")
	return nil
}
