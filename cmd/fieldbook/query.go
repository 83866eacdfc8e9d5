// Query command: free-form SQL console against the engine.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlaseng/fieldbook/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run arbitrary SQL against the engine",
	Long: `Query executes one SQL statement against the engine and prints the rows
as JSON. This command fundamentally requires the engine; when it is
unavailable the command reports that instead of executing against
undefined state.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireEngine(); err != nil {
		return err
	}

	rows, err := a.eng.ExecuteQuery(args[0])
	if err != nil {
		if errors.Is(err, types.ErrQuery) {
			// Surface the engine's own message so ad-hoc queries get
			// actionable feedback.
			return err
		}
		return fmt.Errorf("query: %w", err)
	}
	return printJSON(rows)
}
