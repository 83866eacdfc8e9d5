// List command: render the authoritative key-value collections.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlaseng/fieldbook/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list <projects|users|messages>",
	Short: "List a key-value collection",
	Long: `List reads directly from the key-value store, the authoritative
representation. Use "report" for engine-backed aggregates.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"projects", "users", "messages"},
	RunE:      runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	switch args[0] {
	case "projects":
		projects, err := a.kv.Projects()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(projects)
		}
		for _, p := range projects {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s  %s  %s\n", p.ID, p.Name, p.Code, p.Status)
		}
	case "users":
		users, err := a.kv.Users()
		if err != nil {
			return err
		}
		if flagJSON {
			decorated := make([]types.UserWithPermissions, 0, len(users))
			for _, u := range users {
				decorated = append(decorated, types.WithPermissions(u))
			}
			return printJSON(decorated)
		}
		for _, u := range users {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s  %-32s  %s\n", u.ID, u.Name, u.Email, u.Role)
		}
	case "messages":
		messages, err := a.kv.Messages()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(messages)
		}
		for _, m := range messages {
			read := " "
			if m.Read {
				read = "r"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s] %s -> %s: %s\n", m.Timestamp, read, m.SenderID, m.ReceiverID, m.Content)
		}
	default:
		return fmt.Errorf("unknown collection %q (valid: projects, users, messages)", args[0])
	}
	return nil
}
