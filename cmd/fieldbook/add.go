// Add commands: create projects, users, and messages in the key-value store,
// then push the changed collection into the engine when it is available.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/atlaseng/fieldbook/pkg/types"
)

// newID generates a time-ordered UUID, falling back to v4 if the system
// clock misbehaves.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a record in the key-value store",
}

var (
	flagProjectName     string
	flagProjectCode     string
	flagProjectProvince string
	flagProjectClient   string
	flagProjectStatus   string

	flagUserName  string
	flagUserEmail string
	flagUserPhone string
	flagUserRole  string

	flagMsgFrom    string
	flagMsgTo      string
	flagMsgContent string
	flagMsgProject string
)

var addProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Create a project",
	RunE:  runAddProject,
}

var addUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Create a user account",
	RunE:  runAddUser,
}

var addMessageCmd = &cobra.Command{
	Use:   "message",
	Short: "Send a message between two users",
	RunE:  runAddMessage,
}

func init() {
	addProjectCmd.Flags().StringVar(&flagProjectName, "name", "", "project name (required)")
	addProjectCmd.Flags().StringVar(&flagProjectCode, "code", "", "project code (required)")
	addProjectCmd.Flags().StringVar(&flagProjectProvince, "province", "", "province")
	addProjectCmd.Flags().StringVar(&flagProjectClient, "client", "", "client organization")
	addProjectCmd.Flags().StringVar(&flagProjectStatus, "status", types.ProjectStatusPlanning, "initial status")
	addProjectCmd.MarkFlagRequired("name")
	addProjectCmd.MarkFlagRequired("code")

	addUserCmd.Flags().StringVar(&flagUserName, "name", "", "full name (required)")
	addUserCmd.Flags().StringVar(&flagUserEmail, "email", "", "email, unique across users (required)")
	addUserCmd.Flags().StringVar(&flagUserPhone, "phone", "", "phone number")
	addUserCmd.Flags().StringVar(&flagUserRole, "role", string(types.RoleSiteEngineer), "role name")
	addUserCmd.MarkFlagRequired("name")
	addUserCmd.MarkFlagRequired("email")

	addMessageCmd.Flags().StringVar(&flagMsgFrom, "from", "", "sender user ID (required)")
	addMessageCmd.Flags().StringVar(&flagMsgTo, "to", "", "receiver user ID (required)")
	addMessageCmd.Flags().StringVar(&flagMsgContent, "content", "", "message body (required)")
	addMessageCmd.Flags().StringVar(&flagMsgProject, "project", "", "project ID the message relates to")
	addMessageCmd.MarkFlagRequired("from")
	addMessageCmd.MarkFlagRequired("to")
	addMessageCmd.MarkFlagRequired("content")

	addCmd.AddCommand(addProjectCmd)
	addCmd.AddCommand(addUserCmd)
	addCmd.AddCommand(addMessageCmd)
}

func runAddProject(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	now := time.Now().UTC().Format(time.RFC3339)
	p := types.Project{
		ID:        newID(),
		Name:      flagProjectName,
		Code:      flagProjectCode,
		Province:  flagProjectProvince,
		Client:    flagProjectClient,
		Status:    flagProjectStatus,
		CreatedAt: now,
		UpdatedAt: now,
	}

	projects, err := a.kv.Projects()
	if err != nil {
		return err
	}
	if err := a.kv.SetProjects(append(projects, p)); err != nil {
		return err
	}
	pushToEngine(a, "projects", a.svc.SyncProjectsToEngine)

	if flagJSON {
		return printJSON(p)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.ID, p.Name)
	return nil
}

func runAddUser(cmd *cobra.Command, args []string) error {
	role := types.Role(flagUserRole)
	if len(types.RolePermissions(role)) == 0 {
		return fmt.Errorf("unknown role %q", flagUserRole)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	users, err := a.kv.Users()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == flagUserEmail {
			return fmt.Errorf("email %s already in use by %s", flagUserEmail, u.ID)
		}
	}

	u := types.User{
		ID:    newID(),
		Name:  flagUserName,
		Email: flagUserEmail,
		Phone: flagUserPhone,
		Role:  role,
	}
	if err := a.kv.SetUsers(append(users, u)); err != nil {
		return err
	}
	pushToEngine(a, "users", a.svc.SyncUsersToEngine)

	if flagJSON {
		return printJSON(types.WithPermissions(u))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s, %s)\n", u.ID, u.Name, u.Role)
	return nil
}

func runAddMessage(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	users, err := a.kv.Users()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(users))
	for _, u := range users {
		known[u.ID] = true
	}
	if !known[flagMsgFrom] {
		return fmt.Errorf("unknown sender %q", flagMsgFrom)
	}
	if !known[flagMsgTo] {
		return fmt.Errorf("unknown receiver %q", flagMsgTo)
	}

	m := types.Message{
		ID:         newID(),
		SenderID:   flagMsgFrom,
		ReceiverID: flagMsgTo,
		Content:    flagMsgContent,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		ProjectID:  flagMsgProject,
	}

	messages, err := a.kv.Messages()
	if err != nil {
		return err
	}
	if err := a.kv.SetMessages(append(messages, m)); err != nil {
		return err
	}
	pushToEngine(a, "messages", a.svc.SyncMessagesToEngine)

	if flagJSON {
		return printJSON(m)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent message %s\n", m.ID)
	return nil
}

// pushToEngine mirrors a changed collection into the engine, best effort.
// The key-value write already succeeded, so an engine failure only warns.
func pushToEngine(a *app, entity string, sync func() error) {
	if a.eng == nil {
		return
	}
	if err := sync(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s not mirrored to engine: %v\n", entity, err)
	}
}
