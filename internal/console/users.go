package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/authconsole/internal/models"
)

var errNotAdmin = errors.New("admin privileges required")

// Whoami prints the signed-in account's record.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}

	printlnFn(renderUsers([]models.User{*u}))
	return nil
}

// Users lists the full directory. Admin only: the check here is a UX
// shortcut, the server enforces the role on every call anyway.
func (a *App) Users(ctx context.Context) error {
	if !a.isAdmin() {
		printlnFn(errNotAdmin.Error())
		return errNotAdmin
	}

	users, err := a.admin.List(ctx)
	if err != nil {
		renderError(err)
		return err
	}

	printlnFn(renderUsers(users))
	return nil
}

// User shows a single account record by id.
func (a *App) User(ctx context.Context, args []string) error {
	id, err := a.adminTarget(args, "user <id>")
	if err != nil {
		return err
	}

	user, err := a.admin.Get(ctx, id)
	if err != nil {
		renderError(err)
		return err
	}

	printlnFn(renderUsers([]models.User{*user}))
	return nil
}

// Enable re-activates the account named by args[0].
func (a *App) Enable(ctx context.Context, args []string) error {
	id, err := a.adminTarget(args, "enable <id>")
	if err != nil {
		return err
	}

	user, err := a.admin.Enable(ctx, id)
	if err != nil {
		renderError(err)
		return err
	}

	printlnFn("Enabled", user.Email)
	return nil
}

// Disable deactivates the account named by args[0].
func (a *App) Disable(ctx context.Context, args []string) error {
	id, err := a.adminTarget(args, "disable <id>")
	if err != nil {
		return err
	}

	user, err := a.admin.Disable(ctx, id)
	if err != nil {
		renderError(err)
		return err
	}

	printlnFn("Disabled", user.Email)
	return nil
}

// AssignRole sets the role of the account named by args[0] to args[1].
func (a *App) AssignRole(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: role <id> <USER|ADMIN>")
		return fmt.Errorf("missing arguments")
	}

	id, err := a.adminTarget(args[:1], "role <id> <role>")
	if err != nil {
		return err
	}

	role := models.Role(strings.ToUpper(args[1]))
	if !role.Valid() {
		printlnFn("Unknown role:", args[1])
		return fmt.Errorf("unknown role %q", args[1])
	}

	user, err := a.admin.AssignRole(ctx, id, role)
	if err != nil {
		renderError(err)
		return err
	}

	printlnFn(fmt.Sprintf("Assigned role %s to %s", user.Role, user.Email))
	return nil
}

// adminTarget validates the admin gate and parses the target account id.
func (a *App) adminTarget(args []string, usage string) (uuid.UUID, error) {
	if !a.isAdmin() {
		printlnFn(errNotAdmin.Error())
		return uuid.Nil, errNotAdmin
	}
	if len(args) < 1 {
		printlnFn("Usage:", usage)
		return uuid.Nil, fmt.Errorf("missing arguments")
	}

	id, err := uuid.Parse(args[0])
	if err != nil {
		printlnFn("Invalid user id:", args[0])
		return uuid.Nil, err
	}
	return id, nil
}

// renderUsers formats the records as an aligned table.
func renderUsers(users []models.User) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tENABLED\tCREATED")
	for _, u := range users {
		created := ""
		if !u.CreatedAt.IsZero() {
			created = u.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Enabled, created)
	}
	_ = w.Flush()

	return strings.TrimRight(sb.String(), "\n")
}
