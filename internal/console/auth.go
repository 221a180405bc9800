package console

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dmitrijs2005/authconsole/internal/api"
	"github.com/dmitrijs2005/authconsole/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// renderError prints a failure the way the screen distinguishes them:
// validation failures field by field, transport failures as a generic
// message, anything else verbatim.
func renderError(err error) {
	if apiErr, ok := api.AsError(err); ok {
		if apiErr.HasFieldErrors() {
			fields := make([]string, 0, len(apiErr.Errors))
			for f := range apiErr.Errors {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				printlnFn(fmt.Sprintf("  %s: %s", f, apiErr.Errors[f]))
			}
			return
		}
		printlnFn("Error:", apiErr.Error())
		return
	}
	if errors.Is(err, common.ErrUnavailable) {
		printlnFn("Server unavailable. Please try again later.")
		return
	}
	printlnFn("Error:", err.Error())
}

// Login prompts the user for an email and password and attempts to
// authenticate via the session manager.
//
// On success it greets the signed-in user and returns nil. The password byte
// slice is securely wiped before returning. Failures are rendered (per-field
// for validation errors) and the error is returned unchanged.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		renderError(err)
		return err
	}

	printlnFn("Logged in as", a.session.CurrentUser().Email)
	return nil
}

// Register prompts for a display name, email and password and attempts to
// create a new account. A successful registration signs the user in
// immediately — the server returns a full token pair.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, name, email, string(password)); err != nil {
		renderError(err)
		return err
	}

	printlnFn("Account created. Logged in as", a.session.CurrentUser().Email)
	return nil
}

// Logout tears the session down locally. It never fails.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}
