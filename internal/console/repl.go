package console

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Users(ctx context.Context) error
	User(ctx context.Context, args []string) error
	Enable(ctx context.Context, args []string) error
	Disable(ctx context.Context, args []string) error
	AssignRole(ctx context.Context, args []string) error
}

// runREPL starts a read–eval–print loop for the admin console.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as arguments, and dispatches to methods on 'a'.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               — show available commands
//	  - register           — create an account
//	  - login              — authenticate
//	  - exit | quit        — leave the program
//
//	Logged in:
//	  - help               — show available commands
//	  - whoami             — show the signed-in account
//	  - users              — list all accounts (admin)
//	  - user <id>          — show a single account (admin)
//	  - enable <id>        — re-activate an account (admin)
//	  - disable <id>       — deactivate an account (admin)
//	  - role <id> <role>   — assign USER or ADMIN (admin)
//	  - logout             — log out
//	  - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers render
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("auth> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				if a.isAdmin() {
					printlnFn("Available commands: whoami, users, user <id>, enable <id>, disable <id>, role <id> <role>, logout, exit")
				} else {
					printlnFn("Available commands: whoami, logout, exit")
				}
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami", "me":
			_ = a.Whoami(ctx)

		case "u", "users":
			_ = a.Users(ctx)

		case "user":
			_ = a.User(ctx, args)

		case "enable":
			_ = a.Enable(ctx, args)

		case "disable":
			_ = a.Disable(ctx, args)

		case "role":
			_ = a.AssignRole(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
