// Package console is the terminal front-end: a REPL over the session manager
// and the admin directory. Screens render from the session's derived flags
// and never mutate its state directly.
package console

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/authconsole/internal/admin"
	"github.com/dmitrijs2005/authconsole/internal/api"
	"github.com/dmitrijs2005/authconsole/internal/config"
	"github.com/dmitrijs2005/authconsole/internal/logging"
	"github.com/dmitrijs2005/authconsole/internal/session"
	"github.com/dmitrijs2005/authconsole/internal/tokenstore"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config  *config.Config
	client  api.Client
	session SessionService
	admin   AdminService
	log     logging.Logger
	Mode    Mode
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := tokenstore.InitDatabase(ctx, c.TokenDBPath)
	if err != nil {
		log.Printf("error initializing token database: %s", err.Error())
		return nil, err
	}

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, logger)
	store := tokenstore.NewSQLiteStore(db)

	return &App{
		config:  c,
		client:  apiClient,
		session: session.NewManager(apiClient, store, logger),
		admin:   admin.NewService(apiClient, logger),
		log:     logger,
		Mode:    ModeOnline,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Authenticated()
}

func (a *App) isAdmin() bool {
	return a.session.IsAdmin()
}

// status renders the prompt segment: the signed-in identity (or "guest"),
// an admin marker, and connectivity.
func (a *App) status() string {
	who := "guest"
	if u := a.session.CurrentUser(); u != nil {
		who = u.Email
		if u.IsAdmin() {
			who += " (admin)"
		}
	}
	return who + " [" + string(a.Mode) + "]"
}

// Run resolves the persisted session first — no screen renders content gated
// on authentication until the resolution reaches a terminal state — then
// starts the reachability watcher and enters the REPL.
func (a *App) Run(ctx context.Context) {
	printlnFn("Checking stored session...")
	state := a.session.Resolve(ctx)
	if state == session.StateAuthenticated {
		printlnFn("Welcome back,", a.session.CurrentUser().Name)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// StartOnlineStatusWatcher periodically probes the server's health endpoint
// and flips the connectivity indicator. Probe failures are non-fatal.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.client.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
