// Package cli implements the terminal client: a REPL whose commands are the
// marketplace screens (browse, post, profile, ...) wired through the session
// store, the query cache, and the HTTP client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/campusmarket/internal/client/api"
	"github.com/dmitrijs2005/campusmarket/internal/client/cache"
	"github.com/dmitrijs2005/campusmarket/internal/client/config"
	"github.com/dmitrijs2005/campusmarket/internal/client/services"
	"github.com/dmitrijs2005/campusmarket/internal/client/session"
	"github.com/dmitrijs2005/campusmarket/internal/client/store"
	"github.com/dmitrijs2005/campusmarket/internal/client/upload"
	"github.com/dmitrijs2005/campusmarket/internal/logging"
)

// App wires the client together and carries the REPL's state.
type App struct {
	config   *config.Config
	session  *session.Store
	items    *services.ItemService
	profile  *services.ProfileService
	uploader *upload.Uploader
	local    *store.Store

	reader *bufio.Reader
	out    io.Writer
	view   string
}

// NewApp opens the local database and connects all client components.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	local, err := store.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	tokens := store.NewTokenStore(local)
	client := api.New(cfg.ServerBaseURL, cfg.RequestTimeout, tokens)
	queryCache := cache.New()

	app := &App{
		config: cfg,
		local:  local,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		view:   session.ViewLogin,
	}

	app.session = session.NewStore(client, tokens, queryCache, app, app, log)
	app.items = services.NewItemService(client, queryCache)
	app.profile = services.NewProfileService(client, queryCache)
	app.uploader = upload.NewUploader(client, app)

	return app, nil
}

// Success implements the session/upload Notifier: the CLI's toast line.
func (a *App) Success(msg string) {
	fmt.Fprintf(a.out, "✔ %s\n", msg)
}

// Error implements the session/upload Notifier.
func (a *App) Error(msg string) {
	fmt.Fprintf(a.out, "✖ %s\n", msg)
}

// Navigate implements the session Navigator by switching the REPL's view.
func (a *App) Navigate(view string) {
	a.view = view
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Email + " "
	}
	s += a.view
	return fmt.Sprintf("(%s)", s)
}

// Run rehydrates the session and starts the REPL. Blocks until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.local.Close()

	a.session.Rehydrate(ctx)
	if a.session.IsAuthenticated() {
		a.view = session.ViewBrowse
		fmt.Fprintf(a.out, "Welcome back, %s!\n", a.session.User().Name)
	}

	fmt.Fprintln(a.out, "Welcome to campusmarket CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
