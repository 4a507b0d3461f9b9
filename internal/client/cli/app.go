package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/legacyvault/internal/client/authevents"
	"github.com/dmitrijs2005/legacyvault/internal/client/bootstrap"
	"github.com/dmitrijs2005/legacyvault/internal/client/client"
	"github.com/dmitrijs2005/legacyvault/internal/client/config"
	"github.com/dmitrijs2005/legacyvault/internal/client/credstore"
	"github.com/dmitrijs2005/legacyvault/internal/client/services"
	"github.com/dmitrijs2005/legacyvault/internal/client/session"
	"github.com/dmitrijs2005/legacyvault/internal/client/vault"
	"github.com/dmitrijs2005/legacyvault/internal/filex"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	session     *session.Manager
	bus         *authevents.Bus
	authService services.AuthService
	boot        *bootstrap.Controller
	vault       *vault.VaultFetcher
	categories  *vault.CategoryFetcher
	watcher     *authevents.ExpiryWatcher

	mu    sync.Mutex
	route bootstrap.Route

	closers []func() error
}

// dataBackend is what the fetchers and the bootstrap controller need from
// either data client.
type dataBackend interface {
	vault.MessageSource
	vault.CategorySource
}

// NewApp builds the full client from cfg. Call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	a := &App{
		config: cfg,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    stdout,
		bus:    authevents.NewBus(),
	}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.session = session.NewManager(store, a.bus, logger)

	data, err := a.openData(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	authClient := client.NewAuthClient(cfg.AuthAPIURL, cfg.RequestTimeout)
	a.authService = services.NewAuthService(authClient, a.session, logger)

	a.wire(data, a.mediaResolver())
	a.watcher = authevents.NewExpiryWatcher(a.session, cfg.SessionCheckInterval, logger)

	return a, nil
}

// wire builds the components that depend on the session manager and the
// data backend. The App itself is their Navigator and Alerter.
func (a *App) wire(data dataBackend, media vault.MediaResolver) {
	a.boot = bootstrap.NewController(a.session, data, a.bus, a, a.logger)
	a.vault = vault.NewVaultFetcher(a.session, data, media, a, a.logger)
	a.categories = vault.NewCategoryFetcher(a.session, data, a, a.logger)
}

func (a *App) openStore(ctx context.Context) (credstore.Store, error) {
	switch a.config.Store {
	case config.StoreMemory:
		return credstore.NewMemory(), nil
	case config.StoreSQLite, "":
	default:
		return nil, fmt.Errorf("unknown credential store %q", a.config.Store)
	}

	path, err := filex.EnsureFileDir(a.config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error preparing database directory: %w", err)
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	return credstore.NewSQLiteStore(db, a.config.DeviceSecret, a.logger), nil
}

func (a *App) openData(ctx context.Context) (dataBackend, error) {
	switch a.config.DataBackend {
	case config.BackendREST, "":
		return client.NewRESTDataClient(a.config.DataAPIURL, a.config.DataAPIKey, a.session, a.config.RequestTimeout), nil
	case config.BackendPostgres:
		if a.config.DatabaseDSN == "" {
			return nil, errors.New("postgres data backend needs a database DSN")
		}
		pg, err := client.OpenPostgresDataClient(ctx, a.config.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("error connecting to data database: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", a.config.DataBackend)
	}
}

// mediaResolver is nil unless a media bucket is configured.
func (a *App) mediaResolver() vault.MediaResolver {
	if a.config.S3Bucket == "" {
		return nil
	}
	return client.NewMediaResolver(client.S3Options{
		Bucket:       a.config.S3Bucket,
		Region:       a.config.S3Region,
		BaseEndpoint: a.config.S3BaseEndpoint,
		AccessKey:    a.config.S3AccessKey,
		SecretKey:    a.config.S3SecretKey,
	})
}

// Run restores the session, routes, starts the expiry watcher and blocks in
// the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to legacyvault (type 'help' for commands)")

	a.session.CheckAuth(ctx)
	a.boot.Start(ctx)
	defer a.boot.Stop()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.watcher.Run(watchCtx)

	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the databases opened by NewApp.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Navigate shows the screen picked by the bootstrap controller.
func (a *App) Navigate(r bootstrap.Route) {
	a.mu.Lock()
	a.route = r
	a.mu.Unlock()

	switch r.Name {
	case bootstrap.Landing:
		fmt.Fprintln(a.out, "You are signed out. Type 'login' or 'register'.")
	case bootstrap.Onboarding:
		fmt.Fprintln(a.out, "Let's set up your profile. Type 'categories' to pick what you want to share.")
	case bootstrap.Main:
		fmt.Fprintf(a.out, "Hi %s! Type 'vault' to see your messages.\n", r.FirstName)
	}
}

// Alert prints a blocking alert. The REPL does not continue the command
// that raised it.
func (a *App) Alert(al vault.Alert) {
	fmt.Fprintf(a.out, "[%s] %s\n", al.Title, al.Message)
}

func (a *App) currentRoute() bootstrap.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

func (a *App) status() string {
	s := a.currentRoute().Name.String()
	if u := a.session.Current().Session.User; u != nil {
		s = u.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// withTimeout bounds a single command's remote calls.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// errorText is the line shown to the user for a failed command.
func errorText(err error) string {
	if msg := services.ValidationMessage(err); msg != "" {
		return msg
	}
	return client.MessageOf(err)
}
