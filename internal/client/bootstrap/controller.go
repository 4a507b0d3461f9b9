// Package bootstrap decides where the user lands when the client starts and
// moves them when the auth state changes.
package bootstrap

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/legacyvault/internal/client/authevents"
	"github.com/dmitrijs2005/legacyvault/internal/client/client"
	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/common"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

type RouteName int

const (
	Landing RouteName = iota + 1
	Onboarding
	Main
)

func (n RouteName) String() string {
	switch n {
	case Landing:
		return "landing"
	case Onboarding:
		return "onboarding"
	case Main:
		return "main"
	default:
		return "unknown"
	}
}

// Route is a navigation target. FirstName is set only for Main.
type Route struct {
	Name      RouteName
	FirstName string
}

func MainRoute(firstName string) Route {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = common.DefaultDisplayName
	}
	return Route{Name: Main, FirstName: name}
}

type Navigator interface {
	Navigate(Route)
}

type SessionSource interface {
	CurrentSession(ctx context.Context) (models.Session, error)
}

type DirectorLookup interface {
	DirectorByAuthUserID(ctx context.Context, authUserID string) (*models.Director, error)
}

// Controller routes once on Start and then on every auth event until Stop.
type Controller struct {
	sessions  SessionSource
	directors DirectorLookup
	bus       *authevents.Bus
	nav       Navigator
	logger    logging.Logger

	// AssetsReady blocks until the host is ready to show a route. Its error
	// is logged and does not prevent routing.
	AssetsReady func(ctx context.Context) error

	mu          sync.Mutex
	ctx         context.Context
	unsubscribe func()
}

func NewController(sessions SessionSource, directors DirectorLookup, bus *authevents.Bus, nav Navigator, logger logging.Logger) *Controller {
	return &Controller{
		sessions:  sessions,
		directors: directors,
		bus:       bus,
		nav:       nav,
		logger:    logger.With("component", "bootstrap"),
	}
}

// Start performs the initial routing and subscribes to auth events. ctx is
// also used for lookups triggered by later events.
func (c *Controller) Start(ctx context.Context) Route {
	if c.AssetsReady != nil {
		if err := c.AssetsReady(ctx); err != nil {
			c.logger.Warn(ctx, "assets not ready", "error", err)
		}
	}

	route := c.initialRoute(ctx)
	c.nav.Navigate(route)

	if c.bus != nil {
		c.mu.Lock()
		c.ctx = ctx
		c.unsubscribe = c.bus.Subscribe(c.onEvent)
		c.mu.Unlock()
	}
	return route
}

// Stop ends the subscription. It is safe to call more than once.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// initialRoute is strict: any failure to prove a profile exists routes to
// Onboarding, and any failure to read the session routes to Landing.
func (c *Controller) initialRoute(ctx context.Context) Route {
	sess, err := c.sessions.CurrentSession(ctx)
	if err != nil {
		c.logger.Debug(ctx, "no session at start", "error", err)
		return Route{Name: Landing}
	}
	if !sess.Valid() {
		return Route{Name: Landing}
	}

	director, err := c.directors.DirectorByAuthUserID(ctx, sess.User.ID)
	if err != nil {
		if !errors.Is(err, client.ErrNotFound) {
			c.logger.Error(ctx, "director lookup failed at start", "error", err)
		}
		return Route{Name: Onboarding}
	}
	if director == nil {
		return Route{Name: Onboarding}
	}
	return MainRoute(director.FirstName)
}

// signedInRoute is lenient: a lookup that fails for any reason other than a
// definite not-found still lets the user in.
func (c *Controller) signedInRoute(ctx context.Context, sess models.Session) Route {
	if sess.User == nil {
		return MainRoute("")
	}
	director, err := c.directors.DirectorByAuthUserID(ctx, sess.User.ID)
	switch {
	case errors.Is(err, client.ErrNotFound), err == nil && director == nil:
		return Route{Name: Onboarding}
	case err != nil:
		c.logger.Warn(ctx, "director lookup failed after sign in", "error", err)
		return MainRoute("")
	}
	return MainRoute(director.FirstName)
}

func (c *Controller) onEvent(ev authevents.Event) {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	switch ev.Type {
	case authevents.SignedOut:
		c.nav.Navigate(Route{Name: Landing})
	case authevents.SignedIn:
		c.nav.Navigate(c.signedInRoute(ctx, ev.Session))
	}
}
