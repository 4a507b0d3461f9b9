// Package session owns the in-memory auth state of the client and keeps it
// consistent with the persistent credential store.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/legacyvault/internal/client/authevents"
	"github.com/dmitrijs2005/legacyvault/internal/client/credstore"
	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

var ErrNoSession = errors.New("no active session")

// Manager holds the current State. Writers replace it under mu; observers
// are invoked after mu is released, on the goroutine that caused the change.
type Manager struct {
	store  credstore.Store
	bus    *authevents.Bus
	logger logging.Logger

	mu        sync.RWMutex
	state     State
	nextID    int
	observers map[int]func(State)
}

// NewManager returns a manager in the Initializing state. bus may be nil.
func NewManager(store credstore.Store, bus *authevents.Bus, logger logging.Logger) *Manager {
	return &Manager{
		store:     store,
		bus:       bus,
		logger:    logger.With("component", "session"),
		state:     State{Status: Initializing},
		observers: make(map[int]func(State)),
	}
}

// CheckAuth hydrates the state from the store. Token and user are read
// concurrently; the session is authenticated only when both are present.
func (m *Manager) CheckAuth(ctx context.Context) {
	var (
		token string
		user  *models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverInto(&err)
		token = m.store.GetToken(gctx)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverInto(&err)
		user = m.store.GetUserData(gctx)
		return nil
	})

	next := State{Status: Unauthenticated}
	if err := g.Wait(); err != nil {
		m.logger.Error(ctx, "auth check failed", "error", err)
	} else if token != "" && user != nil {
		next = State{Status: Authenticated, Session: models.Session{User: user, Token: token}}
	}

	m.logger.Debug(ctx, "auth checked", "status", next.Status.String())
	m.replace(next)
}

// SignIn persists the pair first; memory is updated only if that succeeds.
func (m *Manager) SignIn(ctx context.Context, user *models.User, token string) error {
	if user == nil || token == "" {
		return fmt.Errorf("sign in: %w", ErrNoSession)
	}
	if err := m.store.SetSession(ctx, user, token); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	sess := models.Session{User: user, Token: token}
	m.replace(State{Status: Authenticated, Session: sess})
	m.publish(authevents.Event{Type: authevents.SignedIn, Session: sess})
	return nil
}

// SignOut clears the store and then memory. A store failure is logged and
// does not keep the user signed in.
func (m *Manager) SignOut(ctx context.Context) {
	if err := m.store.ClearAuth(ctx); err != nil {
		m.logger.Warn(ctx, "sign out: stored credentials not cleared", "error", err)
	}
	m.replace(State{Status: Unauthenticated})
	m.publish(authevents.Event{Type: authevents.SignedOut})
}

func (m *Manager) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) IsAuthenticated() bool {
	return m.Current().Status == Authenticated
}

// CurrentSession returns the active session or ErrNoSession.
func (m *Manager) CurrentSession(ctx context.Context) (models.Session, error) {
	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}
	st := m.Current()
	if st.Status != Authenticated || !st.Session.Valid() {
		return models.Session{}, ErrNoSession
	}
	return st.Session, nil
}

// AccessToken returns the token of the active session, or "".
func (m *Manager) AccessToken(context.Context) string {
	return m.Current().Session.Token
}

// Subscribe registers fn for every subsequent state change.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

func (m *Manager) replace(next State) {
	m.mu.Lock()
	m.state = next
	fns := make([]func(State), 0, len(m.observers))
	for _, fn := range m.observers {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}

func (m *Manager) publish(ev authevents.Event) {
	if m.bus != nil {
		m.bus.Publish(ev)
	}
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("panic: %v", r)
	}
}
