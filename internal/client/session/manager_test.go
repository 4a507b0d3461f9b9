package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/legacyvault/internal/client/authevents"
	"github.com/dmitrijs2005/legacyvault/internal/client/credstore"
	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

// failingStore wraps a Memory store and fails the selected operations.
type failingStore struct {
	*credstore.Memory
	setErr   error
	clearErr error
	panicGet bool
}

func (s *failingStore) SetSession(ctx context.Context, u *models.User, tok string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.Memory.SetSession(ctx, u, tok)
}

func (s *failingStore) ClearAuth(ctx context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	return s.Memory.ClearAuth(ctx)
}

func (s *failingStore) GetToken(ctx context.Context) string {
	if s.panicGet {
		panic("boom")
	}
	return s.Memory.GetToken(ctx)
}

func newFailingStore() *failingStore {
	return &failingStore{Memory: credstore.NewMemory()}
}

func user() *models.User {
	return &models.User{ID: "u1", Email: "ann@example.com", Username: "ann"}
}

func TestManager_StartsLoading(t *testing.T) {
	m := NewManager(credstore.NewMemory(), nil, logging.NewNop())

	st := m.Current()
	require.Equal(t, Initializing, st.Status)
	require.True(t, st.Loading())

	_, err := m.CurrentSession(context.Background())
	require.ErrorIs(t, err, ErrNoSession)
}

func TestManager_CheckAuth(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
		user  *models.User
		want  Status
	}{
		{"both present", "tok", user(), Authenticated},
		{"token only", "tok", nil, Unauthenticated},
		{"user only", "", user(), Unauthenticated},
		{"empty", "", nil, Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := credstore.NewMemory()
			if tt.token != "" {
				require.NoError(t, store.SetToken(ctx, tt.token))
			}
			if tt.user != nil {
				require.NoError(t, store.SetUserData(ctx, tt.user))
			}

			m := NewManager(store, nil, logging.NewNop())
			m.CheckAuth(ctx)

			st := m.Current()
			require.Equal(t, tt.want, st.Status)
			require.False(t, st.Loading())
			if tt.want == Authenticated {
				require.Equal(t, tt.token, st.Session.Token)
				require.Equal(t, tt.user, st.Session.User)
			}
		})
	}
}

func TestManager_CheckAuthFailureClearsLoading(t *testing.T) {
	store := newFailingStore()
	store.panicGet = true

	m := NewManager(store, nil, logging.NewNop())
	m.CheckAuth(context.Background())

	require.Equal(t, Unauthenticated, m.Current().Status)
	require.False(t, m.Current().Loading())
}

func TestManager_SignIn(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemory()
	bus := authevents.NewBus()

	var events []authevents.Event
	bus.Subscribe(func(ev authevents.Event) { events = append(events, ev) })

	m := NewManager(store, bus, logging.NewNop())
	m.CheckAuth(ctx)

	u := user()
	require.NoError(t, m.SignIn(ctx, u, "tok"))

	require.True(t, m.IsAuthenticated())
	require.Equal(t, u, m.Current().Session.User)
	require.Equal(t, "tok", m.AccessToken(ctx))
	require.True(t, store.IsAuthenticated(ctx))

	sess, err := m.CurrentSession(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", sess.User.ID)

	require.Len(t, events, 1)
	require.Equal(t, authevents.SignedIn, events[0].Type)
	require.Equal(t, "tok", events[0].Session.Token)
}

func TestManager_SignInStoreFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newFailingStore()
	store.setErr = errors.New("disk full")
	bus := authevents.NewBus()

	published := 0
	bus.Subscribe(func(authevents.Event) { published++ })

	m := NewManager(store, bus, logging.NewNop())
	m.CheckAuth(ctx)
	before := m.Current()

	err := m.SignIn(ctx, user(), "tok")
	require.ErrorIs(t, err, store.setErr)

	require.Equal(t, before, m.Current())
	require.False(t, m.IsAuthenticated())
	require.Zero(t, published)
}

func TestManager_SignInRejectsIncompletePair(t *testing.T) {
	m := NewManager(credstore.NewMemory(), nil, logging.NewNop())
	require.ErrorIs(t, m.SignIn(context.Background(), nil, "tok"), ErrNoSession)
	require.ErrorIs(t, m.SignIn(context.Background(), user(), ""), ErrNoSession)
}

func TestManager_SignOutClearsMemoryEvenIfStoreFails(t *testing.T) {
	ctx := context.Background()
	store := newFailingStore()
	bus := authevents.NewBus()

	var last authevents.Event
	bus.Subscribe(func(ev authevents.Event) { last = ev })

	m := NewManager(store, bus, logging.NewNop())
	require.NoError(t, m.SignIn(ctx, user(), "tok"))

	store.clearErr = errors.New("locked")
	m.SignOut(ctx)

	st := m.Current()
	require.Equal(t, Unauthenticated, st.Status)
	require.Nil(t, st.Session.User)
	require.Empty(t, st.Session.Token)
	require.Equal(t, authevents.SignedOut, last.Type)
}

func TestManager_SubscribeSeesChangeBeforeReturn(t *testing.T) {
	ctx := context.Background()
	m := NewManager(credstore.NewMemory(), nil, logging.NewNop())

	var seen []Status
	unsubscribe := m.Subscribe(func(st State) {
		// observers run outside the lock
		require.Equal(t, st, m.Current())
		seen = append(seen, st.Status)
	})

	m.CheckAuth(ctx)
	require.NoError(t, m.SignIn(ctx, user(), "tok"))
	require.Equal(t, []Status{Unauthenticated, Authenticated}, seen)

	unsubscribe()
	m.SignOut(ctx)
	require.Len(t, seen, 2)
}

func TestManager_ExpiryWatcherSignsOut(t *testing.T) {
	ctx := context.Background()
	bus := authevents.NewBus()
	m := NewManager(credstore.NewMemory(), bus, logging.NewNop())

	signedOut := false
	bus.Subscribe(func(ev authevents.Event) {
		if ev.Type == authevents.SignedOut {
			signedOut = true
		}
	})

	require.NoError(t, m.SignIn(ctx, user(), expiredJWT(t)))

	w := authevents.NewExpiryWatcher(m, time.Minute, logging.NewNop())
	require.True(t, w.Check(ctx))
	require.False(t, m.IsAuthenticated())
	require.True(t, signedOut)
}

func expiredJWT(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}
