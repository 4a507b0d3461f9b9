package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/legacyvault/internal/client/authevents"
	"github.com/dmitrijs2005/legacyvault/internal/client/client"
	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

type recordingNav struct{ routes []Route }

func (n *recordingNav) Navigate(r Route) { n.routes = append(n.routes, r) }

func (n *recordingNav) last() Route { return n.routes[len(n.routes)-1] }

type fakeSessions struct {
	sess models.Session
	err  error
}

func (f fakeSessions) CurrentSession(context.Context) (models.Session, error) {
	return f.sess, f.err
}

type fakeDirectors struct {
	director *models.Director
	err      error
	asked    []string
}

func (f *fakeDirectors) DirectorByAuthUserID(_ context.Context, id string) (*models.Director, error) {
	f.asked = append(f.asked, id)
	return f.director, f.err
}

func session() models.Session {
	return models.Session{User: &models.User{ID: "u1"}, Token: "tok"}
}

var (
	errDown     = &client.Error{Kind: client.KindTransport, Message: client.NetworkErrorMessage}
	errNotFound = &client.Error{Kind: client.KindNotFound, Message: "director not found"}
)

func TestStart_InitialRoute(t *testing.T) {
	tests := []struct {
		name      string
		sessions  fakeSessions
		directors *fakeDirectors
		want      Route
	}{
		{
			name:      "session read fails",
			sessions:  fakeSessions{err: errors.New("store locked")},
			directors: &fakeDirectors{},
			want:      Route{Name: Landing},
		},
		{
			name:      "no session",
			sessions:  fakeSessions{},
			directors: &fakeDirectors{},
			want:      Route{Name: Landing},
		},
		{
			name:      "director found",
			sessions:  fakeSessions{sess: session()},
			directors: &fakeDirectors{director: &models.Director{FirstName: " Ann "}},
			want:      Route{Name: Main, FirstName: "Ann"},
		},
		{
			name:      "director without first name",
			sessions:  fakeSessions{sess: session()},
			directors: &fakeDirectors{director: &models.Director{}},
			want:      Route{Name: Main, FirstName: "there"},
		},
		{
			name:      "director not found",
			sessions:  fakeSessions{sess: session()},
			directors: &fakeDirectors{err: errNotFound},
			want:      Route{Name: Onboarding},
		},
		{
			name:      "lookup fails",
			sessions:  fakeSessions{sess: session()},
			directors: &fakeDirectors{err: errDown},
			want:      Route{Name: Onboarding},
		},
		{
			name:      "lookup returns nothing",
			sessions:  fakeSessions{sess: session()},
			directors: &fakeDirectors{},
			want:      Route{Name: Onboarding},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := &recordingNav{}
			c := NewController(tt.sessions, tt.directors, nil, nav, logging.NewNop())

			got := c.Start(context.Background())
			require.Equal(t, tt.want, got)
			require.Equal(t, []Route{tt.want}, nav.routes)
		})
	}
}

func TestStart_WaitsForAssets(t *testing.T) {
	nav := &recordingNav{}
	c := NewController(fakeSessions{}, &fakeDirectors{}, nil, nav, logging.NewNop())

	var order []string
	c.AssetsReady = func(context.Context) error {
		order = append(order, "assets")
		require.Empty(t, nav.routes)
		return errors.New("font missing")
	}
	c.Start(context.Background())
	order = append(order, "routed")

	require.Equal(t, []string{"assets", "routed"}, order)
	require.Equal(t, Route{Name: Landing}, nav.last())
}

func TestEvents(t *testing.T) {
	tests := []struct {
		name      string
		directors *fakeDirectors
		ev        authevents.Event
		want      Route
	}{
		{
			name: "signed out",
			ev:   authevents.Event{Type: authevents.SignedOut},
			want: Route{Name: Landing},
		},
		{
			name:      "signed in with director",
			directors: &fakeDirectors{director: &models.Director{FirstName: "Bob"}},
			ev:        authevents.Event{Type: authevents.SignedIn, Session: session()},
			want:      Route{Name: Main, FirstName: "Bob"},
		},
		{
			name:      "signed in, lookup fails",
			directors: &fakeDirectors{err: errDown},
			ev:        authevents.Event{Type: authevents.SignedIn, Session: session()},
			want:      Route{Name: Main, FirstName: "there"},
		},
		{
			name:      "signed in, no director yet",
			directors: &fakeDirectors{err: errNotFound},
			ev:        authevents.Event{Type: authevents.SignedIn, Session: session()},
			want:      Route{Name: Onboarding},
		},
		{
			name:      "signed in, lookup returns nothing",
			directors: &fakeDirectors{},
			ev:        authevents.Event{Type: authevents.SignedIn, Session: session()},
			want:      Route{Name: Onboarding},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directors := tt.directors
			if directors == nil {
				directors = &fakeDirectors{}
			}
			bus := authevents.NewBus()
			nav := &recordingNav{}
			c := NewController(fakeSessions{}, directors, bus, nav, logging.NewNop())
			c.Start(context.Background())

			bus.Publish(tt.ev)
			require.Len(t, nav.routes, 2)
			require.Equal(t, tt.want, nav.last())
		})
	}
}

func TestSignedInLooksUpEventUser(t *testing.T) {
	bus := authevents.NewBus()
	directors := &fakeDirectors{director: &models.Director{FirstName: "Ann"}}
	c := NewController(fakeSessions{}, directors, bus, &recordingNav{}, logging.NewNop())
	c.Start(context.Background())

	bus.Publish(authevents.Event{Type: authevents.SignedIn, Session: session()})
	require.Equal(t, []string{"u1"}, directors.asked)
}

func TestStopUnsubscribes(t *testing.T) {
	bus := authevents.NewBus()
	nav := &recordingNav{}
	c := NewController(fakeSessions{}, &fakeDirectors{}, bus, nav, logging.NewNop())
	c.Start(context.Background())

	c.Stop()
	c.Stop()
	bus.Publish(authevents.Event{Type: authevents.SignedOut})
	require.Len(t, nav.routes, 1)
}

func TestMainRoute(t *testing.T) {
	require.Equal(t, Route{Name: Main, FirstName: "there"}, MainRoute("   "))
	require.Equal(t, Route{Name: Main, FirstName: "Zoe"}, MainRoute("Zoe"))
	require.Equal(t, "main", Main.String())
}
