package authevents

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
)

func TestBus_DeliversInOrder(t *testing.T) {
	b := NewBus()

	var got []string
	b.Subscribe(func(ev Event) { got = append(got, "a:"+ev.Type.String()) })
	b.Subscribe(func(ev Event) { got = append(got, "b:"+ev.Type.String()) })

	b.Publish(Event{Type: SignedIn, Session: models.Session{Token: "t"}})
	b.Publish(Event{Type: SignedOut})

	require.Equal(t, []string{"a:signed_in", "b:signed_in", "a:signed_out", "b:signed_out"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	b := NewBus()

	n := 0
	unsubscribe := b.Subscribe(func(Event) { n++ })
	b.Publish(Event{Type: SignedOut})
	unsubscribe()
	unsubscribe()
	b.Publish(Event{Type: SignedOut})

	require.Equal(t, 1, n)
}

func TestBus_SubscriberMayUnsubscribeDuringPublish(t *testing.T) {
	b := NewBus()

	var unsubscribe func()
	calls := 0
	unsubscribe = b.Subscribe(func(Event) {
		calls++
		unsubscribe()
	})

	b.Publish(Event{Type: SignedIn})
	b.Publish(Event{Type: SignedIn})
	require.Equal(t, 1, calls)
}
