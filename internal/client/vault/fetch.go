package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/legacyvault/internal/client/client"
	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

// base holds what every fetcher needs to get from "a user tapped" to "a
// query can be issued".
type base struct {
	sessions  SessionSource
	directors DirectorLookup
	alerts    Alerter
	logger    logging.Logger
}

func (b *base) session(ctx context.Context) (models.Session, error) {
	sess, err := b.sessions.CurrentSession(ctx)
	if err != nil || !sess.Valid() {
		b.logger.Debug(ctx, "fetch without session", "error", err)
		b.alerts.Alert(AlertSessionExpired)
		if err == nil {
			err = errors.New("incomplete session")
		}
		return models.Session{}, fmt.Errorf("session: %w", err)
	}
	return sess, nil
}

// director resolves the profile of the signed-in user. A definite
// not-found alerts "profile not found"; any other failure is retryable.
func (b *base) director(ctx context.Context, retryMsg string) (*models.Director, error) {
	sess, err := b.session(ctx)
	if err != nil {
		return nil, err
	}

	d, err := b.directors.DirectorByAuthUserID(ctx, sess.User.ID)
	switch {
	case errors.Is(err, client.ErrNotFound):
		b.alerts.Alert(AlertProfileNotFound)
		return nil, ErrNoDirector
	case err != nil:
		b.logger.Error(ctx, "director lookup failed", "kind", client.KindOf(err), "error", err)
		b.alerts.Alert(retryAlert(retryMsg))
		return nil, fmt.Errorf("director: %w", err)
	case d == nil:
		b.alerts.Alert(AlertProfileNotFound)
		return nil, ErrNoDirector
	}
	return d, nil
}
