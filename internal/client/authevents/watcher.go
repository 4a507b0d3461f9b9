package authevents

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

// SessionSource is the part of the session manager the watcher needs.
type SessionSource interface {
	AccessToken(ctx context.Context) string
	SignOut(ctx context.Context)
}

// ExpiryWatcher signs the user out once the stored token's exp claim has
// passed. The signature is not verified here; the server remains the
// authority, this only avoids sending a token that is certainly stale.
type ExpiryWatcher struct {
	source   SessionSource
	interval time.Duration
	logger   logging.Logger
	now      func() time.Time
}

// DefaultInterval replaces a non-positive check interval.
const DefaultInterval = 30 * time.Second

func NewExpiryWatcher(source SessionSource, interval time.Duration, logger logging.Logger) *ExpiryWatcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &ExpiryWatcher{
		source:   source,
		interval: interval,
		logger:   logger.With("component", "expiry_watcher"),
		now:      time.Now,
	}
}

// Run checks the token on every tick until ctx is done.
func (w *ExpiryWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check performs a single inspection and reports whether it signed out.
func (w *ExpiryWatcher) Check(ctx context.Context) bool {
	token := w.source.AccessToken(ctx)
	if token == "" {
		return false
	}

	exp, ok := ExpiresAt(token)
	if !ok || w.now().Before(exp) {
		return false
	}

	w.logger.Info(ctx, "session token expired, signing out", "expired_at", exp)
	w.source.SignOut(ctx)
	return true
}

// ExpiresAt returns the exp claim of a JWT. Opaque tokens and JWTs without
// exp report false.
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
