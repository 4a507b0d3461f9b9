// Package credstore persists the session token and user record on the
// device.
//
// Reads never fail from the caller's point of view: an unreadable value is
// logged and reported as absent. Writes are logged and also returned, so
// sign-in can abort while sign-out carries on.
package credstore

import (
	"context"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
)

// Store is the persistent credential store contract.
type Store interface {
	SetToken(ctx context.Context, token string) error
	GetToken(ctx context.Context) string
	SetUserData(ctx context.Context, user *models.User) error
	GetUserData(ctx context.Context) *models.User
	// SetSession writes token and user together; either both land or neither.
	SetSession(ctx context.Context, user *models.User, token string) error
	ClearAuth(ctx context.Context) error
	// IsAuthenticated reports token presence only; validity is not checked.
	IsAuthenticated(ctx context.Context) bool
}
