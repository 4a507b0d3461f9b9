package client

import (
	"context"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
)

// DataClient is the BaaS data contract. Every call is one cold round trip:
// no caching, paging or retry.
type DataClient interface {
	// DirectorByAuthUserID returns an *Error of KindNotFound when the user
	// has no director profile yet.
	DirectorByAuthUserID(ctx context.Context, authUserID string) (*models.Director, error)
	// MessagesByDirector returns the director's vault, most recent first.
	MessagesByDirector(ctx context.Context, directorID string) ([]models.Message, error)
	Categories(ctx context.Context) ([]models.Category, error)
	// SaveDirectorCategories links categoryIDs to the director. Ids that
	// are already linked are counted as existing, not saved.
	SaveDirectorCategories(ctx context.Context, directorID string, categoryIDs []string) (*models.CategorySaveResult, error)
}

// TokenSource supplies the bearer token of the signed-in user.
type TokenSource interface {
	AccessToken(ctx context.Context) string
}
