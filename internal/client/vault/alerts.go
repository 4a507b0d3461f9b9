// Package vault loads the signed-in director's messages and categories and
// turns every failure into an alert the host can show.
package vault

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/legacyvault/internal/client/models"
)

// Alert is a blocking, dismiss-only message for the user.
type Alert struct {
	Title   string
	Message string
}

type Alerter interface {
	Alert(Alert)
}

var (
	AlertSessionExpired  = Alert{Title: "Session expired", Message: "Please sign in again."}
	AlertProfileNotFound = Alert{Title: "Profile", Message: "Profile not found."}
	AlertNoCategory      = Alert{Title: "Categories", Message: "Please select at least one category."}
)

func retryAlert(msg string) Alert {
	return Alert{Title: "Error", Message: msg + " Please try again."}
}

var (
	ErrNoDirector = errors.New("director profile not found")
	ErrNoCategory = errors.New("no category selected")
)

type SessionSource interface {
	CurrentSession(ctx context.Context) (models.Session, error)
}

type DirectorLookup interface {
	DirectorByAuthUserID(ctx context.Context, authUserID string) (*models.Director, error)
}

// MediaResolver turns stored media references into playable URLs.
type MediaResolver interface {
	Resolve(ctx context.Context, mediaURL string) (string, error)
}
