package session

import "github.com/dmitrijs2005/legacyvault/internal/client/models"

type Status int

const (
	Initializing Status = iota
	Authenticated
	Unauthenticated
)

func (s Status) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the manager. It is replaced as a whole.
type State struct {
	Status  Status
	Session models.Session
}

// Loading is true only until the first CheckAuth finishes.
func (s State) Loading() bool {
	return s.Status == Initializing
}
