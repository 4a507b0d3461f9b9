package common

// Outbound HTTP header names shared by the auth and data clients.
const (
	RequestIDHeaderName     = "X-Request-ID"
	APIKeyHeaderName        = "apikey"
	AuthorizationHeaderName = "Authorization"
)

// Keys of the persisted local auth state.
const (
	TokenStorageKey    = "auth_token"
	UserDataStorageKey = "user_data"
)

// DefaultDisplayName is shown when a director profile carries no first name.
const DefaultDisplayName = "there"
