package constants

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Context and session keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyIdentity = "identity"
	SessionCookieName  = "club_session"
)

// Projects
const (
	DefaultRelatedLimit    = 3
	DefaultRejectionReason = "Did not meet community guidelines"
)
