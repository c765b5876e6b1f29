package constants

// Session / context keys
const (
	SessionCookieName = "taskflow_session"
	ContextKeyUserID  = "user_id"
)

// Validation bounds
const (
	MinPasswordLength    = 6
	MinNameLength        = 2
	MaxNameLength        = 100
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
