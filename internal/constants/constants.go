package constants

// Password rules
const (
	MinPasswordLength = 8
)

// Pagination defaults
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Context keys
const (
	ContextKeyUser   = "current_user"
	ContextKeyUserID = "user_id"
)

// Roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Auth providers
const (
	ProviderGitHub = "github"
)
