// File: utils/constants.go
package utils

// Cookie names shared by the auth handlers and middleware.
const (
	AccessTokenCookie  = "token"
	RefreshTokenCookie = "refresh_token"
)

// BadgeCachePrefix prefixes the Redis keys holding unread notification counts.
const BadgeCachePrefix = "badge:"

// Context keys set by the auth middleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
	ContextEmail  = "email"
)
