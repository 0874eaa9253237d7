package utils

// AuthCachePrefix is the prefix used for Redis role cache keys.
const AuthCachePrefix = "auth:role:"

// StatsCachePrefix is the prefix used for cached per-worker booking stats.
const StatsCachePrefix = "stats:"

// ContextLoggerKey and ContextPrincipalKey are gin context keys.
const (
	ContextLoggerKey    = "logger"
	ContextPrincipalKey = "principal"
)
