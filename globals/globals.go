package globals

import "os"

var JwtSecret = []byte(envOr("JWT_SECRET", "cityscout_dev_secret"))

// Context keys
type ContextKey string

const SessionIDKey ContextKey = "sessionId"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
