package globals

import (
	"context"
	"os"
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var (
	JwtSecret = []byte(getenv("JWT_SECRET", "dev-only-secret"))
)

var Ctx = context.Background()

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
