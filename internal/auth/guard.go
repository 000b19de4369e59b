// Package auth implements the shared-secret credential guard.
//
// One token grants full read/write/delete rights; there are no per-client
// credentials and no rotation. The guard never distinguishes a missing
// token from a wrong one.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const bearerPrefix = "Bearer "

// Guard validates presented tokens against the process-wide secret.
type Guard struct {
	secret string
}

// NewGuard creates a guard for secret.
func NewGuard(secret string) (*Guard, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("secret is required")
	}
	return &Guard{secret: secret}, nil
}

// GenerateSecret returns a fresh random secret for processes started
// without one configured.
func GenerateSecret() string {
	return uuid.NewString()
}

// Authorize reports whether the presented token matches the secret. The
// comparison is constant-time to avoid leaking match length or position.
func (g *Guard) Authorize(token string) bool {
	if g == nil || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(g.secret)) == 1
}

// TokenFromHeader extracts the token from an Authorization header value.
// Anything other than a bearer credential yields an empty token.
func TokenFromHeader(value string) string {
	if !strings.HasPrefix(value, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(value, bearerPrefix))
}
