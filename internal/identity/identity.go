// Package identity resolves caller authentication tokens to stable
// application user IDs. The bidding engine trusts the ID it is given and does
// not re-verify authentication.
package identity

import (
	"crypto/subtle"
	"errors"
)

// ErrUnknownToken is returned when a token resolves to no user.
var ErrUnknownToken = errors.New("unknown authentication token")

// Resolver maps an opaque token to a user ID.
type Resolver interface {
	Resolve(token string) (string, error)
}

// StaticResolver resolves tokens from a fixed token -> user ID table.
// Suitable for development and tests; production deployments plug in the
// platform's real identity service.
type StaticResolver struct {
	tokens map[string]string
}

// NewStaticResolver creates a resolver over a copy of the given table.
func NewStaticResolver(tokens map[string]string) *StaticResolver {
	copied := make(map[string]string, len(tokens))
	for k, v := range tokens {
		copied[k] = v
	}
	return &StaticResolver{tokens: copied}
}

// Resolve looks the token up with constant-time comparison to prevent timing
// attacks on token values.
func (r *StaticResolver) Resolve(token string) (string, error) {
	for candidate, userID := range r.tokens {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) == 1 {
			return userID, nil
		}
	}
	return "", ErrUnknownToken
}

// PassthroughResolver treats the token itself as the user ID. Used when an
// upstream gateway has already authenticated the request and forwards the
// application user ID directly.
type PassthroughResolver struct{}

func (PassthroughResolver) Resolve(token string) (string, error) {
	if token == "" {
		return "", ErrUnknownToken
	}
	return token, nil
}
