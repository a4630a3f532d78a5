// Package auth verifies the stateless bearer tokens guarding the API.
//
// Tokens are HMAC-signed, time-limited blobs produced by the identity
// service that shares this service's token key. Verification is entirely
// local (no store round-trip); the decoded Actor is injected into the
// request context so every core operation receives an explicit actor rather
// than reading ambient global state.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// Actor is the authenticated identity threaded through handlers.
type Actor struct {
	ID   string `json:"id"`   // employee directory id (hex)
	Name string `json:"name"`
	Role string `json:"role"` // "admin", "planner", "supervisor", "operator"
}

type ctxKey string

const actorKey ctxKey = "actor"

// tokenName scopes the securecookie codec. It is the codec's label, not a
// cookie name on the wire.
const tokenName = "floorhub-token"

// DefaultTokenTTL bounds how old a token may be before verification fails.
const DefaultTokenTTL = 12 * time.Hour

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrBadToken     = errors.New("invalid or expired token")
)

// TokenManager signs and verifies bearer tokens.
type TokenManager struct {
	codec *securecookie.SecureCookie
	log   *zap.Logger
}

// NewTokenManager builds a TokenManager from the shared signing key. Short
// keys are rejected to catch default dev config reaching production.
func NewTokenManager(key string, ttl time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if len(key) < 32 {
		return nil, errors.New("auth token key must be at least 32 bytes")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	codec := securecookie.New([]byte(key), nil)
	codec.MaxAge(int(ttl.Seconds()))
	return &TokenManager{codec: codec, log: logger}, nil
}

// Issue signs an actor into a bearer token. Issuance normally lives in the
// identity service; this is exposed for tests and operational tooling.
func (tm *TokenManager) Issue(a Actor) (string, error) {
	return tm.codec.Encode(tokenName, a)
}

// Verify decodes and validates a bearer token.
func (tm *TokenManager) Verify(token string) (Actor, error) {
	var a Actor
	if err := tm.codec.Decode(tokenName, token, &a); err != nil {
		return Actor{}, ErrBadToken
	}
	if a.ID == "" {
		return Actor{}, ErrBadToken
	}
	return a, nil
}

// RequireToken rejects requests without a valid "Authorization: Bearer …"
// header and injects the Actor into the request context.
func (tm *TokenManager) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			unauthorized(w)
			return
		}
		actor, err := tm.Verify(token)
		if err != nil {
			if tm.log != nil {
				tm.log.Warn("token verification failed", zap.String("path", r.URL.Path))
			}
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", ErrMissingToken
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", ErrBadToken
	}
	token := strings.TrimSpace(h[len(prefix):])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"authentication required","error":"authentication required"}`))
}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

// ActorFrom returns the actor stored in the context and whether one exists.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey).(Actor)
	return a, ok
}

// WithTestActor attaches an actor to a request for handler tests.
func WithTestActor(r *http.Request, a Actor) *http.Request {
	return r.WithContext(WithActor(r.Context(), a))
}
