package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pkordes/catering-booking/internal/domain"
)

// Claims are the JWT claims issued by the identity provider.
// Subject carries the user id.
type Claims struct {
	Name string      `json:"name,omitempty"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller placed in ctx by Authenticate or
// OptionalAuth. It is the zero (anonymous) Identity if there is none.
func IdentityFrom(ctx context.Context) domain.Identity {
	id, _ := ctx.Value(identityKey{}).(domain.Identity)
	return id
}

// Authenticate returns a middleware that requires a valid HS256 bearer token
// signed with secret. Missing or invalid tokens get 401.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return authenticate([]byte(secret), true)
}

// OptionalAuth is Authenticate for routes anonymous callers may use.
// A request without an Authorization header passes through anonymously, but
// a present and invalid token is still rejected.
func OptionalAuth(secret string) func(http.Handler) http.Handler {
	return authenticate([]byte(secret), false)
}

func authenticate(secret []byte, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" && !required {
				next.ServeHTTP(w, r)
				return
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}
			id, err := ParseToken(secret, raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// ParseToken validates raw and returns the identity it carries.
// The token must be HS256, unexpired, and name a subject and a known role.
func ParseToken(secret []byte, raw string) (domain.Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Identity{}, err
	}
	if claims.Subject == "" {
		return domain.Identity{}, jwt.ErrTokenInvalidSubject
	}
	if !claims.Role.Valid() {
		return domain.Identity{}, jwt.ErrTokenInvalidClaims
	}
	return domain.Identity{UserID: claims.Subject, DisplayName: claims.Name, Role: claims.Role}, nil
}

// RequireRole returns a middleware that only admits callers with one of roles.
// Anonymous callers get 401 and other roles get 403.
// Wire it after Authenticate.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFrom(r.Context())
			if id.Anonymous() {
				writeError(w, http.StatusUnauthorized, "unauthorized", "sign in required")
				return
			}
			if !slices.Contains(roles, id.Role) {
				writeError(w, http.StatusForbidden, "forbidden", "your role cannot perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
