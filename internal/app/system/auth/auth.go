// Package auth issues and validates the bearer tokens the API accepts.
//
// The HTTP layer hands engines an already-authenticated user id; this
// package is that boundary. Tokens are HS256 JWTs carrying the user's id
// and roles.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const userContextKey contextKey = "authUser"

// Claims is the JWT payload for an authenticated user.
type Claims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates bearer tokens and injects the caller into request
// context.
type Verifier struct {
	secret []byte
}

// NewVerifier constructs a Verifier with the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// GenerateToken signs a token for the given user. Used by the excluded
// login service and by tests.
func (v *Verifier) GenerateToken(userID primitive.ObjectID, roles []string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID.Hex(),
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// ValidateToken parses and verifies a signed token string.
func (v *Verifier) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// RequireAuth rejects requests without a valid bearer token and stores the
// claims in the request context for downstream handlers.
func (v *Verifier) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		claims, err := v.ValidateToken(parts[1])
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if _, err := primitive.ObjectIDFromHex(claims.UserID); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUserID returns the authenticated caller's id. ok is false when the
// request carries no valid claims (or a malformed id, which fails closed).
func CurrentUserID(r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := r.Context().Value(userContextKey).(*Claims)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// HasRole reports whether the caller's token carries the given role.
// Engines re-check authoritative roles against the users collection; this
// is only for cheap route-level gating.
func HasRole(r *http.Request, role string) bool {
	claims, ok := r.Context().Value(userContextKey).(*Claims)
	if !ok {
		return false
	}
	for _, have := range claims.Roles {
		if have == role {
			return true
		}
	}
	return false
}

// WithTestUser injects claims for the given user directly into the request
// context, bypassing token validation. Test helper only.
func WithTestUser(r *http.Request, userID primitive.ObjectID, roles ...string) *http.Request {
	claims := &Claims{UserID: userID.Hex(), Roles: roles}
	return r.WithContext(context.WithValue(r.Context(), userContextKey, claims))
}
