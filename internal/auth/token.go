package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

// CookieName is the cookie carrying the session token.
const CookieName = "SESSION"

const issuer = "association-registrations"

// ErrInvalidToken is returned for tokens that fail verification.
var ErrInvalidToken = errors.New("invalid session token")

type sessionClaims struct {
	Name       string                 `json:"name"`
	Membership model.MembershipStatus `json:"membership"`
	Roles      []Role                 `json:"roles,omitempty"`
	Committees []CommitteeMembership  `json:"committees,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs s as an HS256 session token valid for ttl.
func IssueToken(secret []byte, s *Session, ttl time.Duration, now time.Time) (string, error) {
	claims := sessionClaims{
		Name:       s.Name,
		Membership: s.Membership,
		Roles:      s.Roles,
		Committees: s.Committees,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies raw and returns the session it carries.
func ParseToken(secret []byte, raw string) (*Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}
	return &Session{
		UserID:     userID,
		Name:       claims.Name,
		Membership: claims.Membership,
		Roles:      claims.Roles,
		Committees: claims.Committees,
	}, nil
}

// tokenFromRequest reads the session token from the cookie or bearer header.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// Middleware verifies the session token, if any, and stores the session in the
// request context. Requests without a token continue anonymously; requests
// with an invalid token are rejected.
func Middleware(secret []byte, onInvalid func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			s, err := ParseToken(secret, raw)
			if err != nil {
				onInvalid(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
