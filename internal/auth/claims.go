package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims the platform issues for a user session. The
// subject is the user's 24-hex id. SecondFactor reports whether the session
// passed second-factor authentication; a token without the claim counts as
// not authenticated, never as authenticated.
type Claims struct {
	// Name is the display name of the user.
	Name string `json:"name,omitempty"`
	// Email is the user's login email.
	Email string `json:"email,omitempty"`
	// Refresh marks refresh tokens, which are not accepted on API routes.
	Refresh bool `json:"refresh,omitempty"`
	// SecondFactor reports completed second-factor authentication.
	SecondFactor bool `json:"isSecondFactorAuthenticated,omitempty"`

	jwt.RegisteredClaims
}

// ParseToken verifies an HS256 signed token and returns its claims. Any
// signature, method or registered-claim failure is reported as
// ErrInvalidToken without detail leaking to the caller.
func ParseToken(token, secret string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || claims.Refresh {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateToken signs an HS256 token for the given user id. Used by the
// seeding command and by tests; the platform's login service issues
// production tokens.
func GenerateToken(userID, secret string, secondFactor bool, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		SecondFactor: secondFactor,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
