package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any unusable token: malformed, expired,
// or carrying a bad signature. The cause is deliberately not surfaced.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims is the bearer-token payload: user identity plus standard expiry.
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256-signed bearer tokens.
type Tokens struct {
	secret   []byte
	userTTL  time.Duration
	guestTTL time.Duration
	now      func() time.Time
}

// NewTokens creates a token manager. Registered users get userTTL
// (30 days by convention), guests the shorter guestTTL (7 days).
func NewTokens(secret string, userTTL, guestTTL time.Duration) *Tokens {
	if userTTL <= 0 {
		userTTL = 30 * 24 * time.Hour
	}
	if guestTTL <= 0 {
		guestTTL = 7 * 24 * time.Hour
	}
	return &Tokens{
		secret:   []byte(secret),
		userTTL:  userTTL,
		guestTTL: guestTTL,
		now:      time.Now,
	}
}

// Issue signs a token binding the user id and normalized username.
func (t *Tokens) Issue(userID int64, username string, guest bool) (string, error) {
	ttl := t.userTTL
	if guest {
		ttl = t.guestTTL
	}
	now := t.now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a token, returning its claims.
// All failure modes collapse to ErrInvalidToken.
func (t *Tokens) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
