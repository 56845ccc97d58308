package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the only failure ParseToken reports. Expired, malformed
// and badly signed tokens are deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenCodec issues and verifies the HS256 access tokens used for API auth.
type TokenCodec struct {
	secret []byte
	expiry time.Duration
}

func NewTokenCodec(secret string, expiry time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), expiry: expiry}
}

// IssueToken signs a token for userID. A zero ttl falls back to the
// configured default expiry; a negative ttl yields an already-expired token.
func (tc *TokenCodec) IssueToken(userID uint, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = tc.expiry
	}
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// ParseToken verifies signature and expiry and returns the subject user id.
func (tc *TokenCodec) ParseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tc.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
