package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid instance token")

type InstanceClaims struct {
	jwt.RegisteredClaims
}

// InstanceID returns the subject as a uuid.
func (c *InstanceClaims) InstanceID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

func CreateInstanceToken(instanceID uuid.UUID, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := InstanceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   instanceID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func InstanceClaimsFromToken(tokenStr string, secret []byte) (*InstanceClaims, error) {
	var claims InstanceClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
