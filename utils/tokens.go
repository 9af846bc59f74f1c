package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"bnbBack/internal/models"
)

type Manager struct {
	signingKey string
}

func NewManager(signingKey string) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}

	return &Manager{signingKey: signingKey}, nil
}

// NewAccessToken issues an HS256 token carrying the owner id.
func (m *Manager) NewAccessToken(ownerID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		OwnerID: ownerID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.signingKey))
}

// ParseOwnerID validates the token and returns the owner id it carries.
func (m *Manager) ParseOwnerID(accessToken string) (int, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.signingKey), nil
	})
	if err != nil || !token.Valid {
		return 0, models.ErrInvalidToken
	}
	if claims.OwnerID <= 0 {
		return 0, models.ErrInvalidToken
	}
	return claims.OwnerID, nil
}
