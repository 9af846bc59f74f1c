package models

import "github.com/golang-jwt/jwt"

// Claims is the bearer token payload. OwnerID identifies the authenticated
// owner creating listings.
type Claims struct {
	OwnerID int `json:"id"`
	jwt.StandardClaims
}
