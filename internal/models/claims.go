package models

import "github.com/golang-jwt/jwt"

// Claims is the access-token payload. UserID doubles as the document id in
// the users collection.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}
