package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the payload signed into every access token.
// UserID stays untyped on purpose: tokens minted by older platform services
// carry a numeric id while newer ones carry a string. The decision layer
// normalizes it before anything downstream sees it.
// Role is the legacy singular field, Roles the current plural one; the
// authorization gate folds them into one effective set.
type AuthClaims struct {
	UserID any      `json:"userId,omitempty"`
	Email  string   `json:"email,omitempty"`
	Role   string   `json:"role,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	// Standard claims (exp, iat, nbf, jti) are embedded here
	jwt.RegisteredClaims
}

// AuthUser is the validated identity a trust gate attaches to a request or
// connection. Derived only from a successfully verified token; handlers
// consume this and never see the raw token string.
type AuthUser struct {
	UserID string   `json:"userId"`
	Email  string   `json:"email"`
	Role   string   `json:"role,omitempty"`
	Roles  []string `json:"roles,omitempty"`
}
