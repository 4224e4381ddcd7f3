package model

import (
	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	// OperatorKey holds the authenticated operator subject on admin routes.
	OperatorKey ContextKey = "operator"
)

// OperatorClaims are the JWT claims accepted on admin routes.
type OperatorClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
