package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são as informações do operador autenticado carregadas no token JWT
type Claims struct {
	UserID     string `json:"user_id"`
	UserEmail  string `json:"user_email"`
	UserRoleID int    `json:"user_role_id"`
	TenantID   string `json:"tenant_id"`
	jwt.RegisteredClaims
}
