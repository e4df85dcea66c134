package middleware

import (
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
)

// Papéis dos operadores
const (
	RoleAdmin   = 1 // acesso a todos os tenants e às rotinas agendadas
	RoleManager = 2 // cria, lança e altera campanhas do próprio tenant
	RoleViewer  = 3 // apenas leitura
)

// RoleMiddleware restringe o acesso aos papéis informados
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, userClaims.UserRoleID) {
				logrus.WithFields(logrus.Fields{
					"user_id":   userClaims.UserID,
					"role_id":   userClaims.UserRoleID,
					"tenant_id": userClaims.TenantID,
				}).Warning("Acesso negado")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleAdmin})
}

// CanManage permite administradores e gestores de campanha
func CanManage() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleAdmin, RoleManager})
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleAdmin, RoleManager, RoleViewer})
}
