package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/scheduler"
	"github.com/vfg2006/campaign-engine/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Entry(r.Context()).WithField("error", err).Error("Erro ao codificar resposta")
	}
}

// writeUseCaseError traduz os erros dos casos de uso para o formato padronizado da API
func writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	var campaignErr *campaigning.CampaignError
	if errors.As(err, &campaignErr) {
		apiErrors.WriteError(w, campaignErr.Code, campaignErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, platform.ErrUnsupportedPlatform):
		apiErrors.WriteError(w, apiErrors.ErrUnsupportedPlatform, err.Error(), nil)
	case errors.Is(err, scheduler.ErrJobAlreadyRunning):
		apiErrors.WriteError(w, apiErrors.ErrJobAlreadyRunning, err.Error(), nil)
	case errors.Is(err, platform.ErrAccountInactive), errors.Is(err, platform.ErrTokenExpired),
		errors.Is(err, platform.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
	default:
		log.Entry(r.Context()).WithField("error", err).Error("Erro não mapeado no caso de uso")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a requisição", nil)
	}
}

// canAccessTenant libera administradores para qualquer tenant e os demais apenas para o próprio
func canAccessTenant(claims *domain.Claims, tenantID string) bool {
	if claims == nil {
		return false
	}
	return claims.UserRoleID == middleware.RoleAdmin || claims.TenantID == tenantID
}
