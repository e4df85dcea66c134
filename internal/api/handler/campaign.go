package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/middleware"
)

func CreateCampaign(service campaigning.CampaignManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.ClaimsFromContext(r.Context())

		var req domain.CreateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", err.Error())
			return
		}

		// operadores só criam campanhas no próprio tenant
		if claims.UserRoleID != middleware.RoleAdmin || req.TenantID == "" {
			req.TenantID = claims.TenantID
		}

		campaign, err := service.Create(r.Context(), &req)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		log.Entry(r.Context()).WithFields(logrus.Fields{
			"campaign_id": campaign.ID,
			"tenant_id":   campaign.TenantID,
			"user_id":     claims.UserID,
		}).Info("Campanha criada via API")

		writeJSON(w, r, http.StatusCreated, campaign)
	})
}

func GetCampaign(service campaigning.CampaignManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		details, ok := loadAuthorizedCampaign(w, r, service, id)
		if !ok {
			return
		}

		writeJSON(w, r, http.StatusOK, details)
	})
}

func DuplicateCampaign(service campaigning.CampaignManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if _, ok := loadAuthorizedCampaign(w, r, service, id); !ok {
			return
		}

		campaign, err := service.Duplicate(r.Context(), id)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, campaign)
	})
}

func LaunchCampaign(service campaigning.CampaignManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if _, ok := loadAuthorizedCampaign(w, r, service, id); !ok {
			return
		}

		result, err := service.Launch(r.Context(), id)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		if result.Campaign.Status == domain.CampaignStatusFailed {
			apiErrors.WriteError(w, apiErrors.ErrCampaignLaunchFailure, result.Campaign.StatusNote, result.Failures)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	})
}

type lifecycleAction func(service campaigning.CampaignManager, r *http.Request, id string) (*domain.Campaign, error)

func changeCampaignStatus(service campaigning.CampaignManager, action lifecycleAction) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if _, ok := loadAuthorizedCampaign(w, r, service, id); !ok {
			return
		}

		campaign, err := action(service, r, id)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, campaign)
	})
}

func PauseCampaign(service campaigning.CampaignManager) http.Handler {
	return changeCampaignStatus(service, func(s campaigning.CampaignManager, r *http.Request, id string) (*domain.Campaign, error) {
		return s.Pause(r.Context(), id, domain.SourceManual)
	})
}

func ResumeCampaign(service campaigning.CampaignManager) http.Handler {
	return changeCampaignStatus(service, func(s campaigning.CampaignManager, r *http.Request, id string) (*domain.Campaign, error) {
		return s.Resume(r.Context(), id, domain.SourceManual)
	})
}

func CompleteCampaign(service campaigning.CampaignManager) http.Handler {
	return changeCampaignStatus(service, func(s campaigning.CampaignManager, r *http.Request, id string) (*domain.Campaign, error) {
		return s.Complete(r.Context(), id, domain.SourceManual)
	})
}

func SyncCampaignMetrics(service campaigning.CampaignManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if _, ok := loadAuthorizedCampaign(w, r, service, id); !ok {
			return
		}

		result, err := service.SyncMetrics(r.Context(), id)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	})
}

// loadAuthorizedCampaign carrega a campanha e esconde como inexistente a que pertence a outro tenant
func loadAuthorizedCampaign(w http.ResponseWriter, r *http.Request, service campaigning.CampaignManager, id string) (*campaigning.CampaignDetails, bool) {
	details, err := service.Get(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, r, err)
		return nil, false
	}

	claims, _ := middleware.ClaimsFromContext(r.Context())
	if !canAccessTenant(claims, details.Campaign.TenantID) {
		log.Entry(r.Context()).WithFields(logrus.Fields{
			"campaign_id": id,
			"tenant_id":   details.Campaign.TenantID,
		}).Warn("Acesso a campanha de outro tenant negado")
		apiErrors.WriteError(w, apiErrors.ErrCampaignNotFound, "Campanha não encontrada", nil)
		return nil, false
	}

	return details, true
}
