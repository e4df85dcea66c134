package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

// ListCampaignMetrics lista as métricas diárias com filtros opcionais de período e plataforma
func ListCampaignMetrics(service campaigning.CampaignManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		query := r.URL.Query()

		startDate, err := utils.ParseDate(query.Get("start_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"campaign_id": id,
				"start_date":  query.Get("start_date"),
				"error":       err.Error(),
			}).Warn("metrics: invalid start_date parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date deve estar no formato AAAA-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(query.Get("end_date"))
		if err != nil {
			logger.WithFields(log.Fields{
				"campaign_id": id,
				"end_date":    query.Get("end_date"),
				"error":       err.Error(),
			}).Warn("metrics: invalid end_date parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date deve estar no formato AAAA-MM-DD", nil)
			return
		}

		filters := domain.MetricFilters{
			StartDate:         startDate,
			EndDate:           endDate,
			ExcludeAggregated: query.Get("exclude_aggregated") == "true",
		}
		if p := query.Get("platform"); p != "" {
			platform := domain.Platform(p)
			if !platform.IsValid() && platform != domain.PlatformAggregated {
				apiErrors.WriteError(w, apiErrors.ErrUnsupportedPlatform, "Plataforma não suportada: "+p, nil)
				return
			}
			filters.Platform = &platform
		}
		if pcID := query.Get("platform_campaign_id"); pcID != "" {
			filters.PlatformCampaignID = &pcID
		}

		if _, ok := loadAuthorizedCampaign(w, r, service, id); !ok {
			return
		}

		metrics, err := service.ListMetrics(r.Context(), id, filters)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, metrics)
	})
}

func ListOptimizationLogs(service campaigning.CampaignManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var limit uint64
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		if _, ok := loadAuthorizedCampaign(w, r, service, id); !ok {
			return
		}

		logs, err := service.ListOptimizationLogs(r.Context(), id, limit)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, logs)
	})
}
