package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-engine/internal/api/handler/router"
	"github.com/vfg2006/campaign-engine/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-engine/pkg/middleware"
)

func Healthcheck(dependencies map[string]Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(dependencies),
		},
	}
}

func Campaigns(service campaigning.CampaignManager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodPost,
			Handler:     CreateCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.CanManage()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodGet,
			Handler:     GetCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/duplicate",
			Method:      http.MethodPost,
			Handler:     DuplicateCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.CanManage()},
		},
		{
			Path:        "/v1/campaigns/:id/launch",
			Method:      http.MethodPost,
			Handler:     LaunchCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.CanManage()},
		},
		{
			Path:        "/v1/campaigns/:id/pause",
			Method:      http.MethodPost,
			Handler:     PauseCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.CanManage()},
		},
		{
			Path:        "/v1/campaigns/:id/resume",
			Method:      http.MethodPost,
			Handler:     ResumeCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.CanManage()},
		},
		{
			Path:        "/v1/campaigns/:id/complete",
			Method:      http.MethodPost,
			Handler:     CompleteCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.CanManage()},
		},
		{
			Path:        "/v1/campaigns/:id/sync",
			Method:      http.MethodPost,
			Handler:     SyncCampaignMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.CanManage()},
		},
		{
			Path:        "/v1/campaigns/:id/metrics",
			Method:      http.MethodGet,
			Handler:     ListCampaignMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/optimization-logs",
			Method:      http.MethodGet,
			Handler:     ListOptimizationLogs(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/jobs/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
