package handler

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/scheduler"
	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/middleware"
)

// CronJobTypeAll dispara todas as rotinas de uma vez
const CronJobTypeAll = "all"

// CronJobServices são as rotinas agendadas indexadas pelo nome usado na URL
type CronJobServices map[string]scheduler.Job

func (s CronJobServices) names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunCronJob executa manualmente uma rotina agendada
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.ClaimsFromContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		var targets []string
		switch {
		case cronType == CronJobTypeAll:
			targets = services.names()
		case services[cronType] != nil:
			targets = []string{cronType}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido", map[string]any{
				"accepted": append(services.names(), CronJobTypeAll),
			})
			return
		}

		started := make([]string, 0, len(targets))
		skipped := make([]string, 0)
		for _, name := range targets {
			if err := services[name].TriggerManualSync(r.Context()); err != nil {
				if len(targets) == 1 {
					writeUseCaseError(w, r, err)
					return
				}
				skipped = append(skipped, name)
				continue
			}
			started = append(started, name)
		}

		log.Entry(r.Context()).WithFields(logrus.Fields{
			"type":    cronType,
			"started": started,
			"skipped": skipped,
			"user_id": claims.UserID,
		}).Info("Cron job disparada manualmente")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
			"skipped": skipped,
		})
	})
}

// GetCronStatus retorna o status das rotinas agendadas
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
