package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger é qualquer dependência que o healthcheck consegue sondar
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

func HealthcheckHandler(dependencies map[string]Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(dependencies))
		for name, dep := range dependencies {
			if err := dep.Ping(ctx); err != nil {
				logrus.WithFields(logrus.Fields{"dependency": name, "error": err}).Warn("Healthcheck com dependência indisponível")
				checks[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "up"
		}

		writeJSON(w, r, status, map[string]any{
			"time":   time.Now().UTC().Format(time.RFC3339),
			"checks": checks,
		})
	})
}
