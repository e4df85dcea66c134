package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/campaign-engine/pkg/apiErrors"
	"github.com/vfg2006/campaign-engine/pkg/log"
)

// CorrelationIDHeader é o cabeçalho que propaga o ID de correlação entre serviços
const CorrelationIDHeader = "X-Correlation-ID"

const slowRequestThreshold = 500 * time.Millisecond

type contextKeyActor struct{}

// requestActor é preenchido pelo AuthMiddleware para que o log de conclusão saiba quem fez a requisição
type requestActor struct {
	userID   string
	tenantID string
}

func actorFromContext(ctx context.Context) *requestActor {
	actor, _ := ctx.Value(contextKeyActor{}).(*requestActor)
	return actor
}

func correlationFromRequest(r *http.Request) (context.Context, string) {
	if correlationID := r.Header.Get(CorrelationIDHeader); correlationID != "" {
		return log.WithGivenCorrelationID(r.Context(), correlationID), correlationID
	}
	return log.WithCorrelationID(r.Context())
}

// LoggingMiddleware registra informações sobre cada requisição HTTP
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Reaproveita o ID de correlação enviado pelo cliente ou gera um novo
			ctx, correlationID := correlationFromRequest(r)
			actor := &requestActor{}
			ctx = context.WithValue(ctx, contextKeyActor{}, actor)
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			if !log.IsDevelopment() {
				log.L.WithFields(log.Fields{
					"correlation_id": correlationID,
					"remote_addr":    r.RemoteAddr,
					"method":         r.Method,
					"path":           r.URL.Path,
					"query":          r.URL.RawQuery,
					"user_agent":     r.UserAgent(),
				}).Debug("Requisição iniciada")
			}

			next.ServeHTTP(lrw, r)

			responseTime := time.Since(startTime)
			fields := log.Fields{
				"correlation_id": correlationID,
				"method":         r.Method,
				"path":           r.URL.Path,
				"duration_ms":    responseTime.Milliseconds(),
				"status_code":    lrw.statusCode,
			}
			if actor.userID != "" {
				fields["user_id"] = actor.userID
				fields["tenant_id"] = actor.tenantID
			}
			logger := log.L.WithFields(fields)

			message := fmt.Sprintf("%s %s concluída em %s", r.Method, r.URL.Path, formatDuration(responseTime))
			switch {
			case lrw.statusCode >= 500:
				logger.Error(message)
			case lrw.statusCode >= 400:
				logger.Warn(message)
			default:
				logger.Info(message)
			}

			if responseTime > slowRequestThreshold {
				logger.Warnf("Requisição lenta: %s", responseTime)
			}
		})
	}
}

// formatDuration formata a duração de forma humana
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter captura o status code escrito pelo handler
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{w, http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware registra o panic com a pilha de chamadas e responde com o erro padronizado
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stackTrace := string(stack[:runtime.Stack(stack, false)])

					logger := log.L.WithFields(log.Fields{
						"correlation_id": log.GetCorrelationID(r.Context()),
						"error":          err,
						"method":         r.Method,
						"path":           r.URL.Path,
					})
					logger.Error("Erro não tratado na aplicação")

					if log.IsDevelopment() {
						fmt.Fprintf(os.Stderr, "\n\n=== STACK TRACE ===\n%s\n=================\n\n", stackTrace)
					} else {
						logger.WithField("stack_trace", stackTrace).Error("Stack trace do erro")
					}

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
