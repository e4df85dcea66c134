package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/api/handler"
	"github.com/vfg2006/campaign-engine/internal/api/handler/router"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-engine/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-engine/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Dependencies reúne o que as rotas da API precisam
type Dependencies struct {
	Campaigns     campaigning.CampaignManager
	Authenticator authenticating.Authenticator
	CronJobs      handler.CronJobServices
	Health        map[string]handler.Pinger
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, deps),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// NewHandler monta as rotas com a cadeia de middlewares
func NewHandler(config *config.Config, deps Dependencies) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.Health)...),
		router.WithRoutes(handler.Campaigns(deps.Campaigns)...),
		router.WithRoutes(handler.CronJobs(deps.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.CorsAllowedOrigins),
		middleware.AuthMiddleware(deps.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	// Define timeout para desligamento
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Log de início do desligamento
	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
