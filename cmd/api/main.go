package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/internal/api"
	"github.com/vfg2006/campaign-engine/internal/api/handler"
	"github.com/vfg2006/campaign-engine/internal/app"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/internal/usecases/authenticating"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar a aplicação")
	}
	defer application.Close()

	authenticator, err := authenticating.NewService(cfg.Auth.Secret, application.Clock)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a autenticação")
	}

	// Inicia os agendadores em background
	jobs := application.Schedulers()
	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := jobs[name].Start(ctx); err != nil {
			logrus.WithError(err).WithField("job", name).Error("Erro ao iniciar o agendador")
			continue
		}
		logrus.WithField("job", name).Info("Agendador iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Campaigns:     application.Campaigns,
		Authenticator: authenticator,
		CronJobs:      jobs,
		Health:        healthChecks(application),
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func healthChecks(application *app.App) map[string]handler.Pinger {
	checks := map[string]handler.Pinger{
		"postgres":   application.DB,
		"read_model": application.ReadPool,
	}
	if application.Redis != nil {
		checks["redis"] = handler.PingerFunc(func(ctx context.Context) error {
			return application.Redis.Ping(ctx).Err()
		})
	}
	return checks
}
