// Package app monta as dependências compartilhadas pelo servidor HTTP e pela CLI de lotes
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-engine/infrastructure/database/redis"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/google"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/linkedin"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/meta"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/tiktok"
	"github.com/vfg2006/campaign-engine/infrastructure/lock"
	"github.com/vfg2006/campaign-engine/infrastructure/notification"
	"github.com/vfg2006/campaign-engine/infrastructure/readmodel"
	"github.com/vfg2006/campaign-engine/infrastructure/repository"
	"github.com/vfg2006/campaign-engine/internal/config"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/scheduler"
	"github.com/vfg2006/campaign-engine/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-engine/internal/usecases/converting"
	"github.com/vfg2006/campaign-engine/internal/usecases/insighting"
	"github.com/vfg2006/campaign-engine/internal/usecases/optimizing"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

type App struct {
	Config *config.Config
	Clock  utils.Clock

	DB       *postgres.Connection
	ReadPool *pgxpool.Pool
	Redis    *goredis.Client

	Repositories campaigning.Repositories
	Gateway      platform.Gateway
	Syncer       *insighting.Service
	Campaigns    *campaigning.Service
	Conversions  *converting.Service
}

// New conecta aos bancos, aplica as migrações quando configurado e monta os casos de uso
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Clock: utils.SystemClock()}

	if cfg.Database.RunMigrations {
		if err := postgres.Migrate(cfg.Database.DSN); err != nil {
			return nil, fmt.Errorf("erro ao aplicar migrações: %w", err)
		}
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao PostgreSQL: %w", err)
	}
	a.DB = conn
	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	pool, err := readmodel.NewPool(ctx, cfg.ReadModel)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("erro ao conectar ao banco de leitura: %w", err)
	}
	a.ReadPool = pool
	logrus.Info("Conexão com o banco de leitura estabelecida com sucesso")

	locker, notifier, err := a.coordination(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Repositories = campaigning.Repositories{
		Campaigns:         repository.NewCampaignRepository(conn),
		PlatformCampaigns: repository.NewPlatformCampaignRepository(conn),
		Creatives:         repository.NewCreativeRepository(conn),
		Targetings:        repository.NewTargetingRepository(conn),
		Metrics:           repository.NewMetricRepository(conn),
		OptimizationLogs:  repository.NewOptimizationLogRepository(conn),
		ServiceRequests:   repository.NewServiceRequestRepository(conn),
	}

	accounts := readmodel.NewAdAccountReader(pool)
	a.Gateway = platform.NewGateway(NewRegistry(cfg), accounts, a.Clock)

	a.Syncer = insighting.NewService(
		a.Gateway,
		a.Repositories.Campaigns,
		a.Repositories.PlatformCampaigns,
		a.Repositories.Creatives,
		a.Repositories.Metrics,
		readmodel.NewAttributedOrderReader(pool),
		locker,
		a.Clock,
	)

	optimizer := optimizing.NewOptimizer(
		a.Repositories.PlatformCampaigns,
		a.Repositories.Creatives,
		a.Repositories.Metrics,
		a.Clock,
	)

	a.Campaigns = campaigning.NewService(a.Repositories, a.Gateway, a.Syncer, optimizer, notifier, locker, a.Clock)

	a.Conversions = converting.NewService(
		repository.NewConversionRepository(conn),
		accounts,
		a.Gateway,
		a.Clock,
		converting.Options{
			MaxRetries: cfg.ConversionRetry.MaxRetries,
			RetryDelay: cfg.ConversionRetry.Cooldown,
			BatchSize:  uint64(max(cfg.ConversionRetry.BatchSize, 0)),
		},
	)

	return a, nil
}

// NewRegistry associa cada plataforma ao adaptador da sua rede. Facebook e Instagram compartilham a Meta.
func NewRegistry(cfg *config.Config) *platform.Registry {
	return platform.NewRegistry().
		Register(meta.New(metaclient.NewClient(cfg.Meta)), domain.PlatformFacebook, domain.PlatformInstagram).
		Register(google.New(cfg.Google), domain.PlatformGoogle).
		Register(tiktok.New(cfg.TikTok), domain.PlatformTikTok).
		Register(linkedin.New(cfg.LinkedIn), domain.PlatformLinkedIn)
}

// coordination escolhe lock e notificações distribuídos quando há Redis e as versões locais caso contrário
func (a *App) coordination(ctx context.Context) (lock.Locker, notification.Notifier, error) {
	var notifier notification.Notifier = notification.NewLogNotifier()
	if !a.Config.Notification.Enabled {
		notifier = notification.NopNotifier{}
	}

	if a.Config.Redis.URL == "" {
		logrus.Warn("REDIS_URL não configurada, usando lock local")
		return lock.NewLocalLocker(), notifier, nil
	}

	client, err := redis.NewClient(ctx, a.Config.Redis)
	if err != nil {
		return nil, nil, err
	}
	a.Redis = client

	if a.Config.Notification.Enabled {
		notifier = notification.NewRedisNotifier(client, a.Config.Redis.NotificationChannel)
	}

	return lock.NewRedisLocker(client, a.Config.Redis.LockTTL, a.Config.Redis.LockRetryInterval), notifier, nil
}

// Schedulers cria os agendadores indexados pelo nome usado nas rotas de cron
func (a *App) Schedulers() map[string]scheduler.Job {
	return map[string]scheduler.Job{
		scheduler.JobCampaignOptimization: scheduler.NewCampaignOptimizationService(a.Campaigns, a.Config, a.Clock),
		scheduler.JobMetricsSync:          scheduler.NewMetricsSyncService(a.Repositories.Campaigns, a.Syncer, a.Config, a.Clock),
		scheduler.JobConversionRetry:      scheduler.NewConversionRetryService(a.Conversions, a.Config, a.Clock),
	}
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar o cliente Redis")
		}
	}
	if a.ReadPool != nil {
		a.ReadPool.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar a conexão com PostgreSQL")
		}
	}
}
