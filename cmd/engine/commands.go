package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-engine/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-engine/internal/app"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/internal/scheduler"
	"github.com/vfg2006/campaign-engine/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

var (
	campaignID  string
	tokenUser   string
	tokenEmail  string
	tokenTenant string
	tokenRole   int
	tokenTTL    time.Duration
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Executa um ciclo de otimização",
	Long: `Otimiza todas as campanhas ativas com auto_optimize. As campanhas que falharem saem no resultado e
ficam para o próximo ciclo, já que novas tentativas só são agendadas pelo serviço em execução.
Com --campaign otimiza apenas a campanha informada.`,
	RunE: runOptimize,
}

var syncMetricsCmd = &cobra.Command{
	Use:   "sync-metrics",
	Short: "Sincroniza as métricas das campanhas ativas, pausadas e em otimização",
	RunE:  runSyncMetrics,
}

var retryConversionsCmd = &cobra.Command{
	Use:   "retry-conversions",
	Short: "Reenvia as conversões que falharam",
	RunE:  runRetryConversions,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica as migrações pendentes do banco de campanhas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return postgres.Migrate(cfg.Database.DSN)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite um token de acesso para um operador",
	RunE:  runToken,
}

func init() {
	optimizeCmd.Flags().StringVar(&campaignID, "campaign", "", "Otimiza apenas esta campanha")
	syncMetricsCmd.Flags().StringVar(&campaignID, "campaign", "", "Sincroniza apenas esta campanha")

	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "ID do operador")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "E-mail do operador")
	tokenCmd.Flags().StringVar(&tokenTenant, "tenant", "", "Tenant do operador")
	tokenCmd.Flags().IntVar(&tokenRole, "role", 2, "Papel: 1 admin, 2 gestor, 3 leitura")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Validade do token")
	_ = tokenCmd.MarkFlagRequired("user")
	_ = tokenCmd.MarkFlagRequired("tenant")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	ctx, _ = log.WithCorrelationID(ctx)

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if campaignID != "" {
		result, err := application.Campaigns.OptimizeCampaignByID(ctx, campaignID)
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	}

	cycle, err := scheduler.NewCampaignOptimizationService(application.Campaigns, cfg, application.Clock).RunOnce(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, cycle)
}

func runSyncMetrics(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	ctx, _ = log.WithCorrelationID(ctx)

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if campaignID != "" {
		result, err := application.Campaigns.SyncMetrics(ctx, campaignID)
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	}

	cycle, err := scheduler.NewMetricsSyncService(application.Repositories.Campaigns, application.Syncer, cfg, application.Clock).RunOnce(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, cycle)
}

func runRetryConversions(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	ctx, _ = log.WithCorrelationID(ctx)

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	result, err := application.Conversions.RetryFailed(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}

func runToken(cmd *cobra.Command, args []string) error {
	auth, err := authenticating.NewService(cfg.Auth.Secret, utils.SystemClock())
	if err != nil {
		return err
	}

	token, err := auth.IssueToken(domain.Claims{
		UserID:     tokenUser,
		UserEmail:  tokenEmail,
		UserRoleID: tokenRole,
		TenantID:   tokenTenant,
	}, tokenTTL)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   tokenUser,
		"tenant_id": tokenTenant,
		"role_id":   tokenRole,
		"ttl":       tokenTTL,
	}).Info("Token emitido")

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(v))
	return err
}
