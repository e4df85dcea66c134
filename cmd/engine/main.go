package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/campaign-engine/internal/config"
)

var (
	verbose bool
	timeout time.Duration
	cfg     *config.Config
)

// rootCmd agrupa as execuções avulsas das rotinas do motor de campanhas
var rootCmd = &cobra.Command{
	Use:   "engine",
	Short: "Execuções avulsas do motor de campanhas",
	Long: `Executa uma única vez as rotinas que o servidor agenda: otimização de campanhas,
sincronização de métricas e reenvio de conversões, além das migrações do banco.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})

		loaded, err := config.NewConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		level, err := logrus.ParseLevel(cfg.App.LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		if verbose {
			level = logrus.DebugLevel
		}
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Ativa logs de debug")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Minute, "Tempo máximo da execução")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(syncMetricsCmd)
	rootCmd.AddCommand(retryConversionsCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
}

// commandContext respeita o timeout global e encerra com SIGINT/SIGTERM
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
