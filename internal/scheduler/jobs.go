package scheduler

import "context"

const (
	JobCampaignOptimization = "campaign-optimization"
	JobMetricsSync          = "metrics-sync"
	JobConversionRetry      = "conversion-retry"
)

// Job é o contrato comum dos agendadores, usado pelas rotas administrativas de cron
type Job interface {
	Start(ctx context.Context) error
	TriggerManualSync(ctx context.Context) error
	GetStatus() map[string]any
}

var (
	_ Job = (*CampaignOptimizationService)(nil)
	_ Job = (*MetricsSyncService)(nil)
	_ Job = (*ConversionRetryService)(nil)
)
