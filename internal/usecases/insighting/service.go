// Package insighting sincroniza as métricas das plataformas, consolida por dia e reconcilia a receita
// com os pedidos atribuídos pelo checkout
package insighting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/infrastructure/lock"
	"github.com/vfg2006/campaign-engine/infrastructure/readmodel"
	"github.com/vfg2006/campaign-engine/infrastructure/repository"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

var ErrCampaignRequired = errors.New("campaign is required")

type Service struct {
	gateway           platform.Gateway
	campaigns         repository.CampaignRepository
	platformCampaigns repository.PlatformCampaignRepository
	creatives         repository.CreativeRepository
	metrics           repository.MetricRepository
	orders            readmodel.AttributedOrderReader
	locker            lock.Locker
	clock             utils.Clock
}

func NewService(
	gateway platform.Gateway,
	campaigns repository.CampaignRepository,
	platformCampaigns repository.PlatformCampaignRepository,
	creatives repository.CreativeRepository,
	metrics repository.MetricRepository,
	orders readmodel.AttributedOrderReader,
	locker lock.Locker,
	clock utils.Clock,
) *Service {
	return &Service{
		gateway:           gateway,
		campaigns:         campaigns,
		platformCampaigns: platformCampaigns,
		creatives:         creatives,
		metrics:           metrics,
		orders:            orders,
		locker:            locker,
		clock:             clock,
	}
}

// SyncCampaign busca os insights de cada campanha de plataforma, grava as linhas diárias e recalcula
// os totais das campanhas de plataforma, dos criativos, das linhas consolidadas e da campanha, nessa ordem.
// Falha em uma plataforma não interrompe as demais.
func (s *Service) SyncCampaign(ctx context.Context, campaign *domain.Campaign, opts SyncOptions) (*SyncResult, error) {
	if campaign == nil {
		return nil, ErrCampaignRequired
	}

	logger := log.Entry(ctx).WithField("campaign_id", campaign.ID)

	all, err := s.platformCampaigns.ListByCampaign(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar campanhas de plataforma: %w", err)
	}

	result := &SyncResult{CampaignID: campaign.ID}
	now := s.clock.Now()

	for _, pc := range all {
		if !shouldSync(pc, opts) {
			continue
		}
		result.PlatformCampaigns++

		rows, err := s.syncPlatformCampaign(ctx, campaign, pc, now)
		result.Rows += rows
		if err != nil {
			result.Failed++
			logger.WithFields(logrus.Fields{
				"platform":             pc.Platform,
				"platform_campaign_id": pc.ID,
			}).WithError(err).Warn("Erro ao sincronizar métricas da campanha de plataforma")
			continue
		}
		result.Synced++
	}

	if err := s.updateCreativeTotals(ctx, campaign.ID, all); err != nil {
		return result, err
	}

	aggregated, reconciled, err := s.rebuildAggregated(ctx, campaign)
	if err != nil {
		return result, err
	}
	result.AggregatedRows = aggregated
	result.ReconciledDays = reconciled

	if err := s.updateCampaignTotals(ctx, campaign); err != nil {
		return result, err
	}

	logger.WithFields(logrus.Fields{
		"platform_campaigns": result.PlatformCampaigns,
		"synced":             result.Synced,
		"failed":             result.Failed,
		"rows":               result.Rows,
		"reconciled_days":    result.ReconciledDays,
	}).Info("Sincronização de métricas da campanha concluída")

	return result, nil
}

func shouldSync(pc *domain.PlatformCampaign, opts SyncOptions) bool {
	if !pc.IsMaterialized() {
		return false
	}
	switch pc.Status {
	case domain.PlatformCampaignActive:
		return true
	case domain.PlatformCampaignPaused, domain.PlatformCampaignEnded:
		return opts.IncludeStopped
	}
	return false
}

// SyncWindow devolve o período de busca: desde um dia antes da última sincronização ou, na primeira vez,
// desde o início da campanha
func SyncWindow(campaign *domain.Campaign, pc *domain.PlatformCampaign, now time.Time) (time.Time, time.Time) {
	to := domain.TruncateDay(now)

	from := domain.TruncateDay(campaign.StartDate)
	if pc.LastSyncedAt != nil {
		from = domain.TruncateDay(pc.LastSyncedAt.AddDate(0, 0, -1))
	}
	if from.After(to) {
		from = to
	}

	return from, to
}

// syncPlatformCampaign roda sob o lock da campanha de plataforma. Linhas parciais devolvidas junto de
// um erro ainda são gravadas.
func (s *Service) syncPlatformCampaign(ctx context.Context, campaign *domain.Campaign, pc *domain.PlatformCampaign, now time.Time) (int, error) {
	written := 0

	err := lock.WithLock(ctx, s.locker, lock.PlatformCampaignKey(pc.ID), func() error {
		from, to := SyncWindow(campaign, pc, now)

		rows, fetchErr := s.gateway.FetchInsights(ctx, pc, from, to)
		for _, row := range rows {
			metric := domain.NewMetric(campaign.ID, pc.ID, pc.Platform, pc.Variant, row.Date, row.MetricTotals, row.Frequency)
			if err := s.metrics.Upsert(ctx, metric); err != nil {
				return fmt.Errorf("erro ao gravar métrica de %s: %w", row.Date.Format(time.DateOnly), err)
			}
			written++
		}
		if fetchErr != nil && len(rows) == 0 {
			return fetchErr
		}

		history, err := s.metrics.List(ctx, campaign.ID, domain.MetricFilters{PlatformCampaignID: &pc.ID})
		if err != nil {
			return fmt.Errorf("erro ao listar métricas da campanha de plataforma: %w", err)
		}

		totals, frequency := sumMetrics(history)
		derived := totals.Derive()
		if err := s.platformCampaigns.UpdateTotals(ctx, pc.ID, totals, derived, frequency, now); err != nil {
			return fmt.Errorf("erro ao atualizar totais da campanha de plataforma: %w", err)
		}

		pc.Totals = totals
		pc.Derived = derived
		pc.Frequency = frequency
		synced := now
		pc.LastSyncedAt = &synced

		return fetchErr
	})

	return written, err
}

// sumMetrics soma as linhas diárias. A frequência é a reportada pela plataforma na linha mais recente que
// a trouxe. Sem nenhuma frequência reportada, cai para impressões por alcance somado.
func sumMetrics(rows []*domain.Metric) (domain.MetricTotals, float64) {
	var (
		totals     domain.MetricTotals
		lastFreq   float64
		lastFreqAt time.Time
	)

	for _, row := range rows {
		totals = totals.Add(row.MetricTotals)
		if row.Frequency > 0 && !row.Date.Before(lastFreqAt) {
			lastFreq = row.Frequency
			lastFreqAt = row.Date
		}
	}

	if lastFreq > 0 {
		return totals, lastFreq
	}
	return totals, utils.RoundWithFourDecimalPlace(totals.AverageFrequency())
}

// updateCreativeTotals recalcula os totais de cada criativo a partir das suas campanhas de plataforma
func (s *Service) updateCreativeTotals(ctx context.Context, campaignID string, pcs []*domain.PlatformCampaign) error {
	byCreative := make(map[string]domain.MetricTotals)
	order := make([]string, 0)

	for _, pc := range pcs {
		if pc.CreativeID == "" {
			continue
		}
		if _, ok := byCreative[pc.CreativeID]; !ok {
			order = append(order, pc.CreativeID)
		}
		byCreative[pc.CreativeID] = byCreative[pc.CreativeID].Add(pc.Totals)
	}

	for _, creativeID := range order {
		totals := byCreative[creativeID]
		err := s.creatives.UpdateMetrics(ctx, creativeID, repository.CreativeMetrics{
			Impressions: totals.Impressions,
			Clicks:      totals.Clicks,
			CTR:         utils.RoundWithFourDecimalPlace(totals.Derive().CTR),
			Spend:       totals.Spend,
			Conversions: totals.Conversions,
		})
		if err != nil {
			return fmt.Errorf("erro ao atualizar totais do criativo %s da campanha %s: %w", creativeID, campaignID, err)
		}
	}

	return nil
}

// rebuildAggregated regrava a linha consolidada de cada dia somando as plataformas e sobrescreve a
// receita com os pedidos atribuídos do mesmo dia
func (s *Service) rebuildAggregated(ctx context.Context, campaign *domain.Campaign) (int, int, error) {
	rows, err := s.metrics.List(ctx, campaign.ID, domain.MetricFilters{ExcludeAggregated: true})
	if err != nil {
		return 0, 0, fmt.Errorf("erro ao listar métricas por plataforma: %w", err)
	}

	byDate := make(map[time.Time]domain.MetricTotals)
	for _, row := range rows {
		day := domain.TruncateDay(row.Date)
		byDate[day] = byDate[day].Add(row.MetricTotals)
	}

	attributed, err := s.attributedRevenue(ctx, campaign)
	if err != nil {
		return 0, 0, err
	}
	for day := range attributed {
		if _, ok := byDate[day]; !ok {
			byDate[day] = domain.MetricTotals{}
		}
	}

	days := make([]time.Time, 0, len(byDate))
	for day := range byDate {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	reconciled := 0
	for _, day := range days {
		totals := byDate[day]
		revenue, ok := attributed[day]
		if ok {
			reconciled++
		}

		metric := AggregatedMetric(campaign.ID, day, totals, revenue)
		if err := s.metrics.Upsert(ctx, metric); err != nil {
			return 0, reconciled, fmt.Errorf("erro ao gravar métrica consolidada de %s: %w", day.Format(time.DateOnly), err)
		}
	}

	return len(days), reconciled, nil
}

// AggregatedMetric monta a linha consolidada do dia. Com receita atribuída, receita, ingressos e clientes
// novos vêm dos pedidos e o CAC passa a ser gasto por cliente novo.
func AggregatedMetric(campaignID string, day time.Time, totals domain.MetricTotals, attributed *domain.AttributedRevenue) *domain.Metric {
	if attributed != nil {
		totals.Revenue = attributed.Revenue
		totals.TicketsSold = attributed.TicketsSold
		totals.NewCustomers = attributed.NewCustomers
	}

	metric := domain.NewMetric(campaignID, "", domain.PlatformAggregated, domain.VariantNone, day, totals, utils.RoundWithFourDecimalPlace(totals.AverageFrequency()))
	if attributed != nil {
		metric.ROAS = domain.SafeDivide(totals.Revenue, totals.Spend)
		metric.CAC = domain.SafeDivide(totals.Spend, float64(totals.NewCustomers))
	}

	return metric
}

func (s *Service) attributedRevenue(ctx context.Context, campaign *domain.Campaign) (map[time.Time]*domain.AttributedRevenue, error) {
	if campaign.UTM.Campaign == "" && campaign.UTM.Source == "" {
		return map[time.Time]*domain.AttributedRevenue{}, nil
	}

	start := domain.TruncateDay(campaign.StartDate)
	orders, err := s.orders.ListAttributedOrders(ctx, domain.AttributedOrderFilters{
		EventID:     campaign.EventID,
		UTMCampaign: campaign.UTM.Campaign,
		UTMSource:   campaign.UTM.Source,
		StartDate:   &start,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos atribuídos: %w", err)
	}

	return domain.GroupAttributedOrders(orders), nil
}

// updateCampaignTotals recalcula os totais da campanha a partir das linhas consolidadas
func (s *Service) updateCampaignTotals(ctx context.Context, campaign *domain.Campaign) error {
	aggregatedPlatform := domain.PlatformAggregated
	rows, err := s.metrics.List(ctx, campaign.ID, domain.MetricFilters{Platform: &aggregatedPlatform})
	if err != nil {
		return fmt.Errorf("erro ao listar métricas consolidadas: %w", err)
	}

	totals, _ := sumMetrics(rows)
	derived := totals.Derive()
	if totals.NewCustomers > 0 {
		derived.CAC = domain.SafeDivide(totals.Spend, float64(totals.NewCustomers))
	}
	spent := utils.RoundWithTwoDecimalPlace(totals.Spend)

	if err := s.campaigns.UpdateTotals(ctx, campaign.ID, spent, totals, derived); err != nil {
		return fmt.Errorf("erro ao atualizar totais da campanha: %w", err)
	}

	campaign.Totals = totals
	campaign.Derived = derived
	campaign.SpentBudget = spent

	return nil
}
