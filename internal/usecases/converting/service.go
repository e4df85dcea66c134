package converting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/infrastructure/integrator/platform"
	"github.com/vfg2006/campaign-engine/infrastructure/readmodel"
	"github.com/vfg2006/campaign-engine/infrastructure/repository"
	"github.com/vfg2006/campaign-engine/internal/domain"
	"github.com/vfg2006/campaign-engine/pkg/log"
	"github.com/vfg2006/campaign-engine/pkg/utils"
)

const (
	DefaultMaxRetries = 5
	DefaultRetryDelay = 5 * time.Minute
	DefaultBatchSize  = 100
)

var ErrReadAccount = errors.New("erro ao consultar conta de anúncios")

//go:generate mockgen -source=service.go -destination=mocks/converting_mock.go -package=mocks
type ConversionRetrier interface {
	RetryFailed(ctx context.Context) (*domain.ConversionRetryResult, error)
}

type Options struct {
	MaxRetries int
	RetryDelay time.Duration
	BatchSize  uint64
}

func (o Options) withDefaults() Options {
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	if o.BatchSize == 0 {
		o.BatchSize = DefaultBatchSize
	}
	return o
}

type Service struct {
	conversions repository.ConversionRepository
	accounts    readmodel.AdAccountReader
	gateway     platform.Gateway
	clock       utils.Clock
	opts        Options
}

func NewService(
	conversions repository.ConversionRepository,
	accounts readmodel.AdAccountReader,
	gateway platform.Gateway,
	clock utils.Clock,
	opts Options,
) *Service {
	return &Service{
		conversions: conversions,
		accounts:    accounts,
		gateway:     gateway,
		clock:       clock,
		opts:        opts.withDefaults(),
	}
}

// RetryFailed reenvia as conversões falhas elegíveis e, ao final, abandona as que esgotaram as tentativas.
// Contas inativas ou com token vencido levam ao abandono imediato, sem consumir tentativa.
func (s *Service) RetryFailed(ctx context.Context) (*domain.ConversionRetryResult, error) {
	now := s.clock.Now()

	conversions, err := s.conversions.ListRetryable(ctx, s.opts.MaxRetries, now.Add(-s.opts.RetryDelay), s.opts.BatchSize)
	if err != nil {
		return nil, err
	}

	result := &domain.ConversionRetryResult{Processed: len(conversions)}
	accounts := make(map[string]*domain.AdAccount)

	for _, conv := range conversions {
		logger := log.Entry(ctx).WithFields(logrus.Fields{
			"conversion_id": conv.ID,
			"platform":      conv.Platform,
			"retry_count":   conv.RetryCount,
		})

		account, ok := accounts[conv.AdAccountID]
		if !ok {
			account, err = s.accounts.GetAdAccountByID(ctx, conv.AdAccountID)
			if err != nil {
				return result, fmt.Errorf("%w %s: %w", ErrReadAccount, conv.AdAccountID, err)
			}
			accounts[conv.AdAccountID] = account
		}

		if reason := abandonReason(account, now); reason != "" {
			if err := s.conversions.MarkAbandoned(ctx, conv.ID, reason); err != nil {
				return result, err
			}
			logger.WithField("reason", reason).Warn("Conversão abandonada")
			result.Abandoned++
			continue
		}

		response, sendErr := s.gateway.SendConversion(ctx, account, conv)
		if sendErr != nil {
			if err := s.conversions.MarkFailed(ctx, conv.ID, sendErr.Error()); err != nil {
				return result, err
			}
			logger.WithField("error", sendErr).Warn("Falha ao reenviar conversão")
			result.Failed++
			continue
		}

		sent, err := s.conversions.MarkSent(ctx, conv.ID, response, s.clock.Now())
		if err != nil {
			return result, err
		}
		if sent {
			result.Sent++
		}
	}

	exhausted, err := s.conversions.AbandonExhausted(ctx, s.opts.MaxRetries,
		fmt.Sprintf("Número máximo de tentativas (%d) atingido", s.opts.MaxRetries))
	if err != nil {
		return result, err
	}
	result.Exhausted = int(exhausted)

	log.Entry(ctx).WithFields(logrus.Fields{
		"processed": result.Processed,
		"sent":      result.Sent,
		"failed":    result.Failed,
		"abandoned": result.Abandoned,
		"exhausted": result.Exhausted,
	}).Info("Reenvio de conversões concluído")

	return result, nil
}

func abandonReason(account *domain.AdAccount, now time.Time) string {
	switch {
	case account == nil:
		return platform.ErrAccountNotFound.Error()
	case !account.IsActive():
		return platform.ErrAccountInactive.Error()
	case account.IsTokenExpired(now):
		return platform.ErrTokenExpired.Error()
	}
	return ""
}
