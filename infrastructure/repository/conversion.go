package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-engine/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

//go:generate mockgen -source=conversion.go -destination=mocks/conversion_mock.go -package=mocks
type ConversionRepository interface {
	ListRetryable(ctx context.Context, maxRetries int, updatedBefore time.Time, limit uint64) ([]*domain.Conversion, error)
	MarkSent(ctx context.Context, id string, response string, sentAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, id string, errorMessage string) error
	MarkAbandoned(ctx context.Context, id string, reason string) error
	AbandonExhausted(ctx context.Context, maxRetries int, reason string) (int64, error)
}

type conversionRepository struct {
	conn *postgres.Connection
}

func NewConversionRepository(conn *postgres.Connection) ConversionRepository {
	return &conversionRepository{
		conn: conn,
	}
}

// ListRetryable lista as conversões falhas que ainda têm tentativas e já passaram do tempo de espera
func (r *conversionRepository) ListRetryable(ctx context.Context, maxRetries int, updatedBefore time.Time, limit uint64) ([]*domain.Conversion, error) {
	query, args, err := squirrel.
		Select(
			"id", "tenant_id", "campaign_id", "ad_account_id", "platform", "event_name", "event_id",
			"order_id", "value", "currency", "payload", "status", "retry_count", "error_message",
			"platform_response", "sent_at", "created_at", "updated_at",
		).
		From("conversions").
		Where(squirrel.Eq{"status": domain.ConversionFailed}).
		Where(squirrel.Lt{"retry_count": maxRetries}).
		Where(squirrel.Lt{"updated_at": updatedBefore}).
		OrderBy("updated_at ASC", "id ASC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	conversions := make([]*domain.Conversion, 0)
	for rows.Next() {
		c := &domain.Conversion{}
		var (
			campaignID sql.NullString
			payload    []byte
			sentAt     sql.NullTime
		)

		err := rows.Scan(
			&c.ID, &c.TenantID, &campaignID, &c.AdAccountID, &c.Platform, &c.EventName, &c.EventID,
			&c.OrderID, &c.Value, &c.Currency, &payload, &c.Status, &c.RetryCount, &c.ErrorMessage,
			&c.PlatformResponse, &sentAt, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear conversão: %w", err)
		}

		if err := unmarshalJSON(payload, &c.Payload); err != nil {
			return nil, err
		}
		c.CampaignID = stringPtr(campaignID)
		c.SentAt = timePtr(sentAt)

		conversions = append(conversions, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return conversions, nil
}

// MarkSent grava a entrega com sucesso. Devolve false se a conversão já estava como enviada.
func (r *conversionRepository) MarkSent(ctx context.Context, id string, response string, sentAt time.Time) (bool, error) {
	query, args, err := squirrel.
		Update("conversions").
		Set("status", domain.ConversionSent).
		Set("platform_response", response).
		Set("error_message", "").
		Set("sent_at", sentAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.ConversionSent}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, execError(err)
	}

	return affected(result)
}

// MarkFailed incrementa o contador de tentativas de uma conversão que continua falha. Conversões
// enviadas ou abandonadas no meio do reenvio não são tocadas.
func (r *conversionRepository) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	query, args, err := markFailedQuery(id, errorMessage)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return execError(err)
	}

	return nil
}

func markFailedQuery(id string, errorMessage string) (string, []any, error) {
	return squirrel.
		Update("conversions").
		Set("status", domain.ConversionFailed).
		Set("retry_count", squirrel.Expr("retry_count + 1")).
		Set("error_message", errorMessage).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.ConversionFailed}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *conversionRepository) MarkAbandoned(ctx context.Context, id string, reason string) error {
	query, args, err := squirrel.
		Update("conversions").
		Set("status", domain.ConversionAbandoned).
		Set("error_message", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.ConversionSent}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return execError(err)
	}

	return nil
}

// AbandonExhausted abandona as conversões falhas que esgotaram as tentativas
func (r *conversionRepository) AbandonExhausted(ctx context.Context, maxRetries int, reason string) (int64, error) {
	query, args, err := squirrel.
		Update("conversions").
		Set("status", domain.ConversionAbandoned).
		Set("error_message", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.ConversionFailed}).
		Where(squirrel.GtOrEq{"retry_count": maxRetries}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, execError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rows, nil
}
