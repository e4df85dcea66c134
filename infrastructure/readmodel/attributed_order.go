package readmodel

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

const confirmedOrderStatus = "confirmed"

//go:generate mockgen -source=attributed_order.go -destination=mocks/attributed_order_mock.go -package=mocks

// AttributedOrderReader lista pedidos confirmados atribuídos a uma campanha pelas tags UTM
type AttributedOrderReader interface {
	ListAttributedOrders(ctx context.Context, filters domain.AttributedOrderFilters) ([]domain.AttributedOrder, error)
}

type attributedOrderReader struct {
	pool *pgxpool.Pool
}

func NewAttributedOrderReader(pool *pgxpool.Pool) AttributedOrderReader {
	return &attributedOrderReader{pool: pool}
}

func (r *attributedOrderReader) ListAttributedOrders(ctx context.Context, filters domain.AttributedOrderFilters) ([]domain.AttributedOrder, error) {
	utmMatch := squirrel.Or{}
	if filters.UTMCampaign != "" {
		utmMatch = append(utmMatch, squirrel.Eq{"o.utm_campaign": filters.UTMCampaign})
	}
	if filters.UTMSource != "" {
		utmMatch = append(utmMatch, squirrel.Eq{"o.utm_source": filters.UTMSource})
	}
	if len(utmMatch) == 0 {
		return nil, nil
	}

	builder := squirrel.
		Select(
			"o.id",
			"o.event_id",
			"COALESCE(o.utm_campaign, '')",
			"COALESCE(o.utm_source, '')",
			"o.total",
			"o.ticket_quantity",
			"o.customer_id",
			"o.is_first_purchase",
			"o.created_at",
		).
		From("orders o").
		Where(squirrel.Eq{"o.event_id": filters.EventID, "o.status": confirmedOrderStatus}).
		Where(utmMatch).
		OrderBy("o.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"o.created_at": *filters.StartDate})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pedidos atribuídos: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AttributedOrder, error) {
		var o domain.AttributedOrder
		err := row.Scan(
			&o.OrderID,
			&o.EventID,
			&o.UTMCampaign,
			&o.UTMSource,
			&o.Total,
			&o.TicketQuantity,
			&o.CustomerID,
			&o.NewCustomer,
			&o.OrderDate,
		)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao ler pedidos atribuídos: %w", err)
	}

	return orders, nil
}
