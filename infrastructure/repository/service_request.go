package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/campaign-engine/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

//go:generate mockgen -source=service_request.go -destination=mocks/service_request_mock.go -package=mocks
type ServiceRequestRepository interface {
	UpdateStatus(ctx context.Context, id string, status domain.ServiceRequestStatus) error
}

type serviceRequestRepository struct {
	conn *postgres.Connection
}

func NewServiceRequestRepository(conn *postgres.Connection) ServiceRequestRepository {
	return &serviceRequestRepository{
		conn: conn,
	}
}

func (r *serviceRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.ServiceRequestStatus) error {
	query, args, err := squirrel.
		Update("service_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
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
