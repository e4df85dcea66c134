// Package repository implementa o armazenamento das entidades do motor de campanhas no Postgres
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// rowScanner é satisfeito por *sql.Row e *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// execError padroniza a mensagem de erro de escrita, expondo o código do Postgres quando houver
func execError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}

// affected informa se a escrita alterou ao menos uma linha
func affected(result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	return rows > 0, nil
}

func marshalJSON(value any) ([]byte, error) {
	if value == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar para JSON: %w", err)
	}
	return data, nil
}

func unmarshalJSON(data []byte, out any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("erro ao desserializar JSON: %w", err)
	}
	return nil
}

func platformsToStrings(platforms []domain.Platform) []string {
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, string(p))
	}
	return out
}

func stringsToPlatforms(values []string) []domain.Platform {
	out := make([]domain.Platform, 0, len(values))
	for _, v := range values {
		out = append(out, domain.Platform(v))
	}
	return out
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func timePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	v := value.Time
	return &v
}

// textArray converte a lista para TEXT[], gravando lista vazia no lugar de NULL
func textArray(values []string) any {
	if values == nil {
		values = []string{}
	}
	return pq.Array(values)
}
