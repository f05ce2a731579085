package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/fb-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/fb-insights-api/internal/domain"
)

//go:generate mockgen -source=metric_snapshot.go -destination=mocks/mock_metric_snapshot.go -package=mocks

const (
	metricSnapshotsTable = "metric_snapshots"

	// código do Postgres para violação de unicidade
	uniqueViolation = "23505"
)

var metricSnapshotColumns = []string{
	"id", "credential_id", "date", "level", "entity_id", "impressions",
	"clicks", "spend", "conversions", "revenue", "raw", "created_at",
}

type MetricSnapshotRepository interface {
	Insert(ctx context.Context, snapshot *domain.MetricSnapshot) (domain.IngestOutcome, error)
	Query(ctx context.Context, credentialID string, query domain.StoredInsightsQuery) ([]*domain.MetricSnapshot, int, error)
}

type MetricSnapshotStore struct {
	conn postgres.Queryer
}

func NewMetricSnapshotStore(conn postgres.Queryer) *MetricSnapshotStore {
	return &MetricSnapshotStore{
		conn: conn,
	}
}

// Insert nunca atualiza uma linha existente: se a tupla
// (credential_id, date, level, entity_id) já existe o resultado é IngestSkipped.
func (r *MetricSnapshotStore) Insert(ctx context.Context, snapshot *domain.MetricSnapshot) (domain.IngestOutcome, error) {
	var raw any
	if len(snapshot.Raw) > 0 {
		raw = string(snapshot.Raw)
	}

	query, args, err := squirrel.
		Insert(metricSnapshotsTable).
		Columns("credential_id", "date", "level", "entity_id", "impressions", "clicks", "spend", "conversions", "revenue", "raw").
		Values(
			snapshot.CredentialID,
			snapshot.Date.Format(time.DateOnly),
			string(snapshot.Level),
			snapshot.EntityID,
			snapshot.Impressions,
			snapshot.Clicks,
			snapshot.Spend,
			snapshot.Conversions,
			snapshot.Revenue,
			raw,
		).
		Suffix("ON CONFLICT ON CONSTRAINT uq_metric_snapshots_natural_key DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return domain.IngestSkipped, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.IngestSkipped, nil
		}
		return domain.IngestSkipped, fmt.Errorf("erro ao inserir snapshot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return domain.IngestSkipped, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	if affected == 0 {
		return domain.IngestSkipped, nil
	}

	return domain.IngestInserted, nil
}

// Query retorna a página pedida ordenada por data decrescente e o total de
// linhas que atendem aos filtros.
func (r *MetricSnapshotStore) Query(ctx context.Context, credentialID string, q domain.StoredInsightsQuery) ([]*domain.MetricSnapshot, int, error) {
	base := squirrel.
		Select().
		From(metricSnapshotsTable).
		Where(squirrel.Eq{"credential_id": credentialID}).
		PlaceholderFormat(squirrel.Dollar)

	if q.Filters.Level != nil {
		base = base.Where(squirrel.Eq{"level": string(*q.Filters.Level)})
	}
	if q.Filters.DateFrom != nil {
		base = base.Where(squirrel.GtOrEq{"date": q.Filters.DateFrom.Format(time.DateOnly)})
	}
	if q.Filters.DateTo != nil {
		base = base.Where(squirrel.LtOrEq{"date": q.Filters.DateTo.Format(time.DateOnly)})
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar snapshots: %w", err)
	}

	if total == 0 {
		return []*domain.MetricSnapshot{}, 0, nil
	}

	query, args, err := base.
		Columns(metricSnapshotColumns...).
		OrderBy("date DESC", "id DESC").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.MetricSnapshot, 0, q.Limit)
	for rows.Next() {
		snapshot, err := scanMetricSnapshot(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao escanear snapshots: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, total, nil
}

func scanMetricSnapshot(row rowScanner) (*domain.MetricSnapshot, error) {
	var (
		snapshot domain.MetricSnapshot
		level    string
		raw      sql.NullString
	)

	err := row.Scan(
		&snapshot.ID,
		&snapshot.CredentialID,
		&snapshot.Date,
		&level,
		&snapshot.EntityID,
		&snapshot.Impressions,
		&snapshot.Clicks,
		&snapshot.Spend,
		&snapshot.Conversions,
		&snapshot.Revenue,
		&raw,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	snapshot.Level = domain.Level(level)
	if raw.Valid {
		snapshot.Raw = []byte(raw.String)
	}

	return &snapshot, nil
}
