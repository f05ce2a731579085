package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fb-insights-api/internal/domain"
)

func newMetricSnapshotStore(t *testing.T) (*MetricSnapshotStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewMetricSnapshotStore(db), mock
}

func sampleSnapshot() *domain.MetricSnapshot {
	return &domain.MetricSnapshot{
		CredentialID: "cred-1",
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Level:        domain.LevelCampaign,
		EntityID:     "c1",
		Impressions:  1000,
		Clicks:       50,
		Spend:        12.34,
		Conversions:  3,
		Revenue:      61.7,
		Raw:          json.RawMessage(`{"campaign_id":"c1"}`),
	}
}

func TestMetricSnapshotStore_Insert(t *testing.T) {
	insertSQL := regexp.QuoteMeta("ON CONFLICT ON CONSTRAINT uq_metric_snapshots_natural_key DO NOTHING")

	tests := []struct {
		name     string
		setup    func(mock sqlmock.Sqlmock)
		expected domain.IngestOutcome
		wantErr  bool
	}{
		{
			name: "linha nova é inserida",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(insertSQL).
					WithArgs("cred-1", "2024-01-01", "campaign", "c1", int64(1000), int64(50), 12.34, int64(3), 61.7, `{"campaign_id":"c1"}`).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expected: domain.IngestInserted,
		},
		{
			name: "chave natural existente é ignorada",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(insertSQL).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expected: domain.IngestSkipped,
		},
		{
			name: "violação de unicidade conta como ignorada",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(insertSQL).WillReturnError(&pq.Error{Code: "23505"})
			},
			expected: domain.IngestSkipped,
		},
		{
			name: "erro de banco é propagado",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(insertSQL).WillReturnError(errors.New("disco cheio"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMetricSnapshotStore(t)
			tt.setup(mock)

			outcome, err := store.Insert(context.Background(), sampleSnapshot())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, outcome)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMetricSnapshotStore_Query(t *testing.T) {
	store, mock := newMetricSnapshotStore(t)

	level := domain.LevelCampaign
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	query := domain.StoredInsightsQuery{
		Filters: domain.InsightFilters{Level: &level, DateFrom: &from, DateTo: &to},
		Page:    2,
		Limit:   1,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM metric_snapshots WHERE credential_id = $1 AND level = $2 AND date >= $3 AND date <= $4")).
		WithArgs("cred-1", "campaign", "2024-01-01", "2024-01-31").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	createdAt := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY date DESC, id DESC LIMIT 1 OFFSET 1")).
		WithArgs("cred-1", "campaign", "2024-01-01", "2024-01-31").
		WillReturnRows(sqlmock.NewRows(metricSnapshotColumns).
			AddRow(int64(1), "cred-1", from, "campaign", "c1", int64(1000), int64(50), 10.0, int64(5), 50.0, `{}`, createdAt))

	snapshots, total, err := store.Query(context.Background(), "cred-1", query)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, snapshots, 1)
	assert.Equal(t, domain.LevelCampaign, snapshots[0].Level)
	assert.Equal(t, 5.0, snapshots[0].CTR())
	assert.Equal(t, 5.0, snapshots[0].ROAS())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMetricSnapshotStore_Query_SemResultados(t *testing.T) {
	store, mock := newMetricSnapshotStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM metric_snapshots WHERE credential_id = $1")).
		WithArgs("cred-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	snapshots, total, err := store.Query(context.Background(), "cred-1", domain.StoredInsightsQuery{Page: 1, Limit: 50})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, snapshots)
	assert.NoError(t, mock.ExpectationsWereMet())
}
