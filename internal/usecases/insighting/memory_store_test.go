package insighting

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/fb-insights-api/internal/domain"
)

// memoryStore reproduz a chave natural de metric_snapshots em memória
type memoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]*domain.MetricSnapshot
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[string]*domain.MetricSnapshot)}
}

func (m *memoryStore) Insert(_ context.Context, s *domain.MetricSnapshot) (domain.IngestOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s|%s|%s|%s", s.CredentialID, s.Date.Format(time.DateOnly), s.Level, s.EntityID)
	if _, exists := m.rows[key]; exists {
		return domain.IngestSkipped, nil
	}

	m.nextID++
	stored := *s
	stored.ID = m.nextID
	m.rows[key] = &stored
	return domain.IngestInserted, nil
}

func (m *memoryStore) Query(_ context.Context, credentialID string, q domain.StoredInsightsQuery) ([]*domain.MetricSnapshot, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]*domain.MetricSnapshot, 0)
	for _, s := range m.rows {
		if s.CredentialID != credentialID {
			continue
		}
		if q.Filters.Level != nil && s.Level != *q.Filters.Level {
			continue
		}
		if q.Filters.DateFrom != nil && s.Date.Before(*q.Filters.DateFrom) {
			continue
		}
		if q.Filters.DateTo != nil && s.Date.After(*q.Filters.DateTo) {
			continue
		}
		matched = append(matched, s)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := q.Offset()
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
