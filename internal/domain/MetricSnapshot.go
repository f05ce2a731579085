package domain

import (
	"encoding/json"
	"time"

	"github.com/vfg2006/fb-insights-api/pkg/utils"
)

// MetricSnapshot é a linha normalizada de um insight diário por entidade.
// A tupla (CredentialID, Date, Level, EntityID) é única.
type MetricSnapshot struct {
	ID           int64           `json:"id"`
	CredentialID string          `json:"credential_id"`
	Date         time.Time       `json:"date"`
	Level        Level           `json:"level"`
	EntityID     string          `json:"entity_id"`
	Impressions  int64           `json:"impressions"`
	Clicks       int64           `json:"clicks"`
	Spend        float64         `json:"spend"`
	Conversions  int64           `json:"conversions"`
	Revenue      float64         `json:"revenue"`
	Raw          json.RawMessage `json:"raw,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CTR é calculado na leitura, nunca persistido
func (m *MetricSnapshot) CTR() float64 {
	return CalculateCTR(m.Clicks, m.Impressions)
}

// ROAS é calculado na leitura, nunca persistido
func (m *MetricSnapshot) ROAS() float64 {
	return CalculateROAS(m.Revenue, m.Spend)
}

func CalculateCTR(clicks, impressions int64) float64 {
	if impressions == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(float64(clicks) / float64(impressions) * 100)
}

func CalculateROAS(revenue, spend float64) float64 {
	if spend == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(revenue / spend)
}

type MetricSnapshotResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	Level       Level     `json:"level"`
	EntityID    string    `json:"entity_id"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Spend       float64   `json:"spend"`
	Conversions int64     `json:"conversions"`
	Revenue     float64   `json:"revenue"`
	CTR         float64   `json:"ctr"`
	ROAS        float64   `json:"roas"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *MetricSnapshot) ToResponse() *MetricSnapshotResponse {
	return &MetricSnapshotResponse{
		ID:          m.ID,
		Date:        m.Date.Format(time.DateOnly),
		Level:       m.Level,
		EntityID:    m.EntityID,
		Impressions: m.Impressions,
		Clicks:      m.Clicks,
		Spend:       m.Spend,
		Conversions: m.Conversions,
		Revenue:     m.Revenue,
		CTR:         m.CTR(),
		ROAS:        m.ROAS(),
		CreatedAt:   m.CreatedAt,
	}
}

// IngestOutcome é o resultado da gravação de um snapshot
type IngestOutcome int

const (
	IngestInserted IngestOutcome = iota
	IngestSkipped
)
