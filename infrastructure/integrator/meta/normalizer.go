package meta

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	metadomain "github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/fb-insights-api/internal/domain"
	"github.com/vfg2006/fb-insights-api/pkg/utils"
)

// UnknownEntityID é usado quando o registro não traz o ID da entidade do nível
const UnknownEntityID = "unknown"

var DefaultConversionActionTypes = []string{"purchase", "offsite_conversion.fb_pixel_purchase"}

var ErrDataFormat = errors.New("meta: formato de dado inválido")

// DataFormatError indica um campo presente mas malformado em um registro
type DataFormatError struct {
	Field string
	Value string
	Err   error
}

func (e *DataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("meta: campo %s com valor inválido %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("meta: campo %s com valor inválido %q", e.Field, e.Value)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

func (e *DataFormatError) Is(target error) bool {
	return target == ErrDataFormat
}

// Normalizer converte registros brutos de insights em MetricSnapshot
type Normalizer struct {
	conversionTypes map[string]struct{}
}

// NewNormalizer usa DefaultConversionActionTypes quando actionTypes é vazio
func NewNormalizer(actionTypes []string) *Normalizer {
	set := make(map[string]struct{})
	for _, t := range actionTypes {
		if t = strings.TrimSpace(t); t != "" {
			set[t] = struct{}{}
		}
	}
	if len(set) == 0 {
		for _, t := range DefaultConversionActionTypes {
			set[t] = struct{}{}
		}
	}
	return &Normalizer{conversionTypes: set}
}

// Normalize retorna (nil, nil) para registros sem date_start, que são
// ignorados. Campos numéricos ausentes valem zero; presentes e malformados
// resultam em *DataFormatError.
func (n *Normalizer) Normalize(raw json.RawMessage, level domain.Level, fallbackAccountID string) (*domain.MetricSnapshot, error) {
	var record metadomain.InsightRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, &DataFormatError{Field: "record", Value: truncate(string(raw)), Err: err}
	}

	if record.DateStart == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, record.DateStart)
	if err != nil {
		return nil, &DataFormatError{Field: "date_start", Value: record.DateStart, Err: err}
	}

	impressions, err := parseCount("impressions", record.Impressions)
	if err != nil {
		return nil, err
	}

	clicks, err := parseCount("clicks", record.Clicks)
	if err != nil {
		return nil, err
	}

	spend, err := parseAmount("spend", record.Spend)
	if err != nil {
		return nil, err
	}

	var conversions int64
	for _, action := range record.Actions {
		if !n.isConversion(action.ActionType) {
			continue
		}
		v, err := parseCount("actions."+action.ActionType, action.Value)
		if err != nil {
			return nil, err
		}
		conversions += v
	}

	var revenue float64
	for _, action := range record.ActionValues {
		if !n.isConversion(action.ActionType) {
			continue
		}
		v, err := parseAmount("action_values."+action.ActionType, action.Value)
		if err != nil {
			return nil, err
		}
		revenue += v
	}

	return &domain.MetricSnapshot{
		Date:        date,
		Level:       level,
		EntityID:    entityID(record, level, fallbackAccountID),
		Impressions: impressions,
		Clicks:      clicks,
		Spend:       spend,
		Conversions: conversions,
		Revenue:     revenue,
		Raw:         raw,
	}, nil
}

func (n *Normalizer) isConversion(actionType string) bool {
	_, ok := n.conversionTypes[actionType]
	return ok
}

func entityID(record metadomain.InsightRecord, level domain.Level, fallbackAccountID string) string {
	var id string
	switch level {
	case domain.LevelCampaign:
		id = record.CampaignID
	case domain.LevelAdSet:
		id = record.AdSetID
	case domain.LevelAd:
		id = record.AdID
	default:
		id = record.AccountID
		if id == "" {
			id = fallbackAccountID
		}
	}

	if id == "" {
		return UnknownEntityID
	}
	return id
}

func parseCount(field string, n metadomain.Numeric) (int64, error) {
	if !n.Present {
		return 0, nil
	}

	s := strings.TrimSpace(n.Raw)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0, &DataFormatError{Field: field, Value: n.Raw, Err: errors.New("valor negativo")}
		}
		return v, nil
	}

	// "5.0" é aceito como 5; frações não
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !utils.IsWholeNumber(f) || f < 0 || f > math.MaxInt64 {
		return 0, &DataFormatError{Field: field, Value: n.Raw}
	}
	return int64(f), nil
}

func parseAmount(field string, n metadomain.Numeric) (float64, error) {
	if !n.Present {
		return 0, nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(n.Raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &DataFormatError{Field: field, Value: n.Raw}
	}
	if f < 0 {
		return 0, &DataFormatError{Field: field, Value: n.Raw, Err: errors.New("valor negativo")}
	}
	return f, nil
}

func truncate(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
