package metaclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/fb-insights-api/internal/domain"
)

// baseInsightFields são pedidos em todos os níveis
var baseInsightFields = []string{
	"date_start",
	"date_stop",
	"account_id",
	"impressions",
	"clicks",
	"spend",
	"actions",
	"action_values",
}

// InsightFields retorna os campos pedidos para o nível, incluindo o ID da entidade
func InsightFields(level domain.Level) []string {
	fields := make([]string, len(baseInsightFields), len(baseInsightFields)+1)
	copy(fields, baseInsightFields)
	if level != domain.LevelAccount {
		fields = append(fields, level.EntityField())
	}
	return fields
}

type InsightsQuery struct {
	AdAccountID string
	Since       time.Time
	Until       time.Time
	Level       domain.Level
	Fields      []string
}

func (q InsightsQuery) Validate() error {
	if q.AdAccountID == "" {
		return errors.New("insights: ad account ID é obrigatório")
	}
	if !q.Level.IsValid() {
		return fmt.Errorf("insights: nível inválido %q", q.Level)
	}
	if q.Since.After(q.Until) {
		return errors.New("insights: since deve ser anterior ou igual a until")
	}
	return nil
}

type timeRange struct {
	Since string `json:"since"`
	Until string `json:"until"`
}

func (q InsightsQuery) params(pageSize int) (url.Values, error) {
	tr, err := json.Marshal(timeRange{
		Since: q.Since.Format(time.DateOnly),
		Until: q.Until.Format(time.DateOnly),
	})
	if err != nil {
		return nil, err
	}

	fields := q.Fields
	if len(fields) == 0 {
		fields = InsightFields(q.Level)
	}

	params := url.Values{}
	params.Set("level", string(q.Level))
	params.Set("time_range", string(tr))
	params.Set("fields", strings.Join(fields, ","))
	params.Set("limit", strconv.Itoa(pageSize))
	return params, nil
}

// PageFunc recebe os registros brutos de cada página, em ordem. Um erro
// retornado interrompe a paginação.
type PageFunc func(records []json.RawMessage) error

// EachInsightsPage percorre as páginas de /{ad_account_id}/insights em
// sequência. O contexto é verificado entre páginas.
func (c *MetaClient) EachInsightsPage(ctx context.Context, query InsightsQuery, accessToken string, fn PageFunc) error {
	if err := query.Validate(); err != nil {
		return err
	}

	params, err := query.params(c.pageSize)
	if err != nil {
		return err
	}
	c.withToken(params, accessToken)

	path := "/" + query.AdAccountID + "/insights"

	for state := StartPaging(); state.HasNext(); {
		if err := ctx.Err(); err != nil {
			return err
		}

		if state.Cursor() != "" {
			params.Set("after", state.Cursor())
		}

		page, err := c.getInsightsPage(ctx, path, params)
		if err != nil {
			return fmt.Errorf("insights: erro na página %d: %w", state.Pages()+1, err)
		}

		logrus.WithFields(logrus.Fields{
			"ad_account_id": query.AdAccountID,
			"level":         query.Level,
			"page":          state.Pages() + 1,
			"records":       len(page.Data),
		}).Debug("insights: página recebida")

		if err := fn(page.Data); err != nil {
			return err
		}

		state = state.Advance(page.AfterCursor())
	}

	return nil
}

// FetchAllInsights acumula os registros de todas as páginas
func (c *MetaClient) FetchAllInsights(ctx context.Context, query InsightsQuery, accessToken string) ([]json.RawMessage, error) {
	var records []json.RawMessage
	err := c.EachInsightsPage(ctx, query, accessToken, func(page []json.RawMessage) error {
		records = append(records, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *MetaClient) getInsightsPage(ctx context.Context, path string, params url.Values) (*metadomain.InsightsPage, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}

	var page metadomain.InsightsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("erro ao decodificar página de insights: %w", err)
	}

	return &page, nil
}
