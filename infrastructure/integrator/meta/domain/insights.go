package metadomain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type Cursors struct {
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// InsightsPage é uma página de /{ad_account_id}/insights. Os registros ficam
// brutos até a normalização.
type InsightsPage struct {
	Data   []json.RawMessage `json:"data"`
	Paging *Paging           `json:"paging,omitempty"`
}

// AfterCursor retorna "" quando a página não traz cursor de continuação
func (p *InsightsPage) AfterCursor() string {
	if p == nil || p.Paging == nil {
		return ""
	}
	return p.Paging.Cursors.After
}

// InsightRecord é o esquema esperado de um registro de insights
type InsightRecord struct {
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	AccountID    string   `json:"account_id"`
	CampaignID   string   `json:"campaign_id"`
	AdSetID      string   `json:"adset_id"`
	AdID         string   `json:"ad_id"`
	Impressions  Numeric  `json:"impressions"`
	Clicks       Numeric  `json:"clicks"`
	Spend        Numeric  `json:"spend"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
}

type Action struct {
	ActionType string  `json:"action_type"`
	Value      Numeric `json:"value"`
}

// Numeric guarda o valor numérico como veio da API (a Graph API envia
// números como strings). Ausente ou null resulta em Present == false.
type Numeric struct {
	Raw     string
	Present bool
}

func (n *Numeric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Numeric{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			s = string(b)
		}
		*n = Numeric{Raw: s, Present: true}
		return nil
	}

	// números, objetos, booleanos: a validação fica com a normalização
	*n = Numeric{Raw: string(b), Present: true}
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Present {
		return []byte("null"), nil
	}
	return json.Marshal(n.Raw)
}
