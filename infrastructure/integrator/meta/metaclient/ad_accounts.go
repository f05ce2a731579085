package metaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	metadomain "github.com/vfg2006/fb-insights-api/infrastructure/integrator/meta/domain"
)

// GetAdAccounts lista as contas de anúncio acessíveis pelo token (/me/adaccounts)
func (c *MetaClient) GetAdAccounts(ctx context.Context, accessToken string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Set("fields", "id,name,account_id")
	params.Set("limit", strconv.Itoa(c.pageSize))
	c.withToken(params, accessToken)

	var accounts []metadomain.AdAccount
	for state := StartPaging(); state.HasNext(); {
		if state.Cursor() != "" {
			params.Set("after", state.Cursor())
		}

		body, err := c.get(ctx, "/me/adaccounts", params)
		if err != nil {
			return nil, err
		}

		var page metadomain.AdAccountsPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("erro ao decodificar contas de anúncio: %w", err)
		}

		accounts = append(accounts, page.Data...)
		state = state.Advance(page.Paging.Cursors.After)
	}

	return accounts, nil
}
