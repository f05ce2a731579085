package metadomain

// AdAccount é um item de /me/adaccounts
type AdAccount struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
}

type AdAccountsPage struct {
	Data   []AdAccount `json:"data"`
	Paging Paging      `json:"paging"`
}
