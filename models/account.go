package models

import "github.com/shopspring/decimal"

// AccountStatusActive is the only status a funding or repayment account may have.
const AccountStatusActive = "Active"

// Account represents a customer bank account from the external account catalog.
type Account struct {
	AccountID        string          `json:"account_id"`
	Name             string          `json:"name"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	CurrencyCode     string          `json:"currency_code"`
	Status           string          `json:"status"` // Active, Dormant, Closed, ...
	ProductCode      string          `json:"product_code"`
	RawProductCode   string          `json:"raw_product_code,omitempty"`
	DebitFrozen      bool            `json:"debit_frozen"`
	CreditFrozen     bool            `json:"credit_frozen"`
}

// IsActive reports whether the account status is Active.
func (a Account) IsActive() bool {
	return a.Status == AccountStatusActive
}
