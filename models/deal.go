package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// DealRecord is a pre-negotiated deal resolved from a deal reference number.
type DealRecord struct {
	Amount             decimal.Decimal     `json:"amount"`
	Currency           string              `json:"currency"`
	FundingAccountID   string              `json:"funding_account_id"`
	RepaymentAccountID string              `json:"repayment_account_id,omitempty"`
	StartDate          civil.Date          `json:"start_date"`
	MaturityDate       civil.Date          `json:"maturity_date"`
	NumberOfDays       int                 `json:"number_of_days"`
	StandardRate       decimal.NullDecimal `json:"standard_rate"`
	SpecialRate        decimal.NullDecimal `json:"special_rate"`
	MaturityAmount     decimal.Decimal     `json:"maturity_amount"`
}

// Rate returns the special rate when one was negotiated, else the standard rate.
func (d DealRecord) Rate() decimal.NullDecimal {
	if d.SpecialRate.Valid {
		return d.SpecialRate
	}
	return d.StandardRate
}

// RateInquiryRequest asks the backend to quote an ad-hoc deposit.
type RateInquiryRequest struct {
	Amount       decimal.Decimal `json:"deposit_amount"`
	NumberOfDays int             `json:"number_of_days"`
	Currency     string          `json:"currency"`
	StartDate    civil.Date      `json:"start_date"`
}

// RatePreview is the quote returned for an ad-hoc deposit.
type RatePreview struct {
	InterestRate   decimal.Decimal `json:"interest_rate"`
	MaturityAmount decimal.Decimal `json:"maturity_amount"`
	MaturityDate   civil.Date      `json:"maturity_date"`
}
