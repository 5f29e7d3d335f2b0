package depositapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/satheeshds/termdeposit/models"
)

// Wire shapes of the deposit backend. Amounts travel as JSON numbers and are
// converted through their decimal text so no digits are lost.

type accountDTO struct {
	AccountID        string      `json:"accountId"`
	Name             string      `json:"name"`
	AvailableBalance json.Number `json:"availableBalance"`
	CurrencyID       string      `json:"currencyID"`
	Status           string      `json:"status"`
	ProductID        string      `json:"productID"`
	CreditFrozen     string      `json:"creditFrozen"`
	DebitFrozen      string      `json:"debitFrozen"`
	RawProductID     string      `json:"rawProductId,omitempty"`
}

type dealInquiryRequest struct {
	DealID      string `json:"dealId"`
	CustomerKey string `json:"customerKey"`
}

type dealInquiryResponse struct {
	Amount           json.Number  `json:"amount"`
	Currency         string       `json:"currency"`
	FundingAccount   string       `json:"fundingAccount"`
	RepaymentAccount string       `json:"repaymentAccount,omitempty"`
	StartDate        string       `json:"startDate"`
	MaturityDate     string       `json:"maturityDate"`
	NumberOfDays     int          `json:"numberOfDays"`
	StandardRate     *json.Number `json:"standardRate,omitempty"`
	SpecialRate      *json.Number `json:"specialRate,omitempty"`
	MaturityAmount   json.Number  `json:"maturityAmount"`
}

type depositRequest struct {
	DealReference       string      `json:"dealReference,omitempty"`
	FundingAccount      string      `json:"fundingAccount"`
	RepaymentAccount    string      `json:"repaymentAccount"`
	Amount              json.Number `json:"amount"`
	StartDate           string      `json:"startDate"`
	NumberOfDays        int         `json:"numberOfDays"`
	MaturityInstruction string      `json:"maturityInstruction"`
	Remarks             *string     `json:"remarks,omitempty"`
	Currency            string      `json:"currency"`
}

type rateInquiryRequest struct {
	DepositAmount json.Number `json:"depositAmount"`
	NumberOfDays  int         `json:"numberOfDays"`
	Currency      string      `json:"currency"`
	StartDate     string      `json:"startDate"`
}

type rateInquiryResponse struct {
	InterestRate   json.Number `json:"interestRate"`
	MaturityAmount json.Number `json:"maturityAmount"`
	MaturityDate   string      `json:"maturityDate"`
}

type createDepositResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type errorResponse struct {
	Errors []models.APIError `json:"errors"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func parseDecimal(name string, n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", name, n, err)
	}
	return d, nil
}

func parseNullDecimal(name string, n *json.Number) (decimal.NullDecimal, error) {
	if n == nil || *n == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := parseDecimal(name, *n)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// parseDate accepts a plain date or the date prefix of a timestamp.
func parseDate(name, s string) (civil.Date, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("parsing %s %q: %w", name, s, err)
	}
	return d, nil
}

func flag(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "Y", "YES", "TRUE":
		return true
	}
	return false
}

func (a accountDTO) toModel() (models.Account, error) {
	balance, err := parseDecimal("availableBalance", a.AvailableBalance)
	if err != nil {
		return models.Account{}, err
	}
	return models.Account{
		AccountID:        a.AccountID,
		Name:             a.Name,
		AvailableBalance: balance,
		CurrencyCode:     a.CurrencyID,
		Status:           a.Status,
		ProductCode:      a.ProductID,
		RawProductCode:   a.RawProductID,
		DebitFrozen:      flag(a.DebitFrozen),
		CreditFrozen:     flag(a.CreditFrozen),
	}, nil
}

func (r dealInquiryResponse) toModel() (models.DealRecord, error) {
	var (
		deal models.DealRecord
		err  error
	)
	if deal.Amount, err = parseDecimal("amount", r.Amount); err != nil {
		return deal, err
	}
	if deal.MaturityAmount, err = parseDecimal("maturityAmount", r.MaturityAmount); err != nil {
		return deal, err
	}
	if deal.StandardRate, err = parseNullDecimal("standardRate", r.StandardRate); err != nil {
		return deal, err
	}
	if deal.SpecialRate, err = parseNullDecimal("specialRate", r.SpecialRate); err != nil {
		return deal, err
	}
	if deal.StartDate, err = parseDate("startDate", r.StartDate); err != nil {
		return deal, err
	}
	if deal.MaturityDate, err = parseDate("maturityDate", r.MaturityDate); err != nil {
		return deal, err
	}
	deal.Currency = r.Currency
	deal.FundingAccountID = r.FundingAccount
	deal.RepaymentAccountID = r.RepaymentAccount
	deal.NumberOfDays = r.NumberOfDays
	return deal, nil
}

func (r rateInquiryResponse) toModel() (models.RatePreview, error) {
	var (
		p   models.RatePreview
		err error
	)
	if p.InterestRate, err = parseDecimal("interestRate", r.InterestRate); err != nil {
		return p, err
	}
	if p.MaturityAmount, err = parseDecimal("maturityAmount", r.MaturityAmount); err != nil {
		return p, err
	}
	if r.MaturityDate == "" {
		return p, nil
	}
	if p.MaturityDate, err = parseDate("maturityDate", r.MaturityDate); err != nil {
		return p, err
	}
	return p, nil
}

func newDepositRequest(p models.DepositPayload) depositRequest {
	return depositRequest{
		DealReference:       p.DealReference,
		FundingAccount:      p.FundingAccountID,
		RepaymentAccount:    p.RepaymentAccountID,
		Amount:              number(p.Amount),
		StartDate:           p.StartDate.String(),
		NumberOfDays:        p.NumberOfDays,
		MaturityInstruction: string(p.MaturityInstruction),
		Remarks:             p.Remarks,
		Currency:            p.Currency,
	}
}
