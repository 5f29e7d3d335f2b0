package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Mode selects how the deposit terms are entered.
type Mode string

const (
	ModeDealReferenced Mode = "DEAL_REFERENCED"
	ModeAdHoc          Mode = "AD_HOC"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeDealReferenced || m == ModeAdHoc
}

// Field names a user-editable FormModel field. The names double as FieldErrors keys.
type Field string

const (
	FieldReferenceNumber     Field = "referenceNumber"
	FieldFundingAccount      Field = "fundingAccountId"
	FieldRepaymentAccount    Field = "repaymentAccountId"
	FieldAmount              Field = "amount"
	FieldStartDate           Field = "startDate"
	FieldMaturityDate        Field = "maturityDate"
	FieldMaturityInstruction Field = "maturityInstruction"
	FieldRemarks             Field = "remarks"
)

// Fields lists every editable field in form order.
var Fields = []Field{
	FieldReferenceNumber,
	FieldFundingAccount,
	FieldRepaymentAccount,
	FieldAmount,
	FieldStartDate,
	FieldMaturityDate,
	FieldMaturityInstruction,
	FieldRemarks,
}

// Valid reports whether f names an editable field.
func (f Field) Valid() bool {
	for _, v := range Fields {
		if f == v {
			return true
		}
	}
	return false
}

// FormModel is the single source of truth of one deposit wizard.
type FormModel struct {
	Mode                Mode         `json:"mode"`
	ReferenceNumber     string       `json:"reference_number"`
	FundingAccountID    string       `json:"funding_account_id"`
	RepaymentAccountID  string       `json:"repayment_account_id"`
	Amount              string       `json:"amount"`
	StartDate           string       `json:"start_date"`
	MaturityDate        string       `json:"maturity_date"`
	MaturityInstruction string       `json:"maturity_instruction"`
	Remarks             string       `json:"remarks"`
	ResolvedDeal        *DealRecord  `json:"resolved_deal,omitempty"`
	RatePreview         *RatePreview `json:"rate_preview,omitempty"`
}

// NewFormModel returns the default model for the given mode, started today.
func NewFormModel(mode Mode, today civil.Date) FormModel {
	return FormModel{
		Mode:      mode,
		StartDate: today.String(),
	}
}

// Value returns the current string value of f.
func (m FormModel) Value(f Field) string {
	switch f {
	case FieldReferenceNumber:
		return m.ReferenceNumber
	case FieldFundingAccount:
		return m.FundingAccountID
	case FieldRepaymentAccount:
		return m.RepaymentAccountID
	case FieldAmount:
		return m.Amount
	case FieldStartDate:
		return m.StartDate
	case FieldMaturityDate:
		return m.MaturityDate
	case FieldMaturityInstruction:
		return m.MaturityInstruction
	case FieldRemarks:
		return m.Remarks
	}
	return ""
}

// With returns a copy of m with f set to value. Unknown fields leave m unchanged.
func (m FormModel) With(f Field, value string) FormModel {
	switch f {
	case FieldReferenceNumber:
		m.ReferenceNumber = value
	case FieldFundingAccount:
		m.FundingAccountID = value
	case FieldRepaymentAccount:
		m.RepaymentAccountID = value
	case FieldAmount:
		m.Amount = value
	case FieldStartDate:
		m.StartDate = value
	case FieldMaturityDate:
		m.MaturityDate = value
	case FieldMaturityInstruction:
		m.MaturityInstruction = value
	case FieldRemarks:
		m.Remarks = value
	}
	return m
}

// NumberOfDays is the tenor in whole days between start and maturity,
// or 0 while either date is unset or unparsable.
func (m FormModel) NumberOfDays() int {
	start, err := civil.ParseDate(m.StartDate)
	if err != nil {
		return 0
	}
	maturity, err := civil.ParseDate(m.MaturityDate)
	if err != nil {
		return 0
	}
	return maturity.DaysSince(start)
}

// EffectiveAmount is the deal amount when a deal is resolved, else the ad-hoc amount.
func (m FormModel) EffectiveAmount() decimal.Decimal {
	if m.ResolvedDeal != nil {
		return m.ResolvedDeal.Amount
	}
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// EffectiveMaturityAmount is the amount repaid at maturity, when known.
func (m FormModel) EffectiveMaturityAmount() decimal.NullDecimal {
	switch {
	case m.ResolvedDeal != nil:
		return decimal.NewNullDecimal(m.ResolvedDeal.MaturityAmount)
	case m.RatePreview != nil:
		return decimal.NewNullDecimal(m.RatePreview.MaturityAmount)
	}
	return decimal.NullDecimal{}
}

// EffectiveRate prefers the deal special rate, then the deal standard rate,
// then the quoted ad-hoc interest rate.
func (m FormModel) EffectiveRate() decimal.NullDecimal {
	if m.ResolvedDeal != nil {
		if rate := m.ResolvedDeal.Rate(); rate.Valid {
			return rate
		}
	}
	if m.RatePreview != nil {
		return decimal.NewNullDecimal(m.RatePreview.InterestRate)
	}
	return decimal.NullDecimal{}
}

// EffectiveMaturityDate is the deal maturity date when a deal is resolved.
func (m FormModel) EffectiveMaturityDate() string {
	if m.ResolvedDeal != nil {
		return m.ResolvedDeal.MaturityDate.String()
	}
	return m.MaturityDate
}

// FieldErrors maps a field name to a human-readable message.
type FieldErrors map[string]string

// Merge copies every entry of src into e, overwriting existing messages.
func (e FieldErrors) Merge(src FieldErrors) {
	for field, msg := range src {
		e[field] = msg
	}
}

// Clone returns an independent copy of e.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for field, msg := range e {
		out[field] = msg
	}
	return out
}
