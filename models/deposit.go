package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// MaturityInstruction is the disposition of principal and interest at term end.
type MaturityInstruction string

const (
	InstructionEncashment    MaturityInstruction = "PRINCIPAL_PLUS_PROFIT_ENCASHMENT"
	InstructionRollover      MaturityInstruction = "PRINCIPAL_ROLLOVER"
	InstructionPrincipalOnly MaturityInstruction = "PRINCIPAL"
)

// MaturityInstructions lists the accepted instructions in display order.
var MaturityInstructions = []MaturityInstruction{
	InstructionEncashment,
	InstructionRollover,
	InstructionPrincipalOnly,
}

// Valid reports whether m is one of the accepted instructions.
func (m MaturityInstruction) Valid() bool {
	for _, v := range MaturityInstructions {
		if m == v {
			return true
		}
	}
	return false
}

// Label returns the customer-facing description of the instruction.
func (m MaturityInstruction) Label() string {
	switch m {
	case InstructionEncashment:
		return "Credit principal plus interest on maturity"
	case InstructionRollover:
		return "Rollover principal plus interest on maturity"
	case InstructionPrincipalOnly:
		return "Rollover principal only and credit interest on maturity"
	}
	return ""
}

// IsRollover is true for the instructions that renew the deposit at maturity.
func (m MaturityInstruction) IsRollover() bool {
	return m == InstructionRollover || m == InstructionPrincipalOnly
}

// DepositPayload is the request body shared by validate and create.
type DepositPayload struct {
	DealReference       string              `json:"deal_reference,omitempty"`
	FundingAccountID    string              `json:"funding_account_id"`
	RepaymentAccountID  string              `json:"repayment_account_id"`
	Amount              decimal.Decimal     `json:"amount"`
	Currency            string              `json:"currency"`
	StartDate           civil.Date          `json:"start_date"`
	NumberOfDays        int                 `json:"number_of_days"`
	MaturityInstruction MaturityInstruction `json:"maturity_instruction"`
	Remarks             *string             `json:"remarks,omitempty"`
}

// CreateResult is returned by the backend for an accepted deposit request.
type CreateResult struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}
