package models

import "time"

// Submission is a journal entry for one create attempt made by a wizard.
type Submission struct {
	ID                  string    `json:"id" db:"id"`
	WizardID            string    `json:"wizard_id" db:"wizard_id"`
	Mode                string    `json:"mode" db:"mode"`
	DealReference       *string   `json:"deal_reference" db:"deal_reference"`
	FundingAccountID    string    `json:"funding_account_id" db:"funding_account"`
	RepaymentAccountID  string    `json:"repayment_account_id" db:"repayment_account"`
	Currency            string    `json:"currency" db:"currency"`
	Amount              string    `json:"amount" db:"amount"`
	StartDate           string    `json:"start_date" db:"start_date"`
	NumberOfDays        int       `json:"number_of_days" db:"number_of_days"`
	MaturityInstruction string    `json:"maturity_instruction" db:"maturity_instruction"`
	Reference           *string   `json:"reference" db:"reference"`
	Status              string    `json:"status" db:"status"` // remote status, or FAILED
	Error               *string   `json:"error" db:"error"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// SubmissionFailed is the journal status of a rejected or failed create call.
const SubmissionFailed = "FAILED"
