// Package validation evaluates the deposit form against its field rules and
// translates backend error codes into field-scoped messages.
package validation

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/satheeshds/termdeposit/models"
)

var labels = map[models.Field]string{
	models.FieldReferenceNumber:     "Reference number",
	models.FieldFundingAccount:      "Funding account",
	models.FieldRepaymentAccount:    "Repayment account",
	models.FieldAmount:              "Amount",
	models.FieldStartDate:           "Start date",
	models.FieldMaturityDate:        "Maturity date",
	models.FieldMaturityInstruction: "Maturity instruction",
	models.FieldRemarks:             "Remarks",
}

var (
	dealFields = []models.Field{
		models.FieldReferenceNumber,
		models.FieldFundingAccount,
		models.FieldRepaymentAccount,
		models.FieldMaturityInstruction,
	}
	adHocFields = []models.Field{
		models.FieldFundingAccount,
		models.FieldRepaymentAccount,
		models.FieldAmount,
		models.FieldStartDate,
		models.FieldMaturityDate,
		models.FieldMaturityInstruction,
	}
)

// Engine evaluates the rule table. The clock decides what "today" is for the
// maturity window.
type Engine struct {
	now func() time.Time
}

// NewEngine returns an engine reading the current time from now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Default uses the wall clock.
var Default = NewEngine(time.Now)

// Today returns the engine's current calendar date.
func (e *Engine) Today() civil.Date {
	return civil.DateOf(e.now())
}

// ValidateField checks one value against its rule in the context of model.
// It returns an empty string when the value is valid.
func (e *Engine) ValidateField(field models.Field, value string, model models.FormModel) string {
	rule, ok := Rules[field]
	if !ok {
		return ""
	}
	label := labelOf(field)

	if strings.TrimSpace(value) == "" {
		if rule.Required {
			return label + " is required"
		}
		return ""
	}

	if rule.MaxLength > 0 && utf8.RuneCountInString(value) > rule.MaxLength {
		return fmt.Sprintf("%s must be no more than %d characters", label, rule.MaxLength)
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return label + " format is invalid"
	}
	if rule.Min != nil {
		// unparsable numbers are left to the custom check
		if n, err := decimal.NewFromString(value); err == nil && n.LessThan(*rule.Min) {
			return fmt.Sprintf("%s must be at least %s", label, rule.Min.String())
		}
	}
	if len(rule.OneOf) > 0 && !slices.Contains(rule.OneOf, value) {
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(rule.OneOf, ", "))
	}
	if rule.Custom != nil {
		return rule.Custom(value, model, e.Today())
	}
	return ""
}

// ValidateForm checks the fields relevant to the model's mode. The result is
// empty iff the model can be submitted.
func (e *Engine) ValidateForm(model models.FormModel) models.FieldErrors {
	fields := adHocFields
	if model.Mode == models.ModeDealReferenced {
		fields = dealFields
	}
	if model.Remarks != "" {
		fields = append(slices.Clone(fields), models.FieldRemarks)
	}

	errs := models.FieldErrors{}
	for _, f := range fields {
		if msg := e.ValidateField(f, model.Value(f), model); msg != "" {
			errs[string(f)] = msg
		}
	}
	return errs
}

// ValidateField runs Default.ValidateField.
func ValidateField(field models.Field, value string, model models.FormModel) string {
	return Default.ValidateField(field, value, model)
}

// ValidateForm runs Default.ValidateForm.
func ValidateForm(model models.FormModel) models.FieldErrors {
	return Default.ValidateForm(model)
}

func labelOf(f models.Field) string {
	if l, ok := labels[f]; ok {
		return l
	}
	return string(f)
}
