package validation

import (
	"fmt"
	"regexp"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/satheeshds/termdeposit/models"
)

const (
	// MinTenorDays and MaxTenorDays bound the maturity date, counted from today.
	MinTenorDays = 7
	MaxTenorDays = 365

	maxReferenceLength = 50
	maxRemarksLength   = 500
)

// CustomFunc checks a value against the rest of the model. It returns an empty
// string when the value is acceptable.
type CustomFunc func(value string, model models.FormModel, today civil.Date) string

// FieldRule describes the checks applied to one field, in evaluation order:
// required, maximum length, pattern, numeric minimum, allowed values, custom.
type FieldRule struct {
	Required  bool
	MaxLength int
	Pattern   *regexp.Regexp
	Min       *decimal.Decimal
	OneOf     []string
	Custom    CustomFunc
}

var (
	referencePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	minAmount        = decimal.NewFromInt(1)
)

// Rules is the rule table keyed by field.
var Rules = map[models.Field]FieldRule{
	models.FieldReferenceNumber: {
		Required:  true,
		MaxLength: maxReferenceLength,
		Pattern:   referencePattern,
	},
	models.FieldFundingAccount: {
		Required: true,
	},
	models.FieldRepaymentAccount: {
		Required: true,
	},
	models.FieldAmount: {
		Required: true,
		Min:      &minAmount,
		Custom:   positiveAmount,
	},
	models.FieldStartDate: {
		Required: true,
	},
	models.FieldMaturityDate: {
		Required: true,
		Custom:   maturityWindow,
	},
	models.FieldMaturityInstruction: {
		Required: true,
		OneOf:    instructionValues(),
	},
	models.FieldRemarks: {
		MaxLength: maxRemarksLength,
	},
}

func instructionValues() []string {
	out := make([]string, 0, len(models.MaturityInstructions))
	for _, mi := range models.MaturityInstructions {
		out = append(out, string(mi))
	}
	return out
}

func positiveAmount(value string, _ models.FormModel, _ civil.Date) string {
	amount, err := decimal.NewFromString(value)
	if err != nil || !amount.IsPositive() {
		return "Amount must be greater than 0"
	}
	return ""
}

func maturityWindow(value string, model models.FormModel, today civil.Date) string {
	maturity, err := civil.ParseDate(value)
	if err != nil {
		return "Maturity date must be a valid date (YYYY-MM-DD)"
	}
	start, err := civil.ParseDate(model.StartDate)
	if err != nil {
		// startDate reports its own error
		return ""
	}
	if !maturity.After(start) {
		return "Maturity date must be after start date"
	}
	days := maturity.DaysSince(today)
	if days < MinTenorDays {
		return fmt.Sprintf("Maturity date must be at least %d days from today", MinTenorDays)
	}
	if days > MaxTenorDays {
		return fmt.Sprintf("Maturity date cannot exceed %d days", MaxTenorDays)
	}
	return ""
}
