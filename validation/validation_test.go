package validation

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satheeshds/termdeposit/models"
)

var fixedNow = time.Date(2026, time.January, 28, 15, 30, 0, 0, time.UTC)

func testEngine() *Engine {
	return NewEngine(func() time.Time { return fixedNow })
}

func today() civil.Date {
	return civil.DateOf(fixedNow)
}

func validAdHoc() models.FormModel {
	m := models.NewFormModel(models.ModeAdHoc, today())
	m.Amount = "1000"
	m.MaturityDate = today().AddDays(30).String()
	m.MaturityInstruction = string(models.InstructionEncashment)
	m.FundingAccountID = "A1"
	m.RepaymentAccountID = "A3"
	return m
}

func TestValidateForm_AdHocValid(t *testing.T) {
	errs := testEngine().ValidateForm(validAdHoc())
	assert.Empty(t, errs)
}

func TestValidateForm_DealModeChecksOnlyDealFields(t *testing.T) {
	m := models.NewFormModel(models.ModeDealReferenced, today())
	m.Amount = "-5"
	m.MaturityDate = "not-a-date"
	m.StartDate = ""

	errs := testEngine().ValidateForm(m)

	require.Contains(t, errs, string(models.FieldReferenceNumber))
	assert.Equal(t, "Reference number is required", errs[string(models.FieldReferenceNumber)])
	assert.NotContains(t, errs, string(models.FieldAmount))
	assert.NotContains(t, errs, string(models.FieldStartDate))
	assert.NotContains(t, errs, string(models.FieldMaturityDate))
	assert.Contains(t, errs, string(models.FieldFundingAccount))
	assert.Contains(t, errs, string(models.FieldMaturityInstruction))
}

func TestValidateForm_RemarksOnlyWhenPresent(t *testing.T) {
	m := validAdHoc()
	assert.NotContains(t, testEngine().ValidateForm(m), string(models.FieldRemarks))

	m.Remarks = strings.Repeat("x", 501)
	errs := testEngine().ValidateForm(m)
	assert.Equal(t, "Remarks must be no more than 500 characters", errs[string(models.FieldRemarks)])

	m.Remarks = strings.Repeat("x", 500)
	assert.Empty(t, testEngine().ValidateForm(m))
}

func TestValidateField_MaturityWindowBoundaries(t *testing.T) {
	e := testEngine()
	m := validAdHoc()

	tests := []struct {
		name string
		days int
		want string
	}{
		{"same day", 0, "Maturity date must be after start date"},
		{"six days", 6, "Maturity date must be at least 7 days from today"},
		{"seven days", 7, ""},
		{"a year", 365, ""},
		{"past a year", 366, "Maturity date cannot exceed 365 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := today().AddDays(tt.days).String()
			assert.Equal(t, tt.want, e.ValidateField(models.FieldMaturityDate, value, m))
		})
	}
}

func TestValidateField_WindowCountsFromTodayNotStart(t *testing.T) {
	m := validAdHoc()
	// a start date in the past must not stretch the window
	m.StartDate = today().AddDays(-10).String()
	value := today().AddDays(5).String()

	msg := testEngine().ValidateField(models.FieldMaturityDate, value, m)
	assert.Equal(t, "Maturity date must be at least 7 days from today", msg)
}

func TestValidateField_MaturityAcrossMonthBoundary(t *testing.T) {
	e := NewEngine(func() time.Time { return time.Date(2026, time.January, 31, 9, 0, 0, 0, time.UTC) })
	m := models.NewFormModel(models.ModeAdHoc, civil.Date{Year: 2026, Month: time.January, Day: 31})

	assert.Equal(t, "", e.ValidateField(models.FieldMaturityDate, "2026-02-07", m))
	assert.NotEmpty(t, e.ValidateField(models.FieldMaturityDate, "2026-02-06", m))
}

func TestValidateField_Amount(t *testing.T) {
	e := testEngine()
	m := validAdHoc()

	assert.Equal(t, "Amount is required", e.ValidateField(models.FieldAmount, "", m))
	assert.Equal(t, "Amount must be greater than 0", e.ValidateField(models.FieldAmount, "abc", m))
	assert.Equal(t, "Amount must be at least 1", e.ValidateField(models.FieldAmount, "0", m))
	assert.Equal(t, "Amount must be at least 1", e.ValidateField(models.FieldAmount, "-10.5", m))
	assert.Equal(t, "Amount must be at least 1", e.ValidateField(models.FieldAmount, "0.99", m))
	assert.Equal(t, "", e.ValidateField(models.FieldAmount, "1", m))
	assert.Equal(t, "", e.ValidateField(models.FieldAmount, "1000.50", m))
}

func TestValidateField_ReferenceNumber(t *testing.T) {
	e := testEngine()
	m := models.NewFormModel(models.ModeDealReferenced, today())

	assert.Equal(t, "", e.ValidateField(models.FieldReferenceNumber, "DEAL123", m))
	assert.Equal(t, "Reference number format is invalid", e.ValidateField(models.FieldReferenceNumber, "DEAL-123", m))
	assert.Equal(t, "Reference number must be no more than 50 characters",
		e.ValidateField(models.FieldReferenceNumber, strings.Repeat("A", 51), m))
}

func TestValidateField_MaturityInstruction(t *testing.T) {
	e := testEngine()
	m := validAdHoc()

	assert.Equal(t, "Maturity instruction is required", e.ValidateField(models.FieldMaturityInstruction, "", m))
	assert.Contains(t, e.ValidateField(models.FieldMaturityInstruction, "REINVEST", m), "must be one of")
	assert.Equal(t, "", e.ValidateField(models.FieldMaturityInstruction, "PRINCIPAL_ROLLOVER", m))
}

func TestMapRemoteErrors(t *testing.T) {
	errs := MapRemoteErrors([]models.APIError{
		{Field: "amount", Code: "deposit.amount.exceeds-balance"},
		{Field: "dealReference", Code: "Invalid deal reference"},
		{Field: "remarks", Code: "something.unexpected"},
	})

	assert.Equal(t, models.FieldErrors{
		"amount":          "Amount exceeds available balance",
		"referenceNumber": "Deal reference number is invalid or expired",
		"remarks":         GenericMessage,
	}, errs)
}

func TestMapRemoteErrors_LaterWinsForSameField(t *testing.T) {
	errs := MapRemoteErrors([]models.APIError{
		{Field: "amount", Code: "deposit.amount.exceeds-balance"},
		{Field: "amount", Code: "deposit.duplicate-request"},
	})
	assert.Equal(t, "A similar deposit request already exists", errs["amount"])
}

func TestFieldErrorsMergeKeepsOtherFields(t *testing.T) {
	local := models.FieldErrors{"remarks": "Remarks must be no more than 500 characters"}
	local.Merge(MapRemoteErrors([]models.APIError{{Field: "amount", Code: "deposit.amount.exceeds-balance"}}))

	assert.Len(t, local, 2)
	assert.Equal(t, "Amount exceeds available balance", local["amount"])
}
