package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satheeshds/termdeposit/models"
)

func TestReduce_SetFieldReplacesOneField(t *testing.T) {
	m := models.NewFormModel(models.ModeAdHoc, testToday())

	got := Reduce(m, SetField{Field: models.FieldAmount, Value: "abc"}, testToday())

	assert.Equal(t, "abc", got.Amount)
	assert.Equal(t, m.StartDate, got.StartDate)
	assert.Empty(t, m.Amount, "input model must not change")
}

func TestReduce_SetDealData(t *testing.T) {
	m := models.NewFormModel(models.ModeDealReferenced, testToday())
	m.ReferenceNumber = "DEAL1"
	deal := testDeal()

	got := Reduce(m, SetDealData{Deal: deal}, testToday())

	require.NotNil(t, got.ResolvedDeal)
	assert.Equal(t, "DEAL1", got.ReferenceNumber)
	assert.Equal(t, "A1", got.FundingAccountID)
	assert.Equal(t, "A3", got.RepaymentAccountID)
	assert.Equal(t, "50000", got.Amount)
	assert.Equal(t, "2026-01-28", got.StartDate)
	assert.Equal(t, "2026-04-28", got.MaturityDate)
	assert.Equal(t, 90, got.NumberOfDays())
}

func TestReduce_SetDealDataWithoutRepayment(t *testing.T) {
	m := models.NewFormModel(models.ModeDealReferenced, testToday())
	m.RepaymentAccountID = "A4"
	deal := testDeal()
	deal.RepaymentAccountID = ""

	got := Reduce(m, SetDealData{Deal: deal}, testToday())

	assert.Empty(t, got.RepaymentAccountID)
}

func TestReduce_SetPreviewDataTouchesNothingElse(t *testing.T) {
	m := models.NewFormModel(models.ModeAdHoc, testToday())
	m.Amount = "1000"
	m.FundingAccountID = "A1"
	preview := models.RatePreview{MaturityDate: testToday().AddDays(30)}

	got := Reduce(m, SetPreviewData{Preview: preview}, testToday())

	require.NotNil(t, got.RatePreview)
	got.RatePreview = nil
	assert.Equal(t, m, got)
}

func TestReduce_ToggleModeIsIdempotent(t *testing.T) {
	m := models.NewFormModel(models.ModeAdHoc, testToday())
	m.Amount = "1000"
	m.Remarks = "note"

	once := Reduce(m, ToggleMode{Mode: models.ModeDealReferenced}, testToday())
	twice := Reduce(once, ToggleMode{Mode: models.ModeDealReferenced}, testToday())

	assert.Equal(t, once, twice)
	assert.Equal(t, models.ModeDealReferenced, once.Mode)
	assert.Empty(t, once.Amount)
	assert.Empty(t, once.Remarks)
	assert.Equal(t, "2026-01-28", once.StartDate)
}

func TestReduce_Reset(t *testing.T) {
	m := models.NewFormModel(models.ModeDealReferenced, testToday())
	m.ReferenceNumber = "DEAL1"
	deal := testDeal()
	m.ResolvedDeal = &deal

	got := Reduce(m, Reset{}, testToday().AddDays(1))

	assert.Equal(t, models.NewFormModel(models.ModeAdHoc, testToday().AddDays(1)), got)
}

func TestActionNames(t *testing.T) {
	for want, a := range map[string]Action{
		"SET_FIELD":        SetField{},
		"SET_DEAL_DATA":    SetDealData{},
		"SET_PREVIEW_DATA": SetPreviewData{},
		"TOGGLE_MODE":      ToggleMode{},
		"RESET":            Reset{},
	} {
		assert.Equal(t, want, a.Name())
	}
}

func TestValidateTransition(t *testing.T) {
	assert.NoError(t, validateTransition(PhaseEditing, PhasePreviewing))
	assert.NoError(t, validateTransition(PhasePreviewing, PhaseCompleted))
	assert.NoError(t, validateTransition(PhasePreviewing, PhaseEditing))
	assert.ErrorIs(t, validateTransition(PhaseEditing, PhaseCompleted), ErrIllegalTransition)
	assert.ErrorIs(t, validateTransition(PhaseCompleted, PhaseEditing), ErrIllegalTransition)
	assert.ErrorIs(t, validateTransition(Phase("BOGUS"), PhaseEditing), ErrIllegalTransition)
}

func TestReduce_ClearDealData(t *testing.T) {
	m := Reduce(models.NewFormModel(models.ModeDealReferenced, testToday()), SetDealData{Deal: testDeal()}, testToday())
	m.ReferenceNumber = "DEAL2"
	m.MaturityInstruction = string(models.InstructionRollover)
	m.Remarks = "keep"

	got := Reduce(m, clearDealData{}, testToday())

	assert.Nil(t, got.ResolvedDeal)
	assert.Empty(t, got.FundingAccountID)
	assert.Empty(t, got.RepaymentAccountID)
	assert.Empty(t, got.Amount)
	assert.Empty(t, got.MaturityDate)
	assert.Equal(t, "2026-01-28", got.StartDate)
	assert.Equal(t, "DEAL2", got.ReferenceNumber)
	assert.Equal(t, string(models.InstructionRollover), got.MaturityInstruction)
	assert.Equal(t, "keep", got.Remarks)
	assert.NotNil(t, m.ResolvedDeal, "input model must not change")

	plain := models.NewFormModel(models.ModeDealReferenced, testToday())
	plain.FundingAccountID = "A1"
	assert.Equal(t, plain, Reduce(plain, clearDealData{}, testToday()), "no deal, nothing to clear")
}
