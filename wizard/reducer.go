package wizard

import (
	"cloud.google.com/go/civil"

	"github.com/satheeshds/termdeposit/models"
)

// Action is one of the five form mutations, plus the wizard's own clearDealData
// follow-up. The set is closed: only the types in this file implement it.
type Action interface {
	Name() string
	apply(m models.FormModel, today civil.Date) models.FormModel
}

// SetField replaces a single field. It does not validate.
type SetField struct {
	Field models.Field
	Value string
}

// SetDealData merges a resolved deal into the model.
type SetDealData struct {
	Deal models.DealRecord
}

// SetPreviewData stores an ad-hoc rate quote and touches nothing else.
type SetPreviewData struct {
	Preview models.RatePreview
}

// ToggleMode resets the whole model to defaults under a new mode.
type ToggleMode struct {
	Mode models.Mode
}

// Reset restores the defaults.
type Reset struct{}

// clearDealData drops a resolved deal and the fields it filled in. The wizard
// issues it when the reference it was resolved from changes.
type clearDealData struct{}

func (SetField) Name() string       { return "SET_FIELD" }
func (SetDealData) Name() string    { return "SET_DEAL_DATA" }
func (SetPreviewData) Name() string { return "SET_PREVIEW_DATA" }
func (ToggleMode) Name() string     { return "TOGGLE_MODE" }
func (Reset) Name() string          { return "RESET" }
func (clearDealData) Name() string  { return "CLEAR_DEAL_DATA" }

func (a SetField) apply(m models.FormModel, _ civil.Date) models.FormModel {
	return m.With(a.Field, a.Value)
}

func (a SetDealData) apply(m models.FormModel, _ civil.Date) models.FormModel {
	deal := a.Deal
	m.ResolvedDeal = &deal
	m.FundingAccountID = deal.FundingAccountID
	m.RepaymentAccountID = deal.RepaymentAccountID
	m.Amount = deal.Amount.String()
	m.StartDate = deal.StartDate.String()
	m.MaturityDate = deal.MaturityDate.String()
	return m
}

func (a SetPreviewData) apply(m models.FormModel, _ civil.Date) models.FormModel {
	preview := a.Preview
	m.RatePreview = &preview
	return m
}

func (a ToggleMode) apply(_ models.FormModel, today civil.Date) models.FormModel {
	return models.NewFormModel(a.Mode, today)
}

func (Reset) apply(_ models.FormModel, today civil.Date) models.FormModel {
	return models.NewFormModel(models.ModeAdHoc, today)
}

func (clearDealData) apply(m models.FormModel, today civil.Date) models.FormModel {
	if m.ResolvedDeal == nil {
		return m
	}
	m.ResolvedDeal = nil
	m.FundingAccountID = ""
	m.RepaymentAccountID = ""
	m.Amount = ""
	m.StartDate = today.String()
	m.MaturityDate = ""
	return m
}

// Reduce applies a to m. today stamps the start date on resets.
func Reduce(m models.FormModel, a Action, today civil.Date) models.FormModel {
	return a.apply(m, today)
}
