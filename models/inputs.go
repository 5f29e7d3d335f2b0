package models

import "strings"

// WizardInput is used for starting a wizard.
type WizardInput struct {
	CustomerKey string `json:"customer_key"`
}

func (w *WizardInput) Validate() string {
	if len(w.CustomerKey) > 64 {
		return "customer_key must be no more than 64 characters"
	}
	return ""
}

// FieldInput carries one edited field value.
type FieldInput struct {
	Value string `json:"value"`
}

// ModeInput is used for switching the wizard mode.
type ModeInput struct {
	Mode Mode `json:"mode"`
}

func (m *ModeInput) Validate() string {
	if !m.Mode.Valid() {
		return "mode must be one of: " + strings.Join([]string{string(ModeDealReferenced), string(ModeAdHoc)}, ", ")
	}
	return ""
}

// ConsentInput records acceptance of the terms shown on the preview.
type ConsentInput struct {
	Accepted bool `json:"accepted"`
}
