package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/satheeshds/termdeposit/models"
	"github.com/satheeshds/termdeposit/wizard"
)

// StepResult is returned by the preview and submit endpoints.
type StepResult struct {
	Outcome wizard.Outcome  `json:"outcome"`
	Wizard  wizard.Snapshot `json:"wizard"`
}

func wizardFromRequest(w http.ResponseWriter, r *http.Request) (*wizard.Wizard, bool) {
	wz, err := Wizards.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeWizardError(w, err)
		return nil, false
	}
	return wz, true
}

// CreateWizard starts a new deposit wizard
// @Summary      Create wizard
// @Description  Start a deposit wizard in AD_HOC mode and load the customer's accounts.
// @Tags         wizards
// @Accept       json
// @Produce      json
// @Param        wizard  body      models.WizardInput  false  "Customer key, defaults to the configured one"
// @Success      201     {object}  Response{data=wizard.Snapshot}
// @Failure      400     {object}  Response{error=string}
// @Router       /wizards [post]
// @Security     BasicAuth
func CreateWizard(w http.ResponseWriter, r *http.Request) {
	var input models.WizardInput
	// the body is optional
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	wz, err := Wizards.Create(r.Context(), input.CustomerKey)
	if err != nil {
		// the wizard stays usable; accounts are retried on demand
		slog.Warn("wizard created without accounts", "wizard_id", wz.ID(), "error", err)
	}
	writeJSON(w, http.StatusCreated, wz.Snapshot())
}

// GetWizard returns the current wizard state
// @Summary      Get wizard
// @Description  Get the form model, errors, phase, derived values and account choices.
// @Tags         wizards
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  Response{data=wizard.Snapshot}
// @Failure      404  {object}  Response{error=string}
// @Router       /wizards/{id} [get]
// @Security     BasicAuth
func GetWizard(w http.ResponseWriter, r *http.Request) {
	wz, ok := wizardFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

// DeleteWizard discards a wizard
// @Summary      Delete wizard
// @Tags         wizards
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  Response{data=string}
// @Failure      404  {object}  Response{error=string}
// @Router       /wizards/{id} [delete]
// @Security     BasicAuth
func DeleteWizard(w http.ResponseWriter, r *http.Request) {
	if err := Wizards.Delete(chi.URLParam(r, "id")); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, "deleted")
}

// SetWizardField edits one form field
// @Summary      Set field
// @Description  Replace one field value. Editing the funding account may clear the repayment account; editing the reference number starts a deal lookup.
// @Tags         wizards
// @Accept       json
// @Produce      json
// @Param        id     path      string             true  "Wizard ID"
// @Param        field  path      string             true  "Field name, e.g. amount"
// @Param        value  body      models.FieldInput  true  "New value"
// @Success      200    {object}  Response{data=wizard.Snapshot}
// @Failure      400    {object}  Response{error=string}
// @Failure      404    {object}  Response{error=string}
// @Failure      409    {object}  Response{error=string}
// @Router       /wizards/{id}/fields/{field} [put]
// @Security     BasicAuth
func SetWizardField(w http.ResponseWriter, r *http.Request) {
	wz, ok := wizardFromRequest(w, r)
	if !ok {
		return
	}
	var input models.FieldInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := wz.SetField(models.Field(chi.URLParam(r, "field")), input.Value); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

// ToggleWizardMode switches between deal-referenced and ad-hoc entry
// @Summary      Toggle mode
// @Description  Reset the form to defaults under the given mode.
// @Tags         wizards
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Wizard ID"
// @Param        mode  body      models.ModeInput  true  "Target mode"
// @Success      200   {object}  Response{data=wizard.Snapshot}
// @Failure      400   {object}  Response{error=string}
// @Failure      404   {object}  Response{error=string}
// @Failure      409   {object}  Response{error=string}
// @Router       /wizards/{id}/mode [post]
// @Security     BasicAuth
func ToggleWizardMode(w http.ResponseWriter, r *http.Request) {
	wz, ok := wizardFromRequest(w, r)
	if !ok {
		return
	}
	var input models.ModeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := wz.ToggleMode(input.Mode); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

// ResetWizard restores the defaults
// @Summary      Reset wizard
// @Tags         wizards
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  Response{data=wizard.Snapshot}
// @Failure      404  {object}  Response{error=string}
// @Failure      409  {object}  Response{error=string}
// @Router       /wizards/{id}/reset [post]
// @Security     BasicAuth
func ResetWizard(w http.ResponseWriter, r *http.Request) {
	wz, ok := wizardFromRequest(w, r)
	if !ok {
		return
	}
	if err := wz.Reset(); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

// PreviewWizard validates the form and fetches the preview
// @Summary      Preview deposit
// @Description  Validate locally and remotely; in AD_HOC mode also quote the rate. Failures are reported in the outcome notice.
// @Tags         wizards
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  Response{data=StepResult}
// @Failure      404  {object}  Response{error=string}
// @Router       /wizards/{id}/preview [post]
// @Security     BasicAuth
func PreviewWizard(w http.ResponseWriter, r *http.Request) {
	wz, ok := wizardFromRequest(w, r)
	if !ok {
		return
	}
	out := wz.Preview(r.Context())
	writeJSON(w, http.StatusOK, StepResult{Outcome: out, Wizard: wz.Snapshot()})
}

// EditWizard returns from the preview to editing
// @Summary      Back to editing
// @Tags         wizards
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  Response{data=wizard.Snapshot}
// @Failure      404  {object}  Response{error=string}
// @Failure      409  {object}  Response{error=string}
// @Router       /wizards/{id}/edit [post]
// @Security     BasicAuth
func EditWizard(w http.ResponseWriter, r *http.Request) {
	wz, ok := wizardFromRequest(w, r)
	if !ok {
		return
	}
	if err := wz.Edit(); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

// SetWizardConsent records acceptance of the terms
// @Summary      Set consent
// @Tags         wizards
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Wizard ID"
// @Param        consent  body      models.ConsentInput  true  "Consent"
// @Success      200      {object}  Response{data=wizard.Snapshot}
// @Failure      400      {object}  Response{error=string}
// @Failure      404      {object}  Response{error=string}
// @Failure      409      {object}  Response{error=string}
// @Router       /wizards/{id}/consent [post]
// @Security     BasicAuth
func SetWizardConsent(w http.ResponseWriter, r *http.Request) {
	wz, ok := wizardFromRequest(w, r)
	if !ok {
		return
	}
	var input models.ConsentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := wz.SetConsent(input.Accepted); err != nil {
		writeWizardError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wz.Snapshot())
}

// SubmitWizard creates the deposit request
// @Summary      Submit deposit
// @Description  Requires a preview and accepted terms. Failures are reported in the outcome notice.
// @Tags         wizards
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  Response{data=StepResult}
// @Failure      404  {object}  Response{error=string}
// @Router       /wizards/{id}/submit [post]
// @Security     BasicAuth
func SubmitWizard(w http.ResponseWriter, r *http.Request) {
	wz, ok := wizardFromRequest(w, r)
	if !ok {
		return
	}
	out := wz.Submit(r.Context())
	writeJSON(w, http.StatusOK, StepResult{Outcome: out, Wizard: wz.Snapshot()})
}
