package handlers

import "github.com/go-chi/chi/v5"

// Routes registers the API endpoints on r.
func Routes(r chi.Router) {
	// Wizards
	r.Post("/wizards", CreateWizard)
	r.Get("/wizards/{id}", GetWizard)
	r.Delete("/wizards/{id}", DeleteWizard)
	r.Get("/wizards/{id}/accounts", ListWizardAccounts)
	r.Put("/wizards/{id}/fields/{field}", SetWizardField)
	r.Post("/wizards/{id}/mode", ToggleWizardMode)
	r.Post("/wizards/{id}/reset", ResetWizard)
	r.Post("/wizards/{id}/preview", PreviewWizard)
	r.Post("/wizards/{id}/edit", EditWizard)
	r.Post("/wizards/{id}/consent", SetWizardConsent)
	r.Post("/wizards/{id}/submit", SubmitWizard)

	// Journal
	r.Get("/submissions", ListSubmissions)
}
