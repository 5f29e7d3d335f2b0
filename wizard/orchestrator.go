package wizard

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/satheeshds/termdeposit/accounts"
	"github.com/satheeshds/termdeposit/models"
	"github.com/satheeshds/termdeposit/validation"
)

// ErrNotPreviewing is returned for consent changes outside the preview step.
var ErrNotPreviewing = errors.New("wizard is not previewing")

// Notice is a user-facing message raised by a preview or submit attempt.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Outcome is the result of one preview or submit trigger. Failures are
// reported here and never returned as errors.
type Outcome struct {
	OK        bool    `json:"ok"`
	Phase     Phase   `json:"phase"`
	Reference string  `json:"reference,omitempty"`
	Notice    *Notice `json:"notice,omitempty"`
}

var (
	noticeInProgress = &Notice{Title: "Please Wait", Message: "A request is already in progress."}
	noticeValidation = &Notice{Title: "Validation Failed", Message: "Please review and fix the highlighted errors."}
	noticeDealError  = &Notice{Title: "Validation Failed", Message: "Please fix the deal reference error before previewing."}
	noticeDealWait   = &Notice{Title: "Validation Failed", Message: "Please wait for the deal reference to be verified."}
	noticeTerms      = &Notice{Title: "Terms Required", Message: "Please accept the terms and conditions to proceed."}
	noticeNoPreview  = &Notice{Title: "Preview Required", Message: "Please preview the deposit request before submitting."}
	noticeCompleted  = &Notice{Title: "Already Submitted", Message: "This deposit request has already been submitted."}
	noticePreviewErr = &Notice{Title: "Preview Failed", Message: "Unable to preview the deposit request. Please try again."}
	noticeSubmitErr  = &Notice{Title: "Submission Failed", Message: "There was an error submitting your deposit request. Please review and try again."}
	noticeDiscarded  = &Notice{Title: "Preview Discarded", Message: "The form changed while the preview was loading. Please preview again."}
)

const (
	// unresolvedReferenceMessage is set on referenceNumber while its lookup is pending.
	unresolvedReferenceMessage = "Deal reference has not been verified yet"

	repaymentCurrencyMessage = "Repayment account must be in the same currency as the funding account"
	dealCurrencyMessage      = "Funding account must be in the deal currency (%s)"
)

// BuildPayload assembles the validate/create body from a validated model.
func BuildPayload(m models.FormModel, currency string) models.DepositPayload {
	start, _ := civil.ParseDate(m.StartDate)
	p := models.DepositPayload{
		FundingAccountID:    m.FundingAccountID,
		RepaymentAccountID:  m.RepaymentAccountID,
		Currency:            currency,
		StartDate:           start,
		NumberOfDays:        m.NumberOfDays(),
		MaturityInstruction: models.MaturityInstruction(m.MaturityInstruction),
	}
	if m.Remarks != "" {
		remarks := m.Remarks
		p.Remarks = &remarks
	}
	switch m.Mode {
	case models.ModeDealReferenced:
		p.DealReference = m.ReferenceNumber
		if m.ResolvedDeal != nil {
			p.Amount = m.ResolvedDeal.Amount
		}
	default:
		amount, err := decimal.NewFromString(m.Amount)
		if err == nil {
			p.Amount = amount
		}
	}
	return p
}

// Preview validates the form locally and remotely and, in AD_HOC mode, fetches
// a rate quote. On success the wizard moves to PREVIEWING with consent cleared.
func (w *Wizard) Preview(ctx context.Context) Outcome {
	w.mu.Lock()
	if out, blocked := w.blockedLocked(); blocked {
		w.mu.Unlock()
		return out
	}
	if notice := w.gateLocked(); notice != nil {
		out := w.failLocked(notice)
		w.mu.Unlock()
		return out
	}
	payload := BuildPayload(w.model, w.currencyLocked())
	mode := w.model.Mode
	rev := w.revision
	w.previewing = true
	w.mu.Unlock()

	w.logger.Info("preview started", "mode", mode)
	preview, err := w.fetchPreview(ctx, mode, payload)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.previewing = false

	if w.revision != rev || w.phase == PhaseCompleted {
		w.logger.Debug("stale preview discarded", "revision", rev, "current", w.revision)
		return w.failLocked(noticeDiscarded)
	}
	if err != nil {
		w.logger.Info("preview failed", "error", err)
		return w.failLocked(w.remoteNoticeLocked(err, noticePreviewErr))
	}
	if preview != nil {
		w.apply(SetPreviewData{Preview: *preview})
	}
	if err := w.transitionLocked(PhasePreviewing); err != nil {
		return w.failLocked(noticePreviewErr)
	}
	w.errors = models.FieldErrors{}
	w.consent = false
	return Outcome{OK: true, Phase: w.phase}
}

// fetchPreview runs validate, then the rate inquiry. The rate inquiry is never
// sent when validation fails.
func (w *Wizard) fetchPreview(ctx context.Context, mode models.Mode, payload models.DepositPayload) (*models.RatePreview, error) {
	if err := w.svc.ValidateDeposit(ctx, payload); err != nil {
		return nil, fmt.Errorf("validate deposit: %w", err)
	}
	if mode != models.ModeAdHoc {
		return nil, nil
	}
	preview, err := w.svc.RateInquiry(ctx, models.RateInquiryRequest{
		Amount:       payload.Amount,
		NumberOfDays: payload.NumberOfDays,
		Currency:     payload.Currency,
		StartDate:    payload.StartDate,
	})
	if err != nil {
		return nil, fmt.Errorf("rate inquiry: %w", err)
	}
	return &preview, nil
}

// Submit creates the deposit request. It requires PREVIEWING and consent; a
// failed create keeps the wizard in PREVIEWING.
func (w *Wizard) Submit(ctx context.Context) Outcome {
	w.mu.Lock()
	if out, blocked := w.blockedLocked(); blocked {
		w.mu.Unlock()
		return out
	}
	if w.phase != PhasePreviewing {
		out := w.failLocked(noticeNoPreview)
		w.mu.Unlock()
		return out
	}
	if !w.consent {
		out := w.failLocked(noticeTerms)
		w.mu.Unlock()
		return out
	}
	if notice := w.gateLocked(); notice != nil {
		w.leavePreview()
		out := w.failLocked(notice)
		w.mu.Unlock()
		return out
	}
	payload := BuildPayload(w.model, w.currencyLocked())
	mode := w.model.Mode
	w.submitting = true
	w.mu.Unlock()

	w.logger.Info("submitting deposit request", "mode", mode, "amount", payload.Amount.String(), "currency", payload.Currency)
	// the backend may accept the request after the caller has gone away
	ctx = context.WithoutCancel(ctx)
	result, err := w.svc.CreateDeposit(ctx, payload)
	w.record(ctx, mode, payload, result, err)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if err != nil {
		w.logger.Error("deposit request failed", "error", err)
		var re *models.RemoteError
		if errors.As(err, &re) {
			w.errors.Merge(validation.MapRemoteErrors(re.Errors))
		}
		return w.failLocked(noticeSubmitErr)
	}
	if err := w.transitionLocked(PhaseCompleted); err != nil {
		return w.failLocked(noticeSubmitErr)
	}
	w.reference = result.Reference
	w.status = result.Status
	w.resolver.Close()
	w.logger.Info("deposit request submitted", "reference", result.Reference, "status", result.Status)
	return Outcome{
		OK:        true,
		Phase:     w.phase,
		Reference: w.reference,
		Notice: &Notice{
			Title:   "Success",
			Message: "Deposit request submitted successfully.\nReference: " + result.Reference,
		},
	}
}

// Edit returns from the preview to editing. Field values are kept.
func (w *Wizard) Edit() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseCompleted {
		return ErrCompleted
	}
	if w.submitting {
		return ErrSubmitting
	}
	if err := w.transitionLocked(PhaseEditing); err != nil {
		return err
	}
	w.consent = false
	return nil
}

// SetConsent records acceptance of the terms shown on the preview.
func (w *Wizard) SetConsent(accepted bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.phase == PhaseCompleted:
		return ErrCompleted
	case w.phase != PhasePreviewing:
		return ErrNotPreviewing
	}
	w.consent = accepted
	return nil
}

// blockedLocked short-circuits triggers on a completed or busy wizard.
func (w *Wizard) blockedLocked() (Outcome, bool) {
	switch {
	case w.phase == PhaseCompleted:
		return Outcome{Phase: w.phase, Reference: w.reference, Notice: noticeCompleted}, true
	case w.previewing || w.submitting:
		return Outcome{Phase: w.phase, Notice: noticeInProgress}, true
	}
	return Outcome{}, false
}

// gateLocked runs local validation into the error store and, in DEAL mode,
// requires a resolved deal for the current reference.
func (w *Wizard) gateLocked() *Notice {
	w.errors = w.engine.ValidateForm(w.model)
	w.checkAccountsLocked()
	if w.model.Mode == models.ModeDealReferenced {
		ref := string(models.FieldReferenceNumber)
		res := w.resolver.Current()
		switch {
		case res.State == ResolverFailed:
			w.errors[ref] = res.Error
			return noticeDealError
		case w.errors[ref] != "":
		case res.State != ResolverResolved || res.Input != w.model.ReferenceNumber || w.model.ResolvedDeal == nil:
			w.errors[ref] = unresolvedReferenceMessage
			return noticeDealWait
		}
	}
	if len(w.errors) > 0 {
		return noticeValidation
	}
	return nil
}

// checkAccountsLocked re-checks the selected accounts against the catalog,
// including currency agreement with each other and with a resolved deal.
func (w *Wizard) checkAccountsLocked() {
	if !w.loaded {
		return
	}
	checks := []struct {
		field       models.Field
		debitFrozen bool
	}{
		{models.FieldFundingAccount, true},
		{models.FieldRepaymentAccount, false},
	}
	for _, c := range checks {
		id := w.model.Value(c.field)
		if id == "" || w.errors[string(c.field)] != "" {
			continue
		}
		if msg := accounts.CheckSelection(w.accounts, id, c.debitFrozen); msg != "" {
			w.errors[string(c.field)] = msg
		}
	}

	fundingField := string(models.FieldFundingAccount)
	repaymentField := string(models.FieldRepaymentAccount)
	funding, ok := accounts.Find(w.accounts, w.model.FundingAccountID)
	if !ok || w.errors[fundingField] != "" {
		return
	}
	if deal := w.model.ResolvedDeal; deal != nil && deal.Currency != "" && funding.CurrencyCode != deal.Currency {
		w.errors[fundingField] = fmt.Sprintf(dealCurrencyMessage, deal.Currency)
		return
	}
	repayment, ok := accounts.Find(w.accounts, w.model.RepaymentAccountID)
	if ok && w.errors[repaymentField] == "" && repayment.CurrencyCode != funding.CurrencyCode {
		w.errors[repaymentField] = repaymentCurrencyMessage
	}
}

// remoteNoticeLocked merges structured remote errors into the store. Other
// failures leave field errors untouched and raise fallback.
func (w *Wizard) remoteNoticeLocked(err error, fallback *Notice) *Notice {
	var re *models.RemoteError
	if errors.As(err, &re) && len(re.Errors) > 0 {
		w.errors.Merge(validation.MapRemoteErrors(re.Errors))
		return noticeValidation
	}
	return fallback
}

func (w *Wizard) failLocked(n *Notice) Outcome {
	return Outcome{Phase: w.phase, Notice: n}
}

func (w *Wizard) transitionLocked(to Phase) error {
	if err := validateTransition(w.phase, to); err != nil {
		w.logger.Warn("phase change rejected", "from", w.phase, "to", to)
		return err
	}
	w.phase = to
	return nil
}

// record journals one create attempt. Journal failures are only logged.
func (w *Wizard) record(ctx context.Context, mode models.Mode, p models.DepositPayload, result models.CreateResult, createErr error) {
	if w.recorder == nil {
		return
	}
	s := models.Submission{
		ID:                  uuid.NewString(),
		WizardID:            w.id,
		Mode:                string(mode),
		FundingAccountID:    p.FundingAccountID,
		RepaymentAccountID:  p.RepaymentAccountID,
		Currency:            p.Currency,
		Amount:              p.Amount.String(),
		StartDate:           p.StartDate.String(),
		NumberOfDays:        p.NumberOfDays,
		MaturityInstruction: string(p.MaturityInstruction),
		CreatedAt:           w.now().UTC(),
	}
	if p.DealReference != "" {
		ref := p.DealReference
		s.DealReference = &ref
	}
	if createErr != nil {
		msg := createErr.Error()
		s.Status = models.SubmissionFailed
		s.Error = &msg
	} else {
		ref := result.Reference
		s.Reference = &ref
		s.Status = result.Status
	}
	if err := w.recorder.RecordSubmission(ctx, s); err != nil {
		w.logger.Error("failed to record submission", "error", err)
	}
}
