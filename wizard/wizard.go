// Package wizard holds the deposit form state machine: the reducer, the deal
// reference resolver and the preview/submit orchestration around them.
//
// A Wizard serializes every mutation through one lock. Remote calls run outside
// the lock and their results are applied only if the model they were computed
// from is still current.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/satheeshds/termdeposit/accounts"
	"github.com/satheeshds/termdeposit/models"
	"github.com/satheeshds/termdeposit/validation"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrReadOnlyField = errors.New("field is read-only")
	ErrFieldLocked   = errors.New("field is not editable in the current mode")
	ErrInvalidMode   = errors.New("invalid mode")
	ErrModeMismatch  = errors.New("action does not apply to the current mode")
	ErrCompleted     = errors.New("wizard already completed")
	ErrSubmitting    = errors.New("submission in progress")
)

// DefaultCurrency is used when neither a deal nor a funding account decides.
const DefaultCurrency = "AED"

// DepositService is the remote backend the wizard talks to.
type DepositService interface {
	DealInquirer
	GetAccounts(ctx context.Context) ([]models.Account, error)
	ValidateDeposit(ctx context.Context, payload models.DepositPayload) error
	RateInquiry(ctx context.Context, req models.RateInquiryRequest) (models.RatePreview, error)
	CreateDeposit(ctx context.Context, payload models.DepositPayload) (models.CreateResult, error)
}

// SubmissionRecorder keeps a journal of create attempts.
type SubmissionRecorder interface {
	RecordSubmission(ctx context.Context, s models.Submission) error
}

// Options configures a Wizard. Zero values pick the defaults.
type Options struct {
	CustomerKey     string
	DefaultCurrency string
	Debounce        time.Duration
	Now             func() time.Time
	Logger          *slog.Logger
	Recorder        SubmissionRecorder
}

// Busy reports which remote work is outstanding.
type Busy struct {
	ResolvingDeal bool `json:"resolving_deal"`
	Previewing    bool `json:"previewing"`
	Submitting    bool `json:"submitting"`
}

// Derived holds values computed from the model, never stored.
type Derived struct {
	NumberOfDays   int                 `json:"number_of_days"`
	Currency       string              `json:"currency"`
	Amount         decimal.Decimal     `json:"amount"`
	MaturityAmount decimal.NullDecimal `json:"maturity_amount"`
	InterestRate   decimal.NullDecimal `json:"interest_rate"`
	MaturityDate   string              `json:"maturity_date"`
	FundingBalance decimal.Decimal     `json:"funding_balance"`
}

// Snapshot is a consistent read of a wizard for the UI layer.
type Snapshot struct {
	ID                string             `json:"id"`
	CustomerKey       string             `json:"customer_key"`
	Model             models.FormModel   `json:"model"`
	Errors            models.FieldErrors `json:"errors"`
	Phase             Phase              `json:"phase"`
	Consent           bool               `json:"consent"`
	Resolver          ResolverState      `json:"resolver"`
	Busy              Busy               `json:"busy"`
	Derived           Derived            `json:"derived"`
	AccountsLoaded    bool               `json:"accounts_loaded"`
	FundingAccounts   []models.Account   `json:"funding_accounts"`
	RepaymentAccounts []models.Account   `json:"repayment_accounts"`
	Reference         string             `json:"reference,omitempty"`
	Status            string             `json:"status,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

// Wizard is one deposit request in progress.
type Wizard struct {
	id              string
	customerKey     string
	defaultCurrency string
	svc             DepositService
	engine          *validation.Engine
	resolver        *Resolver
	recorder        SubmissionRecorder
	logger          *slog.Logger
	now             func() time.Time
	createdAt       time.Time

	mu         sync.Mutex
	model      models.FormModel
	errors     models.FieldErrors
	phase      Phase
	consent    bool
	revision   uint64
	previewing bool
	submitting bool
	reference  string
	status     string
	accounts   []models.Account
	loaded     bool
}

// New returns a wizard in AD_HOC mode starting today.
func New(id string, svc DepositService, opts Options) *Wizard {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = DefaultCurrency
	}
	logger := opts.Logger.With("wizard_id", id)

	w := &Wizard{
		id:              id,
		customerKey:     opts.CustomerKey,
		defaultCurrency: opts.DefaultCurrency,
		svc:             svc,
		engine:          validation.NewEngine(opts.Now),
		recorder:        opts.Recorder,
		logger:          logger,
		now:             opts.Now,
		createdAt:       opts.Now(),
		errors:          models.FieldErrors{},
		phase:           PhaseEditing,
	}
	w.model = models.NewFormModel(models.ModeAdHoc, w.today())
	w.resolver = NewResolver(svc, opts.CustomerKey, opts.Debounce, logger)
	w.resolver.OnResult(w.onResolution)
	return w
}

// ID returns the wizard identifier.
func (w *Wizard) ID() string { return w.id }

// Close stops background lookups.
func (w *Wizard) Close() {
	w.resolver.Close()
}

func (w *Wizard) today() civil.Date {
	return civil.DateOf(w.now())
}

// LoadAccounts fetches the account catalog.
func (w *Wizard) LoadAccounts(ctx context.Context) error {
	list, err := w.svc.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("loading accounts: %w", err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.accounts = list
	w.loaded = true
	w.logger.Debug("accounts loaded", "count", len(list))
	return nil
}

// Dispatch applies one action through the single serialized path.
func (w *Wizard) Dispatch(a Action) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dispatchLocked(a)
}

// SetField is Dispatch(SetField{...}).
func (w *Wizard) SetField(field models.Field, value string) error {
	return w.Dispatch(SetField{Field: field, Value: value})
}

// ToggleMode is Dispatch(ToggleMode{...}).
func (w *Wizard) ToggleMode(mode models.Mode) error {
	return w.Dispatch(ToggleMode{Mode: mode})
}

// Reset is Dispatch(Reset{}).
func (w *Wizard) Reset() error {
	return w.Dispatch(Reset{})
}

func (w *Wizard) dispatchLocked(a Action) error {
	if w.phase == PhaseCompleted {
		return ErrCompleted
	}
	if w.submitting {
		return ErrSubmitting
	}

	switch act := a.(type) {
	case SetField:
		if err := w.checkEditable(act.Field); err != nil {
			return err
		}
		prev := w.model.Value(act.Field)
		w.apply(act)
		w.leavePreview()
		switch act.Field {
		case models.FieldFundingAccount:
			w.enforceRepaymentCurrency()
		case models.FieldReferenceNumber:
			if act.Value != prev && w.model.ResolvedDeal != nil {
				w.apply(clearDealData{})
			}
			if res := w.resolver.SetInput(act.Value); res.State == ResolverIdle {
				delete(w.errors, string(models.FieldReferenceNumber))
			}
		}
	case SetDealData:
		if w.model.Mode != models.ModeDealReferenced {
			return ErrModeMismatch
		}
		w.apply(act)
		w.leavePreview()
	case SetPreviewData:
		if w.model.Mode != models.ModeAdHoc {
			return ErrModeMismatch
		}
		w.apply(act)
	case ToggleMode:
		if !act.Mode.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidMode, act.Mode)
		}
		w.hardReset(act)
	case Reset:
		w.hardReset(act)
	default:
		return fmt.Errorf("unsupported action %T", a)
	}
	return nil
}

func (w *Wizard) apply(a Action) {
	w.model = Reduce(w.model, a, w.today())
	w.revision++
	w.logger.Debug("form action applied", "action", a.Name(), "revision", w.revision)
}

func (w *Wizard) hardReset(a Action) {
	w.apply(a)
	w.errors = models.FieldErrors{}
	w.phase = PhaseEditing
	w.consent = false
	w.resolver.SetInput("")
}

// leavePreview drops back to editing when the previewed model changes.
func (w *Wizard) leavePreview() {
	if w.phase == PhasePreviewing {
		w.phase = PhaseEditing
		w.consent = false
	}
}

func (w *Wizard) checkEditable(f models.Field) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if f == models.FieldStartDate {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, f)
	}
	switch w.model.Mode {
	case models.ModeDealReferenced:
		if f == models.FieldAmount || f == models.FieldMaturityDate {
			return fmt.Errorf("%w: %s", ErrFieldLocked, f)
		}
	case models.ModeAdHoc:
		if f == models.FieldReferenceNumber {
			return fmt.Errorf("%w: %s", ErrFieldLocked, f)
		}
	}
	return nil
}

// enforceRepaymentCurrency clears the repayment account after a funding change
// that breaks the shared-currency rule.
func (w *Wizard) enforceRepaymentCurrency() {
	if w.model.RepaymentAccountID == "" {
		return
	}
	funding := accounts.Currency(w.accounts, w.model.FundingAccountID)
	repayment := accounts.Currency(w.accounts, w.model.RepaymentAccountID)
	if funding != repayment {
		w.apply(SetField{Field: models.FieldRepaymentAccount, Value: ""})
	}
}

// onResolution applies a resolver result if it still matches the model.
func (w *Wizard) onResolution(res Resolution) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.resolver.IsCurrent(res.Seq) ||
		w.model.Mode != models.ModeDealReferenced ||
		w.model.ReferenceNumber != res.Input ||
		w.phase == PhaseCompleted || w.submitting {
		w.logger.Debug("deal resolution discarded", "reference", res.Input)
		return
	}

	switch res.State {
	case ResolverResolved:
		if res.Deal == nil {
			return
		}
		w.apply(SetDealData{Deal: *res.Deal})
		w.leavePreview()
		delete(w.errors, string(models.FieldReferenceNumber))
	case ResolverFailed:
		w.errors[string(models.FieldReferenceNumber)] = res.Error
	}
}

func (w *Wizard) currencyLocked() string {
	if w.model.ResolvedDeal != nil && w.model.ResolvedDeal.Currency != "" {
		return w.model.ResolvedDeal.Currency
	}
	if c := accounts.Currency(w.accounts, w.model.FundingAccountID); c != "" {
		return c
	}
	return w.defaultCurrency
}

func (w *Wizard) dealCurrencyLocked() string {
	if w.model.ResolvedDeal != nil {
		return w.model.ResolvedDeal.Currency
	}
	return ""
}

// Snapshot returns a consistent copy of the wizard state.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	res := w.resolver.Current()
	funding := accounts.Eligible(w.accounts, w.dealCurrencyLocked())

	return Snapshot{
		ID:          w.id,
		CustomerKey: w.customerKey,
		Model:       w.model,
		Errors:      w.errors.Clone(),
		Phase:       w.phase,
		Consent:     w.consent,
		Resolver:    res.State,
		Busy: Busy{
			ResolvingDeal: res.State == ResolverInFlight,
			Previewing:    w.previewing,
			Submitting:    w.submitting,
		},
		Derived: Derived{
			NumberOfDays:   w.model.NumberOfDays(),
			Currency:       w.currencyLocked(),
			Amount:         w.model.EffectiveAmount(),
			MaturityAmount: w.model.EffectiveMaturityAmount(),
			InterestRate:   w.model.EffectiveRate(),
			MaturityDate:   w.model.EffectiveMaturityDate(),
			FundingBalance: accounts.Balance(w.accounts, w.model.FundingAccountID),
		},
		AccountsLoaded:    w.loaded,
		FundingAccounts:   funding,
		RepaymentAccounts: accounts.RepaymentCandidates(w.model.FundingAccountID, funding, w.accounts),
		Reference:         w.reference,
		Status:            w.status,
		CreatedAt:         w.createdAt,
	}
}
