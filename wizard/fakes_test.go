package wizard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/satheeshds/termdeposit/models"
)

var fixedNow = time.Date(2026, time.January, 28, 9, 0, 0, 0, time.UTC)

func testToday() civil.Date { return civil.DateOf(fixedNow) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAccounts() []models.Account {
	return []models.Account{
		{AccountID: "A1", Name: "Current AED", AvailableBalance: decimal.NewFromInt(250000), CurrencyCode: "AED", Status: "Active", ProductCode: "CCA01"},
		{AccountID: "A2", Name: "Current USD", AvailableBalance: decimal.NewFromInt(90000), CurrencyCode: "USD", Status: "Active", ProductCode: "CCA02"},
		{AccountID: "A3", Name: "Savings AED", AvailableBalance: decimal.NewFromInt(1200), CurrencyCode: "AED", Status: "Active", ProductCode: "CCA03"},
		{AccountID: "A4", Name: "Payroll AED", AvailableBalance: decimal.NewFromInt(500), CurrencyCode: "AED", Status: "Active", ProductCode: "CCA04"},
	}
}

func testDeal() models.DealRecord {
	return models.DealRecord{
		Amount:             decimal.NewFromInt(50000),
		Currency:           "AED",
		FundingAccountID:   "A1",
		RepaymentAccountID: "A3",
		StartDate:          testToday(),
		MaturityDate:       testToday().AddDays(90),
		NumberOfDays:       90,
		StandardRate:       decimal.NewNullDecimal(decimal.RequireFromString("4.5")),
		MaturityAmount:     decimal.RequireFromString("50554.79"),
	}
}

// fakeService records every call. A gate blocks the matching call until closed.
type fakeService struct {
	mu sync.Mutex

	accounts    []models.Account
	accountsErr error

	deals     map[string]models.DealRecord
	dealErrs  map[string]error
	dealGates map[string]chan struct{}
	dealCalls []string

	validateErr   error
	validateGate  chan struct{}
	validateCalls []models.DepositPayload

	rate      models.RatePreview
	rateErr   error
	rateCalls []models.RateInquiryRequest

	createResult  models.CreateResult
	createErr     error
	createCalls   []models.DepositPayload
	createCtxErrs []error
}

func newFakeService() *fakeService {
	return &fakeService{
		accounts:  testAccounts(),
		deals:     map[string]models.DealRecord{"DEAL1": testDeal()},
		dealErrs:  map[string]error{},
		dealGates: map[string]chan struct{}{},
		rate: models.RatePreview{
			InterestRate:   decimal.RequireFromString("3.75"),
			MaturityAmount: decimal.RequireFromString("1003.08"),
			MaturityDate:   testToday().AddDays(30),
		},
		createResult: models.CreateResult{Reference: "DEP123", Status: "CREATED"},
	}
}

func wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeService) GetAccounts(ctx context.Context) ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts, f.accountsErr
}

func (f *fakeService) DealInquiry(ctx context.Context, dealID, customerKey string) (models.DealRecord, error) {
	f.mu.Lock()
	f.dealCalls = append(f.dealCalls, dealID)
	gate := f.dealGates[dealID]
	f.mu.Unlock()

	if err := wait(ctx, gate); err != nil {
		return models.DealRecord{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.dealErrs[dealID]; err != nil {
		return models.DealRecord{}, err
	}
	deal, ok := f.deals[dealID]
	if !ok {
		return models.DealRecord{}, errors.New("deal not found")
	}
	return deal, nil
}

func (f *fakeService) ValidateDeposit(ctx context.Context, payload models.DepositPayload) error {
	f.mu.Lock()
	f.validateCalls = append(f.validateCalls, payload)
	gate := f.validateGate
	f.mu.Unlock()

	if err := wait(ctx, gate); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateErr
}

func (f *fakeService) RateInquiry(ctx context.Context, req models.RateInquiryRequest) (models.RatePreview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rateCalls = append(f.rateCalls, req)
	return f.rate, f.rateErr
}

func (f *fakeService) CreateDeposit(ctx context.Context, payload models.DepositPayload) (models.CreateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, payload)
	f.createCtxErrs = append(f.createCtxErrs, ctx.Err())
	if f.createErr != nil {
		return models.CreateResult{}, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeService) calls() (deals []string, validates, rates, creates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.dealCalls...), len(f.validateCalls), len(f.rateCalls), len(f.createCalls)
}

type fakeRecorder struct {
	mu          sync.Mutex
	submissions []models.Submission
	ctxErrs     []error
	err         error
}

func (r *fakeRecorder) RecordSubmission(ctx context.Context, s models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions = append(r.submissions, s)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
	return r.err
}

func (r *fakeRecorder) recorded() []models.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Submission(nil), r.submissions...)
}

func testOptions(rec SubmissionRecorder) Options {
	return Options{
		CustomerKey: "CUSTKEY001",
		Debounce:    10 * time.Millisecond,
		Now:         func() time.Time { return fixedNow },
		Logger:      testLogger(),
		Recorder:    rec,
	}
}
