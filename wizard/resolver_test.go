package wizard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satheeshds/termdeposit/models"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

type resultSink struct {
	mu      sync.Mutex
	results []Resolution
}

func (s *resultSink) add(r Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

func (s *resultSink) all() []Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Resolution(nil), s.results...)
}

func newTestResolver(svc *fakeService) (*Resolver, *resultSink) {
	r := NewResolver(svc, "CUSTKEY001", 10*time.Millisecond, testLogger())
	sink := &resultSink{}
	r.OnResult(sink.add)
	return r, sink
}

func TestResolver_DebounceSendsOnlyLastInput(t *testing.T) {
	svc := newFakeService()
	svc.deals["AB"] = testDeal()
	r, sink := newTestResolver(svc)
	defer r.Close()

	assert.Equal(t, ResolverPending, r.SetInput("A").State)
	assert.Equal(t, ResolverPending, r.SetInput("AB").State)

	require.Eventually(t, func() bool { return r.Current().State == ResolverResolved }, waitFor, tick)

	deals, _, _, _ := svc.calls()
	assert.Equal(t, []string{"AB"}, deals)
	results := sink.all()
	require.Len(t, results, 1)
	assert.Equal(t, "AB", results[0].Input)
	require.NotNil(t, results[0].Deal)
	assert.Equal(t, "A1", results[0].Deal.FundingAccountID)
}

func TestResolver_BlankInputGoesIdle(t *testing.T) {
	svc := newFakeService()
	r, _ := newTestResolver(svc)
	defer r.Close()

	r.SetInput("DEAL1")
	res := r.SetInput("   ")

	assert.Equal(t, ResolverIdle, res.State)
	assert.Empty(t, res.Error)

	time.Sleep(40 * time.Millisecond)
	deals, _, _, _ := svc.calls()
	assert.Empty(t, deals)
	assert.Equal(t, ResolverIdle, r.Current().State)
}

func TestResolver_StaleResponseIsDiscarded(t *testing.T) {
	svc := newFakeService()
	stale := testDeal()
	stale.FundingAccountID = "STALE"
	svc.deals["A"] = stale
	svc.deals["B"] = testDeal()
	gate := make(chan struct{})
	svc.dealGates["A"] = gate
	r, sink := newTestResolver(svc)
	defer r.Close()

	r.SetInput("A")
	require.Eventually(t, func() bool { return r.Current().State == ResolverInFlight }, waitFor, tick)

	r.SetInput("B")
	require.Eventually(t, func() bool { return r.Current().State == ResolverResolved }, waitFor, tick)

	close(gate)
	require.Eventually(t, func() bool {
		deals, _, _, _ := svc.calls()
		return len(deals) == 2
	}, waitFor, tick)
	time.Sleep(20 * time.Millisecond)

	cur := r.Current()
	assert.Equal(t, "B", cur.Input)
	require.NotNil(t, cur.Deal)
	assert.Equal(t, "A1", cur.Deal.FundingAccountID)
	for _, res := range sink.all() {
		assert.Equal(t, "B", res.Input)
	}
}

func TestResolver_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "known code is translated",
			err:  &models.RemoteError{StatusCode: 400, Errors: []models.APIError{{Field: "dealId", Code: "Invalid deal reference"}}},
			want: "Deal reference number is invalid or expired",
		},
		{
			name: "unknown code is shown as sent",
			err:  &models.RemoteError{StatusCode: 400, Errors: []models.APIError{{Field: "dealId", Code: "Deal has expired"}}},
			want: "Deal has expired",
		},
		{
			name: "first error wins",
			err: &models.RemoteError{StatusCode: 400, Errors: []models.APIError{
				{Field: "dealId", Code: "Pattern"},
				{Field: "dealId", Code: "Invalid deal reference"},
			}},
			want: "Invalid format or special characters not allowed",
		},
		{
			name: "unstructured failure",
			err:  errors.New("connection refused"),
			want: InvalidReferenceMessage,
		},
		{
			name: "structured without entries",
			err:  &models.RemoteError{StatusCode: 500},
			want: InvalidReferenceMessage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService()
			svc.dealErrs["BAD1"] = tt.err
			r, sink := newTestResolver(svc)
			defer r.Close()

			r.SetInput("BAD1")
			require.Eventually(t, func() bool { return r.Current().State == ResolverFailed }, waitFor, tick)

			assert.Equal(t, tt.want, r.Current().Error)
			assert.Nil(t, r.Current().Deal)
			require.Len(t, sink.all(), 1)
		})
	}
}

func TestResolver_CloseStopsPendingLookup(t *testing.T) {
	svc := newFakeService()
	r, _ := newTestResolver(svc)

	r.SetInput("DEAL1")
	r.Close()
	time.Sleep(40 * time.Millisecond)

	deals, _, _, _ := svc.calls()
	assert.Empty(t, deals)
}

func TestResolver_IsCurrent(t *testing.T) {
	r, _ := newTestResolver(newFakeService())
	defer r.Close()

	first := r.SetInput("A")
	assert.True(t, r.IsCurrent(first.Seq))
	second := r.SetInput("B")
	assert.False(t, r.IsCurrent(first.Seq))
	assert.True(t, r.IsCurrent(second.Seq))
}
