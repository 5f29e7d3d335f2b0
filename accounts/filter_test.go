package accounts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satheeshds/termdeposit/models"
)

func account(id, currency string) models.Account {
	return models.Account{
		AccountID:        id,
		Name:             "Current " + id,
		AvailableBalance: decimal.NewFromInt(5000),
		CurrencyCode:     currency,
		Status:           models.AccountStatusActive,
		ProductCode:      "CCA01",
	}
}

func ids(list []models.Account) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.AccountID)
	}
	return out
}

func TestEligible_TwoCurrencies(t *testing.T) {
	raw := []models.Account{account("A2", "USD"), account("A1", "AED")}

	assert.Equal(t, []string{"A1", "A2"}, ids(Eligible(raw, "")))
	assert.Equal(t, []string{"A2"}, ids(Eligible(raw, "USD")))
}

func TestEligible_ExcludesIneligible(t *testing.T) {
	dormant := account("B1", "AED")
	dormant.Status = "Dormant"
	gbp := account("B2", "GBP")
	savings := account("B3", "AED")
	savings.ProductCode = "SAV01"
	overdraft := account("B4", "AED")
	overdraft.RawProductCode = "ODAZA"
	frozen := account("B5", "AED")
	frozen.DebitFrozen = true
	creditFrozen := account("B6", "AED")
	creditFrozen.CreditFrozen = true

	raw := []models.Account{dormant, gbp, savings, overdraft, frozen, creditFrozen}

	assert.Equal(t, []string{"B6"}, ids(Eligible(raw, "")))
}

func TestEligible_Idempotent(t *testing.T) {
	raw := []models.Account{account("C3", "EUR"), account("C1", "SAR"), account("C2", "AED")}

	once := Eligible(raw, "")
	twice := Eligible(once, "")

	assert.Equal(t, once, twice)
}

func TestSort_ActiveFirst(t *testing.T) {
	inactive := account("A0", "AED")
	inactive.Status = "Closed"
	list := []models.Account{account("Z9", "AED"), inactive, account("A5", "AED")}

	Sort(list)

	assert.Equal(t, []string{"A5", "Z9", "A0"}, ids(list))
}

func TestRepaymentCandidates(t *testing.T) {
	raw := []models.Account{account("A1", "AED"), account("A2", "USD"), account("A3", "AED")}
	eligible := Eligible(raw, "")

	assert.Equal(t, []string{"A1", "A3"}, ids(RepaymentCandidates("A3", eligible, raw)))
	assert.Empty(t, RepaymentCandidates("", eligible, raw))
	assert.Empty(t, RepaymentCandidates("missing", eligible, raw))
}

func TestCheckSelection(t *testing.T) {
	frozen := account("F1", "AED")
	frozen.DebitFrozen = true
	closed := account("C1", "AED")
	closed.Status = "Closed"
	raw := []models.Account{account("A1", "AED"), frozen, closed}

	assert.Equal(t, "", CheckSelection(raw, "A1", true))
	assert.Equal(t, "Selected account not found", CheckSelection(raw, "nope", true))
	assert.Equal(t, "Selected account is not active", CheckSelection(raw, "C1", true))
	assert.Equal(t, "Selected account is frozen for debits", CheckSelection(raw, "F1", true))
	assert.Equal(t, "", CheckSelection(raw, "F1", false))
}

func TestLookups(t *testing.T) {
	raw := []models.Account{account("A1", "AED")}

	assert.Equal(t, "AED", Currency(raw, "A1"))
	assert.Equal(t, "", Currency(raw, "A9"))
	require.True(t, Balance(raw, "A1").Equal(decimal.NewFromInt(5000)))
	assert.True(t, Balance(raw, "A9").IsZero())
}

func TestDisplay(t *testing.T) {
	a := account("A1", "AED")
	a.AvailableBalance = decimal.RequireFromString("1234567.5")

	assert.Equal(t, "Current A1 (A1) - AED 1,234,567.50", Display(a))
}
