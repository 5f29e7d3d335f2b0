// Package accounts derives the funding and repayment account choices from the
// raw account catalog.
package accounts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/satheeshds/termdeposit/models"
)

var (
	// SupportedCurrencies are the currencies a deposit can be booked in.
	SupportedCurrencies = []string{"AED", "USD", "SAR", "EUR"}

	// EligibleProductFamily must appear in the product code of a funding account.
	EligibleProductFamily = "CCA"

	// ExcludedProducts are raw product codes never offered for deposits.
	ExcludedProducts = []string{"ODAZA"}
)

// IsEligible reports whether a can fund or receive a deposit.
func IsEligible(a models.Account) bool {
	return a.IsActive() &&
		slices.Contains(SupportedCurrencies, a.CurrencyCode) &&
		strings.Contains(a.ProductCode, EligibleProductFamily) &&
		!slices.Contains(ExcludedProducts, a.RawProductCode) &&
		!a.DebitFrozen
}

// Eligible returns the eligible accounts of raw, sorted. A non-empty currency
// additionally requires an exact currency match.
func Eligible(raw []models.Account, currency string) []models.Account {
	out := make([]models.Account, 0, len(raw))
	for _, a := range raw {
		if !IsEligible(a) {
			continue
		}
		if currency != "" && a.CurrencyCode != currency {
			continue
		}
		out = append(out, a)
	}
	Sort(out)
	return out
}

// RepaymentCandidates returns the eligible accounts sharing the funding account's
// currency. The funding currency is looked up in raw, so a funding account that
// has since dropped out of the eligible list still resolves.
func RepaymentCandidates(fundingID string, eligible, raw []models.Account) []models.Account {
	if fundingID == "" {
		return []models.Account{}
	}
	funding, ok := Find(raw, fundingID)
	if !ok {
		return []models.Account{}
	}
	out := make([]models.Account, 0, len(eligible))
	for _, a := range eligible {
		if a.CurrencyCode == funding.CurrencyCode {
			out = append(out, a)
		}
	}
	Sort(out)
	return out
}

// Sort orders accounts Active first, then by account id. The sort is stable.
func Sort(list []models.Account) {
	slices.SortStableFunc(list, func(a, b models.Account) int {
		if a.IsActive() != b.IsActive() {
			if a.IsActive() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.AccountID, b.AccountID)
	})
}

// Find looks an account up by id.
func Find(raw []models.Account, id string) (models.Account, bool) {
	for _, a := range raw {
		if a.AccountID == id {
			return a, true
		}
	}
	return models.Account{}, false
}

// Currency returns the currency of account id, or "" when unknown.
func Currency(raw []models.Account, id string) string {
	a, _ := Find(raw, id)
	return a.CurrencyCode
}

// Balance returns the available balance of account id, or zero when unknown.
func Balance(raw []models.Account, id string) decimal.Decimal {
	a, ok := Find(raw, id)
	if !ok {
		return decimal.Zero
	}
	return a.AvailableBalance
}

// CheckSelection explains why id cannot be selected, or returns "".
func CheckSelection(raw []models.Account, id string, checkDebitFrozen bool) string {
	a, ok := Find(raw, id)
	if !ok {
		return "Selected account not found"
	}
	if !a.IsActive() {
		return "Selected account is not active"
	}
	if checkDebitFrozen && a.DebitFrozen {
		return "Selected account is frozen for debits"
	}
	return ""
}

// Display renders an account for a picker, e.g. "Current (A1) - AED 1,500.00".
func Display(a models.Account) string {
	return fmt.Sprintf("%s (%s) - %s %s", a.Name, a.AccountID, a.CurrencyCode, groupThousands(a.AvailableBalance.StringFixed(2)))
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		return sign + b.String() + "." + frac
	}
	return sign + b.String()
}
