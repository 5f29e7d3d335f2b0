package handlers

import (
	"net/http"

	"github.com/satheeshds/termdeposit/accounts"
	"github.com/satheeshds/termdeposit/models"
)

// AccountOption is one selectable account with its display label.
type AccountOption struct {
	models.Account
	Label string `json:"label"`
}

// AccountChoices lists the funding and repayment candidates of a wizard.
type AccountChoices struct {
	Funding   []AccountOption `json:"funding"`
	Repayment []AccountOption `json:"repayment"`
}

func options(list []models.Account) []AccountOption {
	out := make([]AccountOption, 0, len(list))
	for _, a := range list {
		out = append(out, AccountOption{Account: a, Label: accounts.Display(a)})
	}
	return out
}

// ListWizardAccounts lists the accounts a wizard can use
// @Summary      List wizard accounts
// @Description  Eligible funding accounts, and repayment accounts sharing the selected funding account's currency. Loads the catalog if it is not loaded yet.
// @Tags         wizards
// @Produce      json
// @Param        id   path      string  true  "Wizard ID"
// @Success      200  {object}  Response{data=AccountChoices}
// @Failure      404  {object}  Response{error=string}
// @Failure      502  {object}  Response{error=string}
// @Router       /wizards/{id}/accounts [get]
// @Security     BasicAuth
func ListWizardAccounts(w http.ResponseWriter, r *http.Request) {
	wz, ok := wizardFromRequest(w, r)
	if !ok {
		return
	}
	if !wz.Snapshot().AccountsLoaded {
		if err := wz.LoadAccounts(r.Context()); err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
	}
	s := wz.Snapshot()
	writeJSON(w, http.StatusOK, AccountChoices{
		Funding:   options(s.FundingAccounts),
		Repayment: options(s.RepaymentAccounts),
	})
}
