package validation

import "github.com/satheeshds/termdeposit/models"

// GenericMessage is shown for remote codes missing from the code table.
const GenericMessage = "An error occurred. Please check your input."

var remoteMessages = map[string]string{
	"deposit.amount.exceeds-balance":         "Amount exceeds available balance",
	"deposit.maturityDate.exceeds-max-tenor": "Maturity date exceeds maximum allowed period",
	"Pattern":                                "Invalid format or special characters not allowed",
	"Invalid deal reference":                 "Deal reference number is invalid or expired",
	"deposit.duplicate-request":              "A similar deposit request already exists",
}

// The backend names some fields after its payload rather than the form.
var remoteFieldAliases = map[string]models.Field{
	"dealReference":    models.FieldReferenceNumber,
	"dealId":           models.FieldReferenceNumber,
	"fundingAccount":   models.FieldFundingAccount,
	"repaymentAccount": models.FieldRepaymentAccount,
	"depositAmount":    models.FieldAmount,
}

// FriendlyMessage translates one remote code.
func FriendlyMessage(code string) string {
	if msg, ok := LookupMessage(code); ok {
		return msg
	}
	return GenericMessage
}

// LookupMessage reports the table entry for code, if there is one.
func LookupMessage(code string) (string, bool) {
	msg, ok := remoteMessages[code]
	return msg, ok
}

// FormField maps a remote field name onto the form field it refers to.
func FormField(remote string) string {
	if f, ok := remoteFieldAliases[remote]; ok {
		return string(f)
	}
	return remote
}

// MapRemoteErrors translates remote (field, code) pairs into field messages.
// A later error for the same field overwrites an earlier one.
func MapRemoteErrors(apiErrors []models.APIError) models.FieldErrors {
	errs := make(models.FieldErrors, len(apiErrors))
	for _, e := range apiErrors {
		errs[FormField(e.Field)] = FriendlyMessage(e.Code)
	}
	return errs
}
