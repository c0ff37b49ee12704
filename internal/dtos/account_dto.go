package dtos

// DeleteAccountRequest is the phrase-confirmed erasure body. No "required"
// binding tag on purpose: an absent or empty confirmation must surface as a
// confirmation mismatch, not as a JSON binding error.
type DeleteAccountRequest struct {
	Confirmation string `json:"confirmation"`
}

// DeleteAccountByEmailRequest is the email-confirmed erasure body. The value
// must equal the caller's verified email exactly.
type DeleteAccountByEmailRequest struct {
	ConfirmEmail string `json:"confirmEmail"`
}
