package services

// DeletePhrase is the literal a caller must type for the phrase-confirmed
// erasure entry point.
const DeletePhrase = "DELETE MY ACCOUNT"

// RequireExplicitConfirmation guards irreversible operations behind an exact
// string match: case-sensitive, no trimming, whitespace counts. It only
// protects against accidental single-click calls — a caller holding a valid
// credential is already authorized to erase their own account.
func RequireExplicitConfirmation(submitted, expected string) error {
	if submitted != expected {
		return ErrConfirmationMismatch
	}
	return nil
}
