package services

import "errors"

var (
	// ErrMissingProviderToken: the session carried no provider access token.
	// Not retriable — the user authenticated without granting the needed
	// scope and has to redo consent.
	ErrMissingProviderToken = errors.New("provider session is missing an access token, re-run the provider consent flow")

	// ErrProviderTokenInvalid: the provider rejected the access token.
	ErrProviderTokenInvalid = errors.New("provider rejected the access token")

	// ErrResourceNotFound: the caller has no stored document to grant
	// access to.
	ErrResourceNotFound = errors.New("no stored document for this account")

	// ErrResourceAccessFailed: the storage layer failed while listing or
	// signing. Safe for the caller to retry; this service never does.
	ErrResourceAccessFailed = errors.New("storage access failed")

	// ErrConfirmationMismatch: the submitted confirmation text did not
	// exactly match what was required.
	ErrConfirmationMismatch = errors.New("confirmation text does not match")
)
