package soulnest

import (
	"errors"

	"github.com/soulnest/client-go/internal/api"
	"github.com/soulnest/client-go/internal/apierrors"
	"github.com/soulnest/client-go/internal/crypto"
)

// Error is the normalized failure returned by every dispatched request.
// Use errors.As to inspect it, or errors.Is with the Err* sentinels below.
type Error = apierrors.Error

// ErrorCode identifies the kind of an Error.
type ErrorCode = apierrors.Code

// Error codes.
const (
	CodeEncryption   = apierrors.CodeEncryption
	CodeJSONParse    = apierrors.CodeJSONParse
	CodeBusiness     = apierrors.CodeBusiness
	CodeTimeoutAbort = apierrors.CodeTimeoutAbort
	CodeNetwork      = apierrors.CodeNetwork
)

// ParseDetails is the Details value of a JSON_PARSE_ERROR.
type ParseDetails = apierrors.ParseDetails

// AbortDetails is the Details value of a TIMEOUT_ABORT.
type AbortDetails = apierrors.AbortDetails

// Sentinel errors for errors.Is() checks
var (
	// ErrEncryption matches ENCRYPTION_ERROR failures.
	ErrEncryption = apierrors.ErrEncryption

	// ErrJSONParse matches JSON_PARSE_ERROR failures.
	ErrJSONParse = apierrors.ErrJSONParse

	// ErrBusiness matches BUSINESS_ERROR failures.
	ErrBusiness = apierrors.ErrBusiness

	// ErrTimeoutAbort matches TIMEOUT_ABORT failures.
	ErrTimeoutAbort = apierrors.ErrTimeoutAbort

	// ErrNetwork matches NETWORK_ERROR failures.
	ErrNetwork = apierrors.ErrNetwork

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrPublicKeyFetch is returned when the server public key cannot be fetched.
	ErrPublicKeyFetch = api.ErrPublicKeyFetch

	// ErrEncryptionFailed is returned when a value cannot be sealed with the public key.
	ErrEncryptionFailed = crypto.ErrEncryptionFailed

	// ErrInvalidMethod is returned for HTTP methods the client does not send.
	ErrInvalidMethod = api.ErrInvalidMethod

	// ErrMissingPassword is returned by Users.Register and Users.Login for an empty password.
	ErrMissingPassword = errors.New("password is required")
)

// CodeOf returns the ErrorCode of err if it is (or wraps) an *Error.
func CodeOf(err error) (ErrorCode, bool) {
	return apierrors.CodeOf(err)
}

// BusinessEnvelope returns the envelope carried by a BUSINESS_ERROR.
func BusinessEnvelope(err error) (*Envelope, bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Code != CodeBusiness {
		return nil, false
	}
	env, ok := apiErr.Details.(*Envelope)
	return env, ok
}
