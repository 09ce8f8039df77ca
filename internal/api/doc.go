// Package api implements the request pipeline every soulnest resource call
// goes through.
//
// A [Dispatcher] turns a method, path and [RequestOptions] into one HTTP
// exchange with the backend. For each call it:
//
//   - builds the URL and query string from [RequestOptions.Params] and [RequestOptions.Query]
//   - injects credentials: a bearer token, or in admin mode the admin API key
//     sealed against the server public key
//   - runs the request interceptors of its [Pipeline] in registration order
//   - bounds the call with the configured timeout, combined with the caller's context
//   - retries transport failures with exponential backoff when the method is retryable
//   - parses the JSON body and unwraps the {success, data, message} envelope
//   - runs the response interceptors
//
// # Retry Behavior
//
// Only methods listed in [RetryPolicy.Methods] are retried (GET, PUT, DELETE,
// HEAD and OPTIONS by default). The delay before retry n is
//
//	min(MaxDelay, InitialDelay * BackoffFactor^(n-1))
//
// with no jitter. Parse, business, encryption and abort failures are never
// retried.
//
// # Error Handling
//
// Every terminal failure is an *apierrors.Error. Use errors.Is with the
// sentinels in package apierrors:
//
//	if errors.Is(err, apierrors.ErrBusiness) {
//	    // the server answered success=false
//	}
//
// # Thread Safety
//
// [Dispatcher], [ConfigStore], [Pipeline] and [PublicKeyCache] are safe for
// concurrent use.
package api
