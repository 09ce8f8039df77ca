// Package crypto seals short secrets, such as the admin API key, against a
// public key published by the server.
//
// # Algorithms
//
// Two sealing schemes are supported:
//
//   - RSA-OAEP with SHA-256 over a PKIX (SPKI) RSA public key. This is the
//     format served by /api/security/public-key and the default.
//
//   - ML-KEM-768 (NIST FIPS 203) key encapsulation combined with
//     HKDF-SHA-512 and AES-256-GCM. Used when the server publishes a raw
//     ML-KEM-768 encapsulation key instead of an RSA key.
//
// [Auto] inspects the published key and picks the matching scheme.
//
// # Encoding
//
// Public keys are accepted as standard or URL-safe base64, with or without
// padding, or as a PEM block. Sealed output is always standard base64 with
// padding so it can be placed in an HTTP header.
//
// Keys are imported on every call. Nothing in this package caches key
// material; the caller owns caching of the published key.
package crypto
