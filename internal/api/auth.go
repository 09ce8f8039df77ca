package api

import "net/http"

// HeaderAdminAPIKey carries the sealed admin API key in admin mode.
const HeaderAdminAPIKey = "X-Admin-API-Key"

// Credentials supplies the secrets injected into requests.
type Credentials interface {
	BearerToken() string
	AdminAPIKey() string
}

// Encrypter seals plaintext against a public key.
type Encrypter interface {
	Encrypt(plaintext, publicKey string) (string, error)
}

// SetBearer sets the Authorization header for token.
func SetBearer(h http.Header, token string) {
	h.Set("Authorization", "Bearer "+token)
}
