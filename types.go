package soulnest

import (
	"github.com/soulnest/client-go/internal/api"
	"github.com/soulnest/client-go/internal/credentials"
	"github.com/soulnest/client-go/internal/crypto"
)

// Config is a snapshot of the client configuration.
type Config = api.Config

// RetryPolicy controls how failed attempts are retried.
type RetryPolicy = api.RetryPolicy

// Defaults.
const (
	DefaultBaseURL       = api.DefaultBaseURL
	DefaultTimeout       = api.DefaultTimeout
	DefaultRetries       = api.DefaultRetries
	DefaultInitialDelay  = api.DefaultInitialDelay
	DefaultMaxDelay      = api.DefaultMaxDelay
	DefaultBackoffFactor = api.DefaultBackoffFactor
)

// Query is an ordered set of query parameters.
type Query = api.Query

// NewQuery builds a Query from alternating keys and values.
func NewQuery(kv ...any) *Query {
	return api.NewQuery(kv...)
}

// Envelope is a parsed response body.
type Envelope = api.Envelope

// EnvelopeKind classifies a parsed response body.
type EnvelopeKind = api.EnvelopeKind

// Envelope kinds.
const (
	RawPassthrough  = api.RawPassthrough
	EnvelopeSuccess = api.EnvelopeSuccess
	EnvelopeFailure = api.EnvelopeFailure
)

// UnwrapFunc extracts the payload from a success envelope.
type UnwrapFunc = api.UnwrapFunc

// Unwrap functions.
var (
	// UnwrapData returns the envelope's data member. It is the default.
	UnwrapData UnwrapFunc = api.UnwrapData
	// UnwrapEnvelope returns the whole envelope.
	UnwrapEnvelope UnwrapFunc = api.UnwrapEnvelope
)

// RequestContext is the outgoing request seen by request interceptors.
type RequestContext = api.RequestContext

// ResponseContext is the processed response seen by response interceptors.
type ResponseContext = api.ResponseContext

// RequestInterceptor transforms an outgoing request.
type RequestInterceptor = api.RequestInterceptor

// ResponseInterceptor transforms a processed response.
type ResponseInterceptor = api.ResponseInterceptor

// Transport performs one HTTP exchange. *http.Client satisfies it.
type Transport = api.Transport

// TransportFunc adapts a function to Transport.
type TransportFunc = api.TransportFunc

// RawBody is a request body sent as is with its own content type.
type RawBody = api.RawBody

// Encrypter seals a plaintext against the server public key.
type Encrypter = crypto.Encrypter

// Encrypters.
type (
	// RSAOAEP seals with RSA-OAEP and SHA-256. It is the default.
	RSAOAEP = crypto.RSAOAEP
	// MLKEMSeal seals with ML-KEM-768, HKDF-SHA-512 and AES-256-GCM.
	MLKEMSeal = crypto.MLKEMSeal
	// AutoEncrypter picks a scheme from the format of the published key.
	AutoEncrypter = crypto.Auto
)

// CredentialStorage persists the bearer token and admin API key.
type CredentialStorage = credentials.Storage

// RedisClient is the subset of a go-redis client used for credential storage.
type RedisClient = credentials.RedisClient

// NewMemoryStorage returns a CredentialStorage that lives for the process.
func NewMemoryStorage() CredentialStorage {
	return credentials.NewMemoryStorage()
}

// NewFileStorage returns a CredentialStorage backed by a JSON file.
func NewFileStorage(path string) CredentialStorage {
	return credentials.NewFileStorage(path)
}

// NewRedisStorage returns a CredentialStorage backed by Redis. Keys are
// stored under prefix.
func NewRedisStorage(client RedisClient, prefix string) CredentialStorage {
	return credentials.NewRedisStorage(client, credentials.WithKeyPrefix(prefix))
}
