package soulnest

import "context"

// Signatures issues and verifies signed application tokens.
type Signatures interface {
	Create(ctx context.Context, req *SignatureCreate) (*Signature, error)
	Verify(ctx context.Context, req *SignatureVerify) (*SignatureResult, error)
}

type signaturesImpl struct {
	client *Client
}

// Signatures returns the application token operations.
func (c *Client) Signatures() Signatures {
	return &signaturesImpl{client: c}
}

func (s *signaturesImpl) Create(ctx context.Context, req *SignatureCreate) (*Signature, error) {
	return post[*Signature](ctx, s.client, "/api/signature/create", req)
}

func (s *signaturesImpl) Verify(ctx context.Context, req *SignatureVerify) (*SignatureResult, error) {
	return post[*SignatureResult](ctx, s.client, "/api/signature/verify", req)
}
