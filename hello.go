package soulnest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Hello calls the server test endpoint and returns its greeting. The
// endpoint answers with plain text, which is taken from the parse failure
// rather than reported as an error.
func (c *Client) Hello(ctx context.Context, opts ...RequestOption) (string, error) {
	opts = append(opts, WithUnwrapHook(UnwrapEnvelope))

	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodGet, "/api/test/hello", &raw, opts...); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Code == CodeJSONParse {
			if details, ok := apiErr.Details.(*ParseDetails); ok {
				return details.Body, nil
			}
		}
		return "", err
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}
	return string(raw), nil
}
