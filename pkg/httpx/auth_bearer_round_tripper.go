package httpx

import (
	"fmt"
	"net/http"
)

// AuthBearerRoundTripper attaches a static bearer token to every request.
// Tokens are operator-issued and long-lived; a 401 is surfaced to the caller
// rather than retried.
type AuthBearerRoundTripper struct {
	next  http.RoundTripper
	token string
}

func NewAuthBearerRoundTripper(
	next http.RoundTripper,
	token string,
) AuthBearerRoundTripper {
	return AuthBearerRoundTripper{
		next:  next,
		token: token,
	}
}

func (rt AuthBearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+rt.token)

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
