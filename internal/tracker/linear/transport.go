package linear

import "net/http"

// authTransport adds the API key and remembers the last response status.
// Linear expects the raw key in Authorization, without a scheme.
type authTransport struct {
	apiKey     string
	base       http.RoundTripper
	lastStatus int
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", t.apiKey)

	t.lastStatus = 0
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.lastStatus = resp.StatusCode
	return resp, nil
}
