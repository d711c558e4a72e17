package http

import "net/http"

type headerTransport struct {
	header    string
	value     string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.value != "" {
		reqCopy.Header.Set(t.header, t.value)
	}

	return t.transport.RoundTrip(reqCopy)
}

func WithAuthToken(token string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			header:    "Authorization",
			value:     "Bearer " + token,
			transport: rt,
		}
	})
}

// WithAPIKeyHeader sends the key in a provider-specific header on every
// request (e.g. the PLLUM gateway's Ocp-Apim-Subscription-Key).
func WithAPIKeyHeader(header, key string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			header:    header,
			value:     key,
			transport: rt,
		}
	})
}
