package httpclient

import "context"

// Response is the part of an HTTP response the lookup path reads.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts outbound GETs so the tax API client can be tested against fakes.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
