package httpclient

import "context"

// Response is the part of an HTTP reply the pool client reads: the raw JSON
// body and the status code checked by CheckStatus.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client performs authenticated GETs against the pool API. Headers carry the
// account token; implementations return transport failures as-is and leave
// status handling to the caller.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
