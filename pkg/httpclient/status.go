package httpclient

import (
	"fmt"
	"strings"
)

const maxSnippetLen = 512

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d body: %s", e.StatusCode, e.Body)
}

// CheckStatus returns a *StatusError unless resp carries a 2xx status.
func CheckStatus(resp Response) error {
	if resp == nil {
		return fmt.Errorf("nil http response")
	}
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}
	return &StatusError{StatusCode: code, Body: Snippet(resp.Body())}
}

// Snippet trims a response body down to something safe to log.
func Snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if len(s) > maxSnippetLen {
		return s[:maxSnippetLen] + "..."
	}
	return s
}
