// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notion

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response is kept on [APIError].
const maxErrorBody = 4 << 10

// APIError reports a non-2xx response from either Notion surface.
type APIError struct {
	// Endpoint is the request path that failed.
	Endpoint string
	// Status is the HTTP status code.
	Status int
	// Body is the (truncated) response body, typically Notion's JSON error.
	Body string
}

func (e *APIError) Error() string {
	if e == nil {
		return "notion: api error"
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("notion: api error %d", e.Status)
	}
	return fmt.Sprintf("notion: api error %d: %s", e.Status, body)
}

// IsNotFound reports whether err is an [APIError] with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// newAPIError drains up to maxErrorBody bytes of response into an [APIError].
func newAPIError(endpoint string, response *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
	return &APIError{
		Endpoint: endpoint,
		Status:   response.StatusCode,
		Body:     string(body),
	}
}
