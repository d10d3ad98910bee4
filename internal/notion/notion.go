// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notion is the transport layer for the Notion content workspace.

Notion exposes two incompatible surfaces and this package speaks both:

  - Data API (api.notion.com/v1): structured database queries with filters and
    sorts. Used to list and look up works. See [Client].
  - Record API (www.notion.so/api/v3): the flat record map a page renderer needs
    to draw the full nested block tree. See [RecordClient].

Nothing here knows about works, slugs or locales. Normalisation into display
records lives in the content package.
*/
package notion

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// # Defaults

const (
	// DefaultBaseURL is the official Data API root.
	DefaultBaseURL = "https://api.notion.com/v1"

	// DefaultRecordURL is the record API root used by page renderers.
	DefaultRecordURL = "https://www.notion.so/api/v3"

	// DefaultVersion is the Notion-Version header sent to the Data API.
	DefaultVersion = "2022-06-28"

	// HeaderVersion carries the Data API version.
	HeaderVersion = "Notion-Version"
)

// # Identifier Normalisation

// FormatID rewrites a bare 32 character hex identifier into the dashed
// 8-4-4-4-12 form the Data API expects in URL paths. Any other input,
// including an already dashed identifier, is returned unchanged.
func FormatID(id string) string {
	if len(id) != 32 || strings.Contains(id, "-") {
		return id
	}

	// uuid.Parse accepts the 32 char form; it doubles as a hex check.
	if _, err := uuid.Parse(id); err != nil {
		return id
	}

	return id[0:8] + "-" + id[8:12] + "-" + id[12:16] + "-" + id[16:20] + "-" + id[20:]
}

// # Transport

// headerTransport stamps fixed headers onto every outgoing request.
type headerTransport struct {
	base   http.RoundTripper
	header http.Header
}

func (transport *headerTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	// Clone so the caller's request is never mutated.
	cloned := request.Clone(request.Context())
	for key, values := range transport.header {
		for _, value := range values {
			cloned.Header.Set(key, value)
		}
	}

	base := transport.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(cloned)
}

// withHeaders returns a shallow copy of client whose transport adds header.
func withHeaders(client *http.Client, header http.Header) *http.Client {
	if client == nil {
		client = &http.Client{}
	}
	copied := *client
	copied.Transport = &headerTransport{base: client.Transport, header: header}
	return &copied
}
