// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content is the gateway between the site and its Notion workspace.

It lists works, resolves a slug to a single work, fetches the rich content
tree of a page and maps logical static pages (cv, statement, ...) to Notion
page ids.

Architecture:

  - [Source] is the capability the gateway needs from upstream: structured
    queries and page content. [NotionSource] implements it over both Notion
    APIs; tests substitute fakes.
  - [Gateway] owns the policy: filters, sorting, normalisation into
    [WorkSummary], and how each operation reacts to failure.
  - Normalisation is table driven (see fields.go), so schema changes touch
    data, not control flow.

The gateway keeps no state between calls. Freshness is the revalidation
cache's concern, not this package's.
*/
package content

import (
	"context"
	"errors"

	"github.com/taibuivan/atelier/internal/notion"
)

// ErrNotConfigured reports a missing required setting (API key or database id).
var ErrNotConfigured = errors.New("content: not configured")

// Source is the upstream capability used by the [Gateway].
type Source interface {
	// QueryWorks runs a query against the works database and returns every
	// matching row in upstream order.
	QueryWorks(ctx context.Context, query notion.QueryRequest) ([]notion.Page, error)

	// FetchPageContent returns the full record map of a page.
	FetchPageContent(ctx context.Context, pageID string) (*notion.RecordMap, error)
}
