// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"log/slog"

	"github.com/taibuivan/atelier/internal/locale"
	"github.com/taibuivan/atelier/internal/notion"
	"github.com/taibuivan/atelier/internal/platform/ctxutil"
)

// Gateway implements the content operations on top of a [Source].
type Gateway struct {
	source      Source
	staticPages StaticPages
	logger      *slog.Logger
}

// NewGateway constructs a gateway. A nil logger selects [slog.Default].
func NewGateway(source Source, staticPages StaticPages, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	if staticPages == nil {
		staticPages = StaticPages{}
	}
	return &Gateway{source: source, staticPages: staticPages, logger: logger}
}

// # Operations

// ListWorks returns the works published in loc, ordered by the Order
// property ascending. Failures are logged and returned to the caller.
func (gateway *Gateway) ListWorks(ctx context.Context, loc locale.Locale) ([]WorkSummary, error) {
	filter := notion.SelectEquals(PropertyLanguage, loc.String())
	query := notion.QueryRequest{
		Filter: &filter,
		Sorts: []notion.Sort{
			{Property: PropertyOrder, Direction: notion.Ascending},
		},
	}

	pages, err := gateway.source.QueryWorks(ctx, query)
	if err != nil {
		gateway.log(ctx).ErrorContext(ctx, "works_list_failed",
			slog.String("locale", loc.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	works := make([]WorkSummary, 0, len(pages))
	for _, page := range pages {
		works = append(works, newWorkSummary(page))
	}
	return works, nil
}

// FindWorkBySlug returns the first work in loc whose Slug equals slug.
//
// Every failure, upstream errors included, reads as "not found"; upstream
// errors are logged so they stay visible to operators.
func (gateway *Gateway) FindWorkBySlug(ctx context.Context, slug string, loc locale.Locale) (WorkSummary, bool) {
	filter := notion.And(
		notion.SelectEquals(PropertyLanguage, loc.String()),
		notion.RichTextEquals(PropertySlug, slug),
	)
	query := notion.QueryRequest{Filter: &filter}

	pages, err := gateway.source.QueryWorks(ctx, query)
	if err != nil {
		gateway.log(ctx).WarnContext(ctx, "work_lookup_failed",
			slog.String("slug", slug),
			slog.String("locale", loc.String()),
			slog.String("error", err.Error()),
		)
		return WorkSummary{}, false
	}

	// Duplicate slugs resolve to the first row in upstream order.
	if len(pages) == 0 {
		return WorkSummary{}, false
	}
	return newWorkSummary(pages[0]), true
}

// PageContent returns the record map of pageID. Failures are logged with the
// page id and returned unchanged.
func (gateway *Gateway) PageContent(ctx context.Context, pageID string) (*notion.RecordMap, error) {
	recordMap, err := gateway.source.FetchPageContent(ctx, pageID)
	if err != nil {
		gateway.log(ctx).ErrorContext(ctx, "page_content_failed",
			slog.String("page_id", pageID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return recordMap, nil
}

// StaticPageID maps a logical static page to its configured page id.
func (gateway *Gateway) StaticPageID(slug string, loc locale.Locale) (string, bool) {
	return gateway.staticPages.Lookup(slug, loc)
}

func (gateway *Gateway) log(ctx context.Context) *slog.Logger {
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		return gateway.logger.With(slog.String("request_id", requestID))
	}
	return gateway.logger
}
