// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/atelier/internal/notion"
)

// maxQueryPages bounds pagination against a misbehaving upstream cursor.
const maxQueryPages = 50

// NotionSettings configures a [NotionSource].
type NotionSettings struct {
	APIKey          string
	WorksDatabaseID string
	BaseURL         string
	Version         string
	RecordURL       string
	HTTPClient      *http.Client
}

// NotionSource is the production [Source]: the Data API for structured rows,
// the page-record API for page content.
type NotionSource struct {
	apiKey     string
	databaseID string
	data       *notion.Client
	records    *notion.RecordClient
}

// NewNotionSource constructs a source. Missing settings are not an error here;
// they surface as [ErrNotConfigured] when the operation that needs them runs.
func NewNotionSource(settings NotionSettings) *NotionSource {
	return &NotionSource{
		apiKey:     settings.APIKey,
		databaseID: settings.WorksDatabaseID,
		data: notion.NewClient(settings.APIKey, notion.ClientOptions{
			HTTPClient: settings.HTTPClient,
			BaseURL:    settings.BaseURL,
			Version:    settings.Version,
		}),
		records: notion.NewRecordClient(settings.HTTPClient, settings.RecordURL),
	}
}

// Configured returns [ErrNotConfigured] naming the first missing setting.
func (source *NotionSource) Configured() error {
	if source.databaseID == "" {
		return fmt.Errorf("%w: NOTION_WORKS_DB_ID is not set", ErrNotConfigured)
	}
	if source.apiKey == "" {
		return fmt.Errorf("%w: NOTION_API_KEY is not set", ErrNotConfigured)
	}
	return nil
}

// QueryWorks implements [Source]. All result pages are followed so callers
// always see the complete row set.
func (source *NotionSource) QueryWorks(ctx context.Context, query notion.QueryRequest) ([]notion.Page, error) {
	if err := source.Configured(); err != nil {
		return nil, err
	}

	query.PageSize = notion.MaxPageSize

	var pages []notion.Page
	for i := 0; i < maxQueryPages; i++ {
		response, err := source.data.QueryDatabase(ctx, source.databaseID, query)
		if err != nil {
			return nil, err
		}

		pages = append(pages, response.Results...)

		if !response.HasMore || response.NextCursor == nil || *response.NextCursor == "" {
			return pages, nil
		}
		query.StartCursor = *response.NextCursor
	}

	return nil, fmt.Errorf("content: works query exceeded %d result pages", maxQueryPages)
}

// FetchPageContent implements [Source].
func (source *NotionSource) FetchPageContent(ctx context.Context, pageID string) (*notion.RecordMap, error) {
	return source.records.LoadPage(ctx, pageID)
}
