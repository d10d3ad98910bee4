// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/atelier/internal/content"
	"github.com/taibuivan/atelier/internal/locale"
	"github.com/taibuivan/atelier/internal/notion"
)

// fakeSource records queries and replays canned results.
type fakeSource struct {
	pages      []notion.Page
	err        error
	recordMap  *notion.RecordMap
	queries    []notion.QueryRequest
	contentIDs []string
}

func (source *fakeSource) QueryWorks(_ context.Context, query notion.QueryRequest) ([]notion.Page, error) {
	source.queries = append(source.queries, query)
	return source.pages, source.err
}

func (source *fakeSource) FetchPageContent(_ context.Context, pageID string) (*notion.RecordMap, error) {
	source.contentIDs = append(source.contentIDs, pageID)
	return source.recordMap, source.err
}

func titled(id, title, slug string) notion.Page {
	return notion.Page{ID: id, Properties: notion.NewProperties(
		"Name", notion.PropertyValue{Type: notion.PropertyTitle, Title: []notion.RichText{{PlainText: title}}},
		"Slug", notion.PropertyValue{Type: notion.PropertyRichText, RichText: []notion.RichText{{PlainText: slug}}},
	)}
}

/*
TestGateway_ListWorks verifies the language filter, Order sort and mapping.
*/
func TestGateway_ListWorks(t *testing.T) {
	source := &fakeSource{pages: []notion.Page{titled("p1", "Tide", "tide"), titled("p2", "Ebb", "ebb")}}
	gateway := content.NewGateway(source, nil, nil)

	works, err := gateway.ListWorks(context.Background(), locale.English)
	require.NoError(t, err)

	require.Len(t, works, 2)
	assert.Equal(t, "Tide", works[0].Title)
	assert.Equal(t, "ebb", works[1].Slug)

	require.Len(t, source.queries, 1)
	query := source.queries[0]
	require.NotNil(t, query.Filter)
	assert.Equal(t, notion.SelectEquals("Language", "en"), *query.Filter)
	assert.Equal(t, []notion.Sort{{Property: "Order", Direction: notion.Ascending}}, query.Sorts)
}

/*
TestGateway_ListWorks_Failures verifies upstream and configuration errors propagate.
*/
func TestGateway_ListWorks_Failures(t *testing.T) {
	// 1. Upstream error
	upstream := &notion.APIError{Endpoint: "/databases/x/query", Status: 401}
	gateway := content.NewGateway(&fakeSource{err: upstream}, nil, nil)

	works, err := gateway.ListWorks(context.Background(), locale.Japanese)
	assert.Nil(t, works)
	assert.ErrorIs(t, err, upstream)

	// 2. Missing configuration
	gateway = content.NewGateway(content.NewNotionSource(content.NotionSettings{APIKey: "secret"}), nil, nil)
	_, err = gateway.ListWorks(context.Background(), locale.Japanese)
	assert.ErrorIs(t, err, content.ErrNotConfigured)
}

/*
TestGateway_FindWorkBySlug covers match, duplicates, no match and upstream failure.
*/
func TestGateway_FindWorkBySlug(t *testing.T) {
	t.Run("match_uses_compound_filter", func(t *testing.T) {
		source := &fakeSource{pages: []notion.Page{titled("p1", "Tide", "tide")}}
		gateway := content.NewGateway(source, nil, nil)

		work, ok := gateway.FindWorkBySlug(context.Background(), "tide", locale.Japanese)
		require.True(t, ok)
		assert.Equal(t, "p1", work.ID)

		want := notion.And(notion.SelectEquals("Language", "ja"), notion.RichTextEquals("Slug", "tide"))
		assert.Equal(t, want, *source.queries[0].Filter)
		assert.Empty(t, source.queries[0].Sorts)
	})

	t.Run("duplicate_slug_takes_first", func(t *testing.T) {
		source := &fakeSource{pages: []notion.Page{titled("p1", "First", "tide"), titled("p2", "Second", "tide")}}
		work, ok := content.NewGateway(source, nil, nil).FindWorkBySlug(context.Background(), "tide", locale.Japanese)
		require.True(t, ok)
		assert.Equal(t, "First", work.Title)
	})

	t.Run("no_rows", func(t *testing.T) {
		_, ok := content.NewGateway(&fakeSource{}, nil, nil).FindWorkBySlug(context.Background(), "nope", locale.English)
		assert.False(t, ok)
	})

	t.Run("upstream_error_reads_as_absent", func(t *testing.T) {
		source := &fakeSource{err: errors.New("connection reset")}
		_, ok := content.NewGateway(source, nil, nil).FindWorkBySlug(context.Background(), "tide", locale.English)
		assert.False(t, ok)
	})
}

/*
TestGateway_PageContent verifies pass-through and error propagation.
*/
func TestGateway_PageContent(t *testing.T) {
	recordMap := &notion.RecordMap{Block: map[string]notion.Record{"root": {}}}
	source := &fakeSource{recordMap: recordMap}

	got, err := content.NewGateway(source, nil, nil).PageContent(context.Background(), "root")
	require.NoError(t, err)
	assert.Same(t, recordMap, got)
	assert.Equal(t, []string{"root"}, source.contentIDs)

	failing := &fakeSource{err: errors.New("boom")}
	got, err = content.NewGateway(failing, nil, nil).PageContent(context.Background(), "root")
	assert.Nil(t, got)
	assert.EqualError(t, err, "boom")
}

/*
TestGateway_StaticPageID checks key derivation per locale.
*/
func TestGateway_StaticPageID(t *testing.T) {
	pages := content.StaticPages{
		"NOTION_CV_ID_JP":        "cv-ja",
		"NOTION_CV_ID_EN":        "cv-en",
		"NOTION_STATEMENT_ID_EN": "",
	}
	gateway := content.NewGateway(&fakeSource{}, pages, nil)

	tests := []struct {
		slug   string
		loc    locale.Locale
		want   string
		wantOK bool
	}{
		{"cv", locale.Japanese, "cv-ja", true},
		{"cv", locale.English, "cv-en", true},
		{"statement", locale.English, "", false},
		{"statement", locale.Japanese, "", false},
		{"upcoming", locale.English, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug+"_"+tt.loc.String(), func(t *testing.T) {
			got, ok := gateway.StaticPageID(tt.slug, tt.loc)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "NOTION_UPCOMING_ID_JP", content.StaticPageKey("upcoming", locale.Japanese))
	assert.Equal(t, "NOTION_CONTACT_ID_EN", content.StaticPageKey("contact", locale.English))
}
