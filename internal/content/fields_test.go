// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/atelier/internal/notion"
)

func text(kind notion.PropertyType, parts ...string) notion.PropertyValue {
	segments := make([]notion.RichText, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, notion.RichText{Type: "text", PlainText: part})
	}
	if kind == notion.PropertyTitle {
		return notion.PropertyValue{Type: kind, Title: segments}
	}
	return notion.PropertyValue{Type: kind, RichText: segments}
}

func number(n float64) notion.PropertyValue {
	return notion.PropertyValue{Type: notion.PropertyNumber, Number: &n}
}

func external(url string) notion.File {
	return notion.File{Type: notion.FileExternal, External: &notion.FileLink{URL: url}}
}

/*
TestNewWorkSummary_Title covers the Name, Title and Untitled fallbacks.
*/
func TestNewWorkSummary_Title(t *testing.T) {
	tests := []struct {
		name  string
		props notion.Properties
		want  string
	}{
		{"name_property", notion.NewProperties("Name", text(notion.PropertyTitle, "Tide")), "Tide"},
		{"title_property", notion.NewProperties("Title", text(notion.PropertyTitle, "Ebb")), "Ebb"},
		{"first_segment_only", notion.NewProperties("Name", text(notion.PropertyTitle, "Tide", " II")), "Tide"},
		{"empty_title", notion.NewProperties("Name", text(notion.PropertyTitle)), UntitledTitle},
		{"empty_name_hides_title", notion.NewProperties(
			"Name", text(notion.PropertyTitle),
			"Title", text(notion.PropertyTitle, "Ebb"),
		), UntitledTitle},
		{"name_wins_over_title", notion.NewProperties(
			"Title", text(notion.PropertyTitle, "Ebb"),
			"Name", text(notion.PropertyTitle, "Tide"),
		), "Tide"},
		{"no_title_at_all", notion.NewProperties(), UntitledTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			work := newWorkSummary(notion.Page{ID: "p1", Properties: tt.props})
			assert.Equal(t, tt.want, work.Title)
		})
	}
}

/*
TestNewWorkSummary_SlugAndYear covers slug fallback and year formatting.
*/
func TestNewWorkSummary_SlugAndYear(t *testing.T) {
	// 1. Slug falls back to the page id
	work := newWorkSummary(notion.Page{ID: "p1", Properties: notion.NewProperties()})
	assert.Equal(t, "p1", work.Slug)
	assert.Equal(t, "", work.Year)

	// 2. Numeric year has no decimal point
	work = newWorkSummary(notion.Page{ID: "p2", Properties: notion.NewProperties(
		"Slug", text(notion.PropertyRichText, "tide"),
		"Year", number(2023),
	)})
	assert.Equal(t, "tide", work.Slug)
	assert.Equal(t, "2023", work.Year)

	// 3. Text year is taken verbatim
	work = newWorkSummary(notion.Page{ID: "p3", Properties: notion.NewProperties(
		"Year", text(notion.PropertyRichText, "2019–2021"),
	)})
	assert.Equal(t, "2019–2021", work.Year)
}

/*
TestNewWorkSummary_Cover verifies the row cover wins over the Cover Image property.
*/
func TestNewWorkSummary_Cover(t *testing.T) {
	props := notion.NewProperties("Cover Image", notion.PropertyValue{
		Type:  notion.PropertyFiles,
		Files: []notion.File{{Type: notion.FileHosted, File: &notion.FileLink{URL: "https://files/b.jpg"}}},
	})

	// 1. Row cover present
	row := external("https://img/a.jpg")
	work := newWorkSummary(notion.Page{ID: "p1", Cover: &row, Properties: props})
	assert.Equal(t, "https://img/a.jpg", work.CoverImage)

	// 2. Falls back to the first file
	work = newWorkSummary(notion.Page{ID: "p1", Properties: props})
	assert.Equal(t, "https://files/b.jpg", work.CoverImage)

	// 3. Neither
	work = newWorkSummary(notion.Page{ID: "p1", Properties: notion.NewProperties()})
	assert.Equal(t, "", work.CoverImage)
}

/*
TestNewWorkSummary_Meta checks stringification, reserved names and ordering.
*/
func TestNewWorkSummary_Meta(t *testing.T) {
	link := "https://example.com/show"
	props := notion.NewProperties(
		"Name", text(notion.PropertyTitle, "Tide"),
		"Medium", text(notion.PropertyRichText, "Oil ", "on canvas"),
		"Language", notion.PropertyValue{Type: notion.PropertySelect, Select: &notion.Option{Name: "en"}},
		"Series", notion.PropertyValue{Type: notion.PropertySelect, Select: &notion.Option{Name: "Sea"}},
		"Tags", notion.PropertyValue{Type: notion.PropertyMultiSelect, MultiSelect: []notion.Option{{Name: "a"}, {Name: "b"}}},
		"Edition", number(3.5),
		"Shown", notion.PropertyValue{Type: notion.PropertyDate, Date: &notion.DateValue{Start: "2023-04-01"}},
		"Link", notion.PropertyValue{Type: notion.PropertyURL, URL: &link},
		"Empty", text(notion.PropertyRichText),
		"Owner", notion.PropertyValue{Type: "people"},
		"Order", number(1),
		"Full Page", notion.PropertyValue{Type: "checkbox"},
	)

	work := newWorkSummary(notion.Page{ID: "p1", Properties: props})

	assert.Equal(t, map[string]string{
		"Medium":  "Oil on canvas",
		"Series":  "Sea",
		"Tags":    "a, b",
		"Edition": "3.5",
		"Shown":   "2023-04-01",
		"Link":    "https://example.com/show",
	}, work.Meta)
	assert.Equal(t, []string{"Medium", "Series", "Tags", "Edition", "Shown", "Link"}, work.MetaOrder)
}

/*
TestIsReserved verifies the routing and dedicated-field properties are reserved.
*/
func TestIsReserved(t *testing.T) {
	for _, name := range []string{"Name", "Title", "Slug", "Year", "Language", "Cover Image", "Full Page", "Order"} {
		assert.True(t, IsReserved(name), name)
	}
	assert.False(t, IsReserved("Medium"))
}
