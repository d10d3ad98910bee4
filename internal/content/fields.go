// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"strconv"
	"strings"

	"github.com/taibuivan/atelier/internal/notion"
)

// # Field Extraction Table

// extractor turns one property value into display text; "" means no value.
type extractor func(notion.PropertyValue) string

// rule reads a named property of an expected type.
type rule struct {
	property string
	kind     notion.PropertyType
	extract  extractor
}

// field resolves one WorkSummary field: the row-level lead (if any), then
// each rule in order, then the fallback. The first non-empty value wins.
// When firstPresent is set, the first rule whose property exists is the only
// one consulted, even if it yields nothing.
type field struct {
	lead         func(notion.Page) string
	rules        []rule
	firstPresent bool
	fallback     func(notion.Page) string
}

var (
	titleField = field{
		rules: []rule{
			{PropertyName, notion.PropertyTitle, firstSegment},
			{PropertyTitle, notion.PropertyTitle, firstSegment},
		},
		firstPresent: true,
		fallback:     func(notion.Page) string { return UntitledTitle },
	}

	slugField = field{
		rules: []rule{
			{PropertySlug, notion.PropertyRichText, firstSegment},
		},
		fallback: func(page notion.Page) string { return page.ID },
	}

	yearField = field{
		rules: []rule{
			{PropertyYear, notion.PropertyNumber, formatNumber},
			{PropertyYear, notion.PropertyRichText, firstSegment},
		},
	}

	coverField = field{
		lead: func(page notion.Page) string { return page.Cover.Link() },
		rules: []rule{
			{PropertyCoverImage, notion.PropertyFiles, firstFile},
		},
	}
)

func (f field) resolve(page notion.Page) string {
	if f.lead != nil {
		if value := f.lead(page); value != "" {
			return value
		}
	}

	for _, r := range f.rules {
		value, ok := page.Properties.Get(r.property)
		if !ok {
			continue
		}
		if value.Type == r.kind {
			if text := r.extract(value); text != "" {
				return text
			}
		}
		if f.firstPresent {
			break
		}
	}

	if f.fallback != nil {
		return f.fallback(page)
	}
	return ""
}

// metaStringers stringify the property types that may appear in Meta.
// Types missing here (people, relation, formula, ...) are omitted.
var metaStringers = map[notion.PropertyType]extractor{
	notion.PropertyRichText:    joinSegments,
	notion.PropertySelect:      optionName,
	notion.PropertyMultiSelect: joinOptions,
	notion.PropertyNumber:      formatNumber,
	notion.PropertyDate:        dateStart,
	notion.PropertyURL:         rawURL,
}

// newWorkSummary normalises one database row.
func newWorkSummary(page notion.Page) WorkSummary {
	work := WorkSummary{
		ID:         page.ID,
		Title:      titleField.resolve(page),
		Slug:       slugField.resolve(page),
		Year:       yearField.resolve(page),
		CoverImage: coverField.resolve(page),
		Meta:       make(map[string]string),
		MetaOrder:  []string{},
	}

	for _, name := range page.Properties.Names() {
		if IsReserved(name) {
			continue
		}

		value, _ := page.Properties.Get(name)
		stringify, ok := metaStringers[value.Type]
		if !ok {
			continue
		}

		if text := stringify(value); text != "" {
			work.Meta[name] = text
			work.MetaOrder = append(work.MetaOrder, name)
		}
	}

	return work
}

// # Extractors

func segments(value notion.PropertyValue) []notion.RichText {
	if value.Type == notion.PropertyTitle {
		return value.Title
	}
	return value.RichText
}

func firstSegment(value notion.PropertyValue) string {
	parts := segments(value)
	if len(parts) == 0 {
		return ""
	}
	return parts[0].PlainText
}

func joinSegments(value notion.PropertyValue) string {
	var builder strings.Builder
	for _, part := range segments(value) {
		builder.WriteString(part.PlainText)
	}
	return builder.String()
}

func optionName(value notion.PropertyValue) string {
	if value.Select == nil {
		return ""
	}
	return value.Select.Name
}

func joinOptions(value notion.PropertyValue) string {
	names := make([]string, 0, len(value.MultiSelect))
	for _, option := range value.MultiSelect {
		names = append(names, option.Name)
	}
	return strings.Join(names, ", ")
}

// formatNumber prints integers without a decimal point (2023, not 2023.0).
func formatNumber(value notion.PropertyValue) string {
	if value.Number == nil {
		return ""
	}
	return strconv.FormatFloat(*value.Number, 'f', -1, 64)
}

func dateStart(value notion.PropertyValue) string {
	if value.Date == nil {
		return ""
	}
	return value.Date.Start
}

func rawURL(value notion.PropertyValue) string {
	if value.URL == nil {
		return ""
	}
	return *value.URL
}

func firstFile(value notion.PropertyValue) string {
	if len(value.Files) == 0 {
		return ""
	}
	return value.Files[0].Link()
}
