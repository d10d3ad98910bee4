// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

// WorkSummary is a portfolio entry normalised from a works database row.
type WorkSummary struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Year       string            `json:"year"`
	CoverImage string            `json:"cover_image"`
	Meta       map[string]string `json:"meta"`

	// MetaOrder lists Meta keys in upstream property order.
	MetaOrder []string `json:"meta_order"`
}

// Property names with a dedicated field or routing role; never copied to Meta.
const (
	PropertyName       = "Name"
	PropertyTitle      = "Title"
	PropertySlug       = "Slug"
	PropertyYear       = "Year"
	PropertyLanguage   = "Language"
	PropertyCoverImage = "Cover Image"
	PropertyFullPage   = "Full Page"
	PropertyOrder      = "Order"
)

// UntitledTitle is shown for rows without a title.
const UntitledTitle = "Untitled"

var reservedProperties = map[string]bool{
	PropertyName:       true,
	PropertyTitle:      true,
	PropertySlug:       true,
	PropertyYear:       true,
	PropertyLanguage:   true,
	PropertyCoverImage: true,
	PropertyFullPage:   true,
	PropertyOrder:      true,
}

// IsReserved reports whether name is excluded from Meta.
func IsReserved(name string) bool {
	return reservedProperties[name]
}
