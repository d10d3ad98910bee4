// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notion

// SortDirection orders query results.
type SortDirection string

const Ascending SortDirection = "ascending"

// MaxPageSize is the largest page the query endpoint returns.
const MaxPageSize = 100

// QueryRequest is the body of a database query.
type QueryRequest struct {
	Filter      *Filter `json:"filter,omitempty"`
	Sorts       []Sort  `json:"sorts,omitempty"`
	StartCursor string  `json:"start_cursor,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
}

// QueryResponse is one page of database query results.
type QueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Filter is either a property condition or a compound "and".
type Filter struct {
	Property string     `json:"property,omitempty"`
	Select   *Condition `json:"select,omitempty"`
	RichText *Condition `json:"rich_text,omitempty"`
	And      []Filter   `json:"and,omitempty"`
}

// Condition is an equality test against a property value.
type Condition struct {
	Equals string `json:"equals"`
}

// Sort orders results by a property.
type Sort struct {
	Property  string        `json:"property"`
	Direction SortDirection `json:"direction"`
}

// SelectEquals matches rows whose select property equals value.
func SelectEquals(property, value string) Filter {
	return Filter{Property: property, Select: &Condition{Equals: value}}
}

// RichTextEquals matches rows whose rich text property equals value.
func RichTextEquals(property, value string) Filter {
	return Filter{Property: property, RichText: &Condition{Equals: value}}
}

// And combines filters; every one must match.
func And(filters ...Filter) Filter {
	return Filter{And: filters}
}
