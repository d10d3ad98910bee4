// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notion

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PropertyType names the value union member a [PropertyValue] carries.
type PropertyType string

const (
	PropertyTitle       PropertyType = "title"
	PropertyRichText    PropertyType = "rich_text"
	PropertyNumber      PropertyType = "number"
	PropertySelect      PropertyType = "select"
	PropertyMultiSelect PropertyType = "multi_select"
	PropertyDate        PropertyType = "date"
	PropertyURL         PropertyType = "url"
	PropertyFiles       PropertyType = "files"
)

// FileType distinguishes externally linked files from Notion-hosted ones.
type FileType string

const (
	FileExternal FileType = "external"
	FileHosted   FileType = "file"
)

// Page is a database row as returned by the Data API query endpoint.
type Page struct {
	Object     string     `json:"object"`
	ID         string     `json:"id"`
	URL        string     `json:"url,omitempty"`
	Cover      *File      `json:"cover"`
	Properties Properties `json:"properties"`
}

// RichText is one styled segment of a text property.
type RichText struct {
	Type      string `json:"type"`
	PlainText string `json:"plain_text"`
	Href      string `json:"href,omitempty"`
}

// Option is a select or multi-select choice.
type Option struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DateValue is a date property; End is empty for single dates.
type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// FileLink is the url holder shared by external and hosted files.
type FileLink struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

// File is a page cover or one entry of a files property.
type File struct {
	Type     FileType  `json:"type"`
	Name     string    `json:"name,omitempty"`
	External *FileLink `json:"external,omitempty"`
	File     *FileLink `json:"file,omitempty"`
}

// Link returns the file url for external and hosted files, "" otherwise.
func (file *File) Link() string {
	if file == nil {
		return ""
	}
	switch file.Type {
	case FileExternal:
		if file.External != nil {
			return file.External.URL
		}
	case FileHosted:
		if file.File != nil {
			return file.File.URL
		}
	}
	return ""
}

// PropertyValue is the typed value union of a page property. Only the field
// matching Type is populated.
type PropertyValue struct {
	ID          string       `json:"id,omitempty"`
	Type        PropertyType `json:"type"`
	Title       []RichText   `json:"title,omitempty"`
	RichText    []RichText   `json:"rich_text,omitempty"`
	Number      *float64     `json:"number,omitempty"`
	Select      *Option      `json:"select,omitempty"`
	MultiSelect []Option     `json:"multi_select,omitempty"`
	Date        *DateValue   `json:"date,omitempty"`
	URL         *string      `json:"url,omitempty"`
	Files       []File       `json:"files,omitempty"`
}

// # Ordered Properties

// Properties keeps page properties in the order Notion sent them.
type Properties struct {
	names  []string
	values map[string]PropertyValue
}

// NewProperties builds [Properties] from alternating name/value pairs in order.
func NewProperties(pairs ...any) Properties {
	props := Properties{values: make(map[string]PropertyValue, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		value, _ := pairs[i+1].(PropertyValue)
		props.Set(name, value)
	}
	return props
}

// Get returns the named property.
func (props Properties) Get(name string) (PropertyValue, bool) {
	value, ok := props.values[name]
	return value, ok
}

// Set adds or replaces a property, keeping first-seen order.
func (props *Properties) Set(name string, value PropertyValue) {
	if props.values == nil {
		props.values = make(map[string]PropertyValue)
	}
	if _, exists := props.values[name]; !exists {
		props.names = append(props.names, name)
	}
	props.values[name] = value
}

// Names returns property names in source order.
func (props Properties) Names() []string {
	return props.names
}

// Len reports the number of properties.
func (props Properties) Len() int {
	return len(props.names)
}

// UnmarshalJSON decodes a JSON object token by token to preserve key order.
func (props *Properties) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if token == nil {
		*props = Properties{}
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("notion: properties: expected object, got %v", token)
	}

	decoded := Properties{values: make(map[string]PropertyValue)}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}
		name, _ := keyToken.(string)

		var value PropertyValue
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("notion: property %q: %w", name, err)
		}
		decoded.Set(name, value)
	}

	*props = decoded
	return nil
}

// MarshalJSON encodes properties as an object in source order.
func (props Properties) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, name := range props.names {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(props.values[name])
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}
