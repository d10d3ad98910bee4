// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package locale defines the two site languages and decides which one a
request should be served in.

Resolution Rules:

  - A path already prefixed with /en or /ja is left alone.
  - Otherwise the first Accept-Language entry decides, by primary subtag only.
  - Anything unsupported, unparseable or missing falls back to Japanese.
*/
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported site language code.
type Locale string

const (
	English  Locale = "en"
	Japanese Locale = "ja"

	// Default is served when nothing better is known.
	Default = Japanese
)

// Supported lists every routable locale.
var Supported = []Locale{English, Japanese}

// String implements [fmt.Stringer].
func (l Locale) String() string { return string(l) }

// Parse reports whether s is exactly a supported locale code.
func Parse(s string) (Locale, bool) {
	for _, candidate := range Supported {
		if string(candidate) == s {
			return candidate, true
		}
	}
	return "", false
}

// OrDefault returns s as a Locale when supported and [Default] otherwise.
func OrDefault(s string) Locale {
	if l, ok := Parse(s); ok {
		return l
	}
	return Default
}

// Alternate returns the other supported language, used by the language switch.
func (l Locale) Alternate() Locale {
	if l == English {
		return Japanese
	}
	return English
}

// FromAcceptLanguage picks a locale from an Accept-Language header value.
//
// Only the first comma separated entry is considered; its primary subtag
// must be a supported locale, e.g. "en-US,fr;q=0.8" yields en while
// "fr-FR,en;q=0.9" yields the default.
func FromAcceptLanguage(header string) Locale {
	if strings.TrimSpace(header) == "" {
		return Default
	}

	// 1. First entry, without its quality weight
	first, _, _ := strings.Cut(header, ",")
	first, _, _ = strings.Cut(first, ";")
	first = strings.TrimSpace(first)

	// 2. Primary subtag
	tag, err := language.Parse(first)
	if err != nil {
		return Default
	}
	base, _ := tag.Base()

	return OrDefault(base.String())
}
