// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"strings"

	"github.com/taibuivan/atelier/internal/locale"
)

// StaticPages maps configuration keys (NOTION_CV_ID_JP, ...) to page ids.
type StaticPages map[string]string

// StaticPageKey returns the configuration key for a static page.
// Japanese uses the JP suffix; every other locale its upper-cased code.
func StaticPageKey(slug string, loc locale.Locale) string {
	suffix := strings.ToUpper(loc.String())
	if loc == locale.Japanese {
		suffix = "JP"
	}
	return "NOTION_" + strings.ToUpper(slug) + "_ID_" + suffix
}

// Lookup returns the page id configured for slug in loc.
// Unset and empty values are both reported as absent.
func (pages StaticPages) Lookup(slug string, loc locale.Locale) (string, bool) {
	id, ok := pages[StaticPageKey(slug, loc)]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
