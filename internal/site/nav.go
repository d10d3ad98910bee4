// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"strings"

	"github.com/taibuivan/atelier/internal/locale"
)

// NavItem is one entry of the site menu.
type NavItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// LanguageSwitch links the current page in the other language.
type LanguageSwitch struct {
	Label  string        `json:"label"`
	Locale locale.Locale `json:"locale"`
	Href   string        `json:"href"`
}

// Navigation is the menu model for one locale.
type Navigation struct {
	Locale   locale.Locale  `json:"locale"`
	Home     string         `json:"home"`
	Items    []NavItem      `json:"items"`
	Language LanguageSwitch `json:"language"`
}

// menu is the fixed site menu; an empty path is the works grid.
var menu = []struct {
	label string
	path  string
}{
	{"Upcoming", "upcoming"},
	{"Works", ""},
	{"CV", "cv"},
	{"Statement", "statement"},
	{"Contact", "contact"},
}

// BuildNavigation returns the menu for loc. current is the path being viewed
// (e.g. /en/cv); it marks the active item and keeps the language switch on
// the same page. An empty current is treated as the locale home.
func BuildNavigation(loc locale.Locale, current string) Navigation {
	home := "/" + loc.String()
	if current == "" {
		current = home
	}

	items := make([]NavItem, 0, len(menu))
	for _, entry := range menu {
		href := home
		if entry.path != "" {
			href = home + "/" + entry.path
		}
		items = append(items, NavItem{
			Label:  entry.label,
			Href:   href,
			Active: current == href || (entry.path == "" && current == home+"/"),
		})
	}

	alternate := loc.Alternate()
	return Navigation{
		Locale: loc,
		Home:   home,
		Items:  items,
		Language: LanguageSwitch{
			Label:  strings.ToUpper(alternate.String()),
			Locale: alternate,
			Href:   strings.Replace(current, home, "/"+alternate.String(), 1),
		},
	}
}
