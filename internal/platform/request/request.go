// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts route and query values from HTTP requests.

It hides the router's parameter API from handlers so they read values the
same way everywhere.
*/
package requestutil

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/atelier/internal/locale"
)

// Param retrieves a named URL parameter exactly as routed.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Query retrieves a single query string value.
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

// Locale reads the {lang} route segment. Unsupported values yield
// [locale.Default] so a page always renders in some language.
func Locale(request *http.Request) locale.Locale {
	return locale.OrDefault(Param(request, "lang"))
}
