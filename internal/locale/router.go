// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/atelier/internal/platform/ctxutil"
)

// # Route Matching

// excludedPrefixes match any path that starts with them: framework
// internals, the favicon and the API.
var excludedPrefixes = []string{"_next", "favicon.ico", "api"}

// excludedSegments match only a whole first segment, so /readymade still
// gets a locale.
var excludedSegments = []string{"health", "ready"}

// Matches reports whether the router applies to path. Static assets (any
// path containing a dot) and excluded paths are skipped.
func Matches(path string) bool {
	rest := strings.TrimPrefix(path, "/")
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(rest, prefix) {
			return false
		}
	}
	for _, segment := range excludedSegments {
		if rest == segment || strings.HasPrefix(rest, segment+"/") {
			return false
		}
	}
	return !strings.Contains(rest, ".")
}

// FromPath returns the locale prefix of path, if any.
func FromPath(path string) (Locale, bool) {
	for _, l := range Supported {
		prefix := "/" + string(l)
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return l, true
		}
	}
	return "", false
}

// # Middleware

// Router redirects requests without a locale prefix to the same path under
// the preferred locale. Prefixed requests pass through untouched.
func Router() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			path := request.URL.Path

			// 1. Out of scope or already routed
			if !Matches(path) {
				next.ServeHTTP(writer, request)
				return
			}
			if _, ok := FromPath(path); ok {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Pick a locale and rewrite the path
			target := FromAcceptLanguage(request.Header.Get("Accept-Language"))

			redirectURL := *request.URL
			redirectURL.Path = "/" + string(target) + path
			redirectURL.RawPath = ""

			ctxutil.GetLogger(request.Context()).Debug("locale_redirect",
				slog.String("from", path),
				slog.String("to", redirectURL.Path),
			)

			writer.Header().Add("Vary", "Accept-Language")
			http.Redirect(writer, request, redirectURL.RequestURI(), http.StatusTemporaryRedirect)
		})
	}
}
