// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revalidate

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/atelier/internal/platform/constants"
	"github.com/taibuivan/atelier/internal/platform/ctxutil"
)

// X-Cache values.
const (
	CacheHit    = "HIT"
	CacheMiss   = "MISS"
	CacheBypass = "BYPASS"
)

/*
Middleware serves GET responses from store for ttl after they were rendered.

Only 200 responses are stored. Store failures are logged and the request is
rendered as if nothing were cached. A non-positive ttl disables caching.
*/
func Middleware(store Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || ttl <= 0 {
			return next
		}

		cacheControl := fmt.Sprintf("public, max-age=%d", int(ttl.Seconds()))

		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Method != http.MethodGet {
				writer.Header().Set(constants.HeaderXCache, CacheBypass)
				next.ServeHTTP(writer, request)
				return
			}

			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)
			key := request.URL.RequestURI()

			// 1. Serve a fresh entry
			entry, err := store.Get(ctx, key)
			switch {
			case err == nil:
				writer.Header().Set("Content-Type", entry.ContentType)
				writer.Header().Set(constants.HeaderXCache, CacheHit)
				writer.Header().Set(constants.HeaderCacheControl, cacheControl)
				writer.WriteHeader(entry.Status)
				_, _ = writer.Write(entry.Body)
				return
			case !errors.Is(err, ErrMiss):
				logger.WarnContext(ctx, "revalidate_store_get_failed",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
			}

			// 2. Render and capture
			writer.Header().Set(constants.HeaderXCache, CacheMiss)

			capture := &captureWriter{ResponseWriter: writer, cacheControl: cacheControl}
			next.ServeHTTP(capture, request)

			if !cacheable(capture.statusCode()) {
				return
			}

			// 3. Store for the next request
			entry = Entry{
				Status:      capture.statusCode(),
				ContentType: writer.Header().Get("Content-Type"),
				Body:        capture.body.Bytes(),
				StoredAt:    time.Now().UTC(),
			}
			if err := store.Set(ctx, key, entry, ttl); err != nil {
				logger.WarnContext(ctx, "revalidate_store_set_failed",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
			}
		})
	}
}

// captureWriter writes through to the client while buffering the body.
// Cache-Control is only advertised on cacheable statuses.
type captureWriter struct {
	http.ResponseWriter
	cacheControl string
	status       int
	body         bytes.Buffer
}

func (capture *captureWriter) WriteHeader(status int) {
	if capture.status != 0 {
		return
	}
	capture.status = status
	if cacheable(status) {
		capture.Header().Set(constants.HeaderCacheControl, capture.cacheControl)
	}
	capture.ResponseWriter.WriteHeader(status)
}

func (capture *captureWriter) Write(data []byte) (int, error) {
	if capture.status == 0 {
		capture.WriteHeader(http.StatusOK)
	}
	capture.body.Write(data)
	return capture.ResponseWriter.Write(data)
}

func (capture *captureWriter) statusCode() int {
	if capture.status == 0 {
		return http.StatusOK
	}
	return capture.status
}
