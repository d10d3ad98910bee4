// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revalidate_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/atelier/internal/platform/constants"
	"github.com/taibuivan/atelier/internal/platform/revalidate"
)

// brokenStore fails every operation.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (revalidate.Entry, error) {
	return revalidate.Entry{}, errors.New("connection refused")
}

func (brokenStore) Set(context.Context, string, revalidate.Entry, time.Duration) error {
	return errors.New("connection refused")
}

func (brokenStore) Ping(context.Context) error { return errors.New("connection refused") }

// countingHandler renders status with a body and counts invocations.
func countingHandler(status int, calls *int) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		*calls++
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(`{"data":"rendered"}`))
	})
}

func serve(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

/*
TestMiddleware_MissThenHit verifies the second GET is served without rendering.
*/
func TestMiddleware_MissThenHit(t *testing.T) {
	calls := 0
	handler := revalidate.Middleware(revalidate.NewMemoryStore(), time.Minute)(countingHandler(http.StatusOK, &calls))

	// 1. Miss renders
	first := serve(handler, http.MethodGet, "/ja/works/tide")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, revalidate.CacheMiss, first.Header().Get(constants.HeaderXCache))
	assert.Equal(t, "public, max-age=60", first.Header().Get(constants.HeaderCacheControl))

	// 2. Hit replays
	second := serve(handler, http.MethodGet, "/ja/works/tide")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, revalidate.CacheHit, second.Header().Get(constants.HeaderXCache))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	// 3. Different locale is a different key
	serve(handler, http.MethodGet, "/en/works/tide")
	assert.Equal(t, 2, calls)
}

/*
TestMiddleware_NotCached covers responses and methods that are never stored.
*/
func TestMiddleware_NotCached(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		calls := 0
		handler := revalidate.Middleware(revalidate.NewMemoryStore(), time.Minute)(countingHandler(http.StatusNotFound, &calls))

		first := serve(handler, http.MethodGet, "/ja/missing")
		serve(handler, http.MethodGet, "/ja/missing")

		assert.Equal(t, 2, calls)
		assert.Empty(t, first.Header().Get(constants.HeaderCacheControl))
	})

	t.Run("non_get", func(t *testing.T) {
		calls := 0
		handler := revalidate.Middleware(revalidate.NewMemoryStore(), time.Minute)(countingHandler(http.StatusOK, &calls))

		recorder := serve(handler, http.MethodPost, "/ja/")
		serve(handler, http.MethodPost, "/ja/")

		assert.Equal(t, 2, calls)
		assert.Equal(t, revalidate.CacheBypass, recorder.Header().Get(constants.HeaderXCache))
	})

	t.Run("disabled", func(t *testing.T) {
		calls := 0
		handler := revalidate.Middleware(revalidate.NewMemoryStore(), 0)(countingHandler(http.StatusOK, &calls))

		recorder := serve(handler, http.MethodGet, "/ja/")
		serve(handler, http.MethodGet, "/ja/")

		assert.Equal(t, 2, calls)
		assert.Empty(t, recorder.Header().Get(constants.HeaderXCache))
	})
}

/*
TestMiddleware_StoreFailure verifies a broken store degrades to rendering every time.
*/
func TestMiddleware_StoreFailure(t *testing.T) {
	calls := 0
	handler := revalidate.Middleware(brokenStore{}, time.Minute)(countingHandler(http.StatusOK, &calls))

	for i := 0; i < 2; i++ {
		recorder := serve(handler, http.MethodGet, "/en/")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"data":"rendered"}`, recorder.Body.String())
	}
	assert.Equal(t, 2, calls)
}
