// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package site serves the localized portfolio pages as JSON view models.

Every route lives under /{lang}. An unknown lang renders Japanese rather
than failing; any content failure renders the standard not-found envelope.
*/
package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/atelier/internal/content"
	"github.com/taibuivan/atelier/internal/locale"
	"github.com/taibuivan/atelier/internal/notion"
	"github.com/taibuivan/atelier/internal/platform/apperr"
	requestutil "github.com/taibuivan/atelier/internal/platform/request"
	"github.com/taibuivan/atelier/internal/platform/respond"
)

// # View Models

// WorksPage is the home page: the works grid of one locale.
type WorksPage struct {
	Locale locale.Locale         `json:"locale"`
	Works  []content.WorkSummary `json:"works"`
}

// WorkPage is a single work with its rich content.
type WorkPage struct {
	Locale  locale.Locale       `json:"locale"`
	Work    content.WorkSummary `json:"work"`
	Content *notion.RecordMap   `json:"content"`
}

// StaticPage is a configured page such as the CV or statement.
type StaticPage struct {
	Locale  locale.Locale     `json:"locale"`
	PageID  string            `json:"page_id"`
	Content *notion.RecordMap `json:"content"`
}

// # Handler

// Handler serves the page routes.
type Handler struct {
	gateway *content.Gateway
}

// NewHandler creates a page handler over gateway.
func NewHandler(gateway *content.Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// Routes returns the router mounted at /{lang}.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listWorks)
	router.Get("/nav", handler.navigation)
	router.Get("/works/{slug}", handler.getWork)
	router.Get("/{staticSlug}", handler.getStaticPage)

	return router
}

func (handler *Handler) listWorks(writer http.ResponseWriter, request *http.Request) {
	loc := requestutil.Locale(request)

	works, err := handler.gateway.ListWorks(request.Context(), loc)
	if err != nil {
		respond.Error(writer, request, apperr.NotFoundCause("Works", err))
		return
	}

	respond.OK(writer, WorksPage{Locale: loc, Works: works})
}

func (handler *Handler) getWork(writer http.ResponseWriter, request *http.Request) {
	loc := requestutil.Locale(request)
	slug := requestutil.Param(request, "slug")

	// 1. Resolve the slug
	work, ok := handler.gateway.FindWorkBySlug(request.Context(), slug, loc)
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Work"))
		return
	}

	// 2. Fetch the page body
	recordMap, err := handler.gateway.PageContent(request.Context(), work.ID)
	if err != nil {
		respond.Error(writer, request, apperr.NotFoundCause("Work", err))
		return
	}

	respond.OK(writer, WorkPage{Locale: loc, Work: work, Content: recordMap})
}

func (handler *Handler) getStaticPage(writer http.ResponseWriter, request *http.Request) {
	loc := requestutil.Locale(request)
	slug := requestutil.Param(request, "staticSlug")

	pageID, ok := handler.gateway.StaticPageID(slug, loc)
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Page"))
		return
	}

	recordMap, err := handler.gateway.PageContent(request.Context(), pageID)
	if err != nil {
		respond.Error(writer, request, apperr.NotFoundCause("Page", err))
		return
	}

	respond.OK(writer, StaticPage{Locale: loc, PageID: pageID, Content: recordMap})
}

func (handler *Handler) navigation(writer http.ResponseWriter, request *http.Request) {
	loc := requestutil.Locale(request)
	respond.OK(writer, BuildNavigation(loc, requestutil.Query(request, "path")))
}
