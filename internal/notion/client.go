// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// # Data API Client

// Client talks to the official Data API. It carries the integration token
// and version header on every request.
//
// The client performs single-shot calls: no retry, and no timeout beyond
// whatever the injected [http.Client] enforces.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOptions tunes a [Client]. Zero values select the defaults.
type ClientOptions struct {
	// HTTPClient is the underlying client. Its Transport is wrapped, not replaced.
	HTTPClient *http.Client
	// BaseURL overrides [DefaultBaseURL].
	BaseURL string
	// Version overrides [DefaultVersion].
	Version string
}

// NewClient constructs a Data API client authenticated with apiKey.
func NewClient(apiKey string, options ClientOptions) *Client {
	baseURL := strings.TrimRight(options.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	version := options.Version
	if version == "" {
		version = DefaultVersion
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+apiKey)
	header.Set(HeaderVersion, version)
	header.Set("Content-Type", "application/json")

	return &Client{
		httpClient: withHeaders(options.HTTPClient, header),
		baseURL:    baseURL,
	}
}

// QueryDatabase runs one page of a database query.
//
// A non-2xx response is returned as [*APIError]; transport and decode failures
// are wrapped.
func (client *Client) QueryDatabase(ctx context.Context, databaseID string, query QueryRequest) (*QueryResponse, error) {
	endpoint := "/databases/" + url.PathEscape(FormatID(databaseID)) + "/query"

	var response QueryResponse
	if err := client.post(ctx, endpoint, query, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// post sends body as JSON and decodes a 2xx JSON response into target.
func (client *Client) post(ctx context.Context, endpoint string, body, target any) error {
	return postJSON(ctx, client.httpClient, client.baseURL, endpoint, body, target)
}

// postJSON is the request/response cycle shared by both Notion surfaces.
func postJSON(ctx context.Context, httpClient *http.Client, baseURL, endpoint string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("notion: encode %s: %w", endpoint, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notion: build %s: %w", endpoint, err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("notion: %s: %w", endpoint, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return newAPIError(endpoint, response)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("notion: decode %s: %w", endpoint, err)
	}
	return nil
}
