// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/atelier/internal/platform/ctxutil"
)

// # Record API Client

const (
	// chunkSize is the block budget per loadPageChunk call.
	chunkSize = 100

	// maxChunks bounds loadPageChunk pagination for very long pages.
	maxChunks = 10

	// maxSyncRounds bounds the follow-up fetches for unresolved child blocks.
	maxSyncRounds = 8
)

// RecordMap is the flat id-to-record structure a page renderer consumes.
// Values are kept raw; only the renderer interprets block payloads.
type RecordMap struct {
	Block          map[string]Record `json:"block"`
	Collection     map[string]Record `json:"collection,omitempty"`
	CollectionView map[string]Record `json:"collection_view,omitempty"`
	NotionUser     map[string]Record `json:"notion_user,omitempty"`
	Space          map[string]Record `json:"space,omitempty"`

	// SignedURLs maps a block id to a readable URL for its Notion-hosted file.
	SignedURLs map[string]string `json:"signed_urls"`
}

// Record wraps a single record value with the caller's access role.
type Record struct {
	Role  string          `json:"role,omitempty"`
	Value json.RawMessage `json:"value"`
}

// BlockHeader is the subset of a block value needed to walk the tree.
type BlockHeader struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	ParentID string   `json:"parent_id,omitempty"`
	Content  []string `json:"content,omitempty"`
}

// Header decodes the structural fields of a block record.
func (record Record) Header() (BlockHeader, error) {
	var header BlockHeader
	if len(record.Value) == 0 || string(record.Value) == "null" {
		return header, nil
	}
	err := json.Unmarshal(record.Value, &header)
	return header, err
}

// merge copies every record of other into recordMap.
func (recordMap *RecordMap) merge(other RecordMap) {
	recordMap.Block = mergeRecords(recordMap.Block, other.Block)
	recordMap.Collection = mergeRecords(recordMap.Collection, other.Collection)
	recordMap.CollectionView = mergeRecords(recordMap.CollectionView, other.CollectionView)
	recordMap.NotionUser = mergeRecords(recordMap.NotionUser, other.NotionUser)
	recordMap.Space = mergeRecords(recordMap.Space, other.Space)
}

func mergeRecords(into, from map[string]Record) map[string]Record {
	if len(from) == 0 {
		return into
	}
	if into == nil {
		into = make(map[string]Record, len(from))
	}
	for id, record := range from {
		into[id] = record
	}
	return into
}

// hostedFileMarkers identify file URLs that need signing before a browser can fetch them.
var hostedFileMarkers = []string{"secure.notion-static.com", "prod-files-secure", "attachment:"}

// fileBlockTypes are the block types whose properties.source holds an uploaded file.
var fileBlockTypes = map[string]bool{"pdf": true, "audio": true, "image": true, "video": true, "file": true}

type fileBlock struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Properties struct {
		Source [][]string `json:"source"`
	} `json:"properties"`
	Format struct {
		PageCover string `json:"page_cover"`
	} `json:"format"`
}

// hostedFile returns the block's source URL when it points at Notion file storage.
func (record Record) hostedFile() (string, bool) {
	if len(record.Value) == 0 || string(record.Value) == "null" {
		return "", false
	}

	var block fileBlock
	if err := json.Unmarshal(record.Value, &block); err != nil {
		return "", false
	}

	var source string
	switch {
	case fileBlockTypes[block.Type]:
		if len(block.Properties.Source) > 0 && len(block.Properties.Source[0]) > 0 {
			source = block.Properties.Source[0][0]
		}
	case block.Type == "page":
		source = block.Format.PageCover
	}

	for _, marker := range hostedFileMarkers {
		if source != "" && strings.Contains(source, marker) {
			return source, true
		}
	}
	return "", false
}

// missingBlocks lists child ids referenced by loaded blocks but absent from the map.
func (recordMap *RecordMap) missingBlocks() []string {
	seen := make(map[string]bool)
	var missing []string

	for _, record := range recordMap.Block {
		header, err := record.Header()
		if err != nil {
			continue
		}
		for _, childID := range header.Content {
			if _, ok := recordMap.Block[childID]; ok || seen[childID] {
				continue
			}
			seen[childID] = true
			missing = append(missing, childID)
		}
	}
	return missing
}

// RecordClient loads full page content from the record API.
type RecordClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewRecordClient constructs a record API client. A nil httpClient uses a
// default [http.Client]; an empty baseURL selects [DefaultRecordURL].
func NewRecordClient(httpClient *http.Client, baseURL string) *RecordClient {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultRecordURL
	}
	return &RecordClient{
		httpClient: withHeaders(httpClient, http.Header{}),
		baseURL:    baseURL,
	}
}

type cursor struct {
	Stack []json.RawMessage `json:"stack"`
}

type loadPageChunkRequest struct {
	PageID          string `json:"pageId"`
	Limit           int    `json:"limit"`
	Cursor          cursor `json:"cursor"`
	ChunkNumber     int    `json:"chunkNumber"`
	VerticalColumns bool   `json:"verticalColumns"`
}

type loadPageChunkResponse struct {
	RecordMap RecordMap `json:"recordMap"`
	Cursor    cursor    `json:"cursor"`
}

type recordPointer struct {
	Table string `json:"table"`
	ID    string `json:"id"`
}

type syncRequest struct {
	Pointer recordPointer `json:"pointer"`
	Version int           `json:"version"`
}

type syncRecordValuesRequest struct {
	Requests []syncRequest `json:"requests"`
}

type syncRecordValuesResponse struct {
	RecordMap RecordMap `json:"recordMap"`
}

type permissionRecord struct {
	Table string `json:"table"`
	ID    string `json:"id"`
}

type signedURLRequest struct {
	PermissionRecord permissionRecord `json:"permissionRecord"`
	URL              string           `json:"url"`
}

type getSignedFileURLsRequest struct {
	URLs []signedURLRequest `json:"urls"`
}

type getSignedFileURLsResponse struct {
	SignedURLs []string `json:"signedUrls"`
}

// LoadPage fetches the record map rooted at pageID.
//
// # Algorithm
//
//  1. Page through loadPageChunk until the cursor stack is empty.
//  2. Fetch child blocks referenced but not yet loaded via syncRecordValues,
//     repeating until the tree is closed.
//  3. Fail if the root block never arrived or the tree is still open.
//  4. Sign Notion-hosted file URLs. Signing failures leave SignedURLs empty.
func (client *RecordClient) LoadPage(ctx context.Context, pageID string) (*RecordMap, error) {
	rootID := FormatID(pageID)
	recordMap := &RecordMap{Block: map[string]Record{}, SignedURLs: map[string]string{}}

	// 1. Chunked page load
	chunkCursor := cursor{Stack: []json.RawMessage{}}
	for chunkNumber := 0; chunkNumber < maxChunks; chunkNumber++ {
		var chunk loadPageChunkResponse
		err := postJSON(ctx, client.httpClient, client.baseURL, "/loadPageChunk", loadPageChunkRequest{
			PageID:      rootID,
			Limit:       chunkSize,
			Cursor:      chunkCursor,
			ChunkNumber: chunkNumber,
		}, &chunk)
		if err != nil {
			return nil, err
		}

		recordMap.merge(chunk.RecordMap)
		chunkCursor = chunk.Cursor

		if len(chunkCursor.Stack) == 0 {
			break
		}
	}
	if len(chunkCursor.Stack) != 0 {
		return nil, fmt.Errorf("notion: page %s exceeded %d chunks", rootID, maxChunks)
	}

	// 2. Resolve dangling children
	for round := 0; round < maxSyncRounds; round++ {
		missing := recordMap.missingBlocks()
		if len(missing) == 0 {
			break
		}

		request := syncRecordValuesRequest{Requests: make([]syncRequest, 0, len(missing))}
		for _, id := range missing {
			request.Requests = append(request.Requests, syncRequest{
				Pointer: recordPointer{Table: "block", ID: id},
				Version: -1,
			})
		}

		var synced syncRecordValuesResponse
		if err := postJSON(ctx, client.httpClient, client.baseURL, "/syncRecordValues", request, &synced); err != nil {
			return nil, err
		}
		if len(synced.RecordMap.Block) == 0 {
			break
		}
		recordMap.merge(synced.RecordMap)
	}

	// 3. Completeness checks
	if _, ok := recordMap.Block[rootID]; !ok {
		return nil, fmt.Errorf("notion: page %s not found in record map", rootID)
	}
	if missing := recordMap.missingBlocks(); len(missing) > 0 {
		return nil, fmt.Errorf("notion: page %s has %d unresolved blocks (first %s)", rootID, len(missing), missing[0])
	}

	// 4. File signing
	if err := client.signFileURLs(ctx, recordMap); err != nil {
		ctxutil.GetLogger(ctx).Warn("notion_sign_file_urls_failed",
			slog.String("page_id", rootID),
			slog.Any("error", err),
		)
	}

	return recordMap, nil
}

// signFileURLs fills recordMap.SignedURLs for every block whose file lives in
// Notion storage. The response list is aligned with the request order.
func (client *RecordClient) signFileURLs(ctx context.Context, recordMap *RecordMap) error {
	var (
		blockIDs []string
		request  getSignedFileURLsRequest
	)
	for id, record := range recordMap.Block {
		source, ok := record.hostedFile()
		if !ok {
			continue
		}
		blockIDs = append(blockIDs, id)
		request.URLs = append(request.URLs, signedURLRequest{
			PermissionRecord: permissionRecord{Table: "block", ID: id},
			URL:              source,
		})
	}
	if len(request.URLs) == 0 {
		return nil
	}

	var response getSignedFileURLsResponse
	if err := postJSON(ctx, client.httpClient, client.baseURL, "/getSignedFileUrls", request, &response); err != nil {
		return err
	}
	if len(response.SignedURLs) != len(blockIDs) {
		return fmt.Errorf("notion: signed %d of %d file urls", len(response.SignedURLs), len(blockIDs))
	}

	for i, id := range blockIDs {
		if response.SignedURLs[i] != "" {
			recordMap.SignedURLs[id] = response.SignedURLs[i]
		}
	}
	return nil
}
