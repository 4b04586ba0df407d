/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/suparena/docstore/models"
)

// feedRequest describes one paged feed: a metadata listing (GET) or an
// item query (POST with a query body).
type feedRequest struct {
	method       string
	resourceType string
	resourceLink string
	path         string
	body         any
	partitionKey string
	pageSize     int32
}

// querySpec is the wire body of a query request. The query text is an
// opaque string passed through unchanged.
type querySpec struct {
	Query      string                  `json:"query"`
	Parameters []models.QueryParameter `json:"parameters"`
}

// readFeed drives the server's continuation-token protocol to exhaustion,
// materializing every page in page order before returning. The cursor is
// opaque and lives only for this call; page N+1 is issued only after page
// N's response arrives. A mid-stream failure discards everything
// accumulated so far and surfaces as a single error.
func (c *Client) readFeed(ctx context.Context, fr feedRequest, payloadKey string) ([]json.RawMessage, models.Response, error) {
	var items []json.RawMessage
	var last models.Response
	continuation := ""
	pages := 0

	for {
		opts := requestOptions{
			partitionKey: fr.partitionKey,
			isQuery:      fr.body != nil,
			maxItemCount: fr.pageSize,
			continuation: continuation,
		}
		resp, payload, err := c.sendRequest(ctx, fr.method, fr.resourceType, fr.resourceLink, fr.path, fr.body, opts)
		if err != nil {
			return nil, models.Response{}, err
		}

		var page map[string]json.RawMessage
		if err := json.Unmarshal(payload, &page); err != nil {
			return nil, models.Response{}, fmt.Errorf("failed to decode feed page: %w", err)
		}
		if raw, ok := page[payloadKey]; ok {
			var pageItems []json.RawMessage
			if err := json.Unmarshal(raw, &pageItems); err != nil {
				return nil, models.Response{}, fmt.Errorf("failed to decode feed items: %w", err)
			}
			items = append(items, pageItems...)
		}

		last = resp
		pages++

		continuation = resp.Headers.Get(headerContinuation)
		if continuation == "" {
			break
		}
	}

	c.log.Debug().
		Str("path", fr.path).
		Int("pages", pages).
		Int("items", len(items)).
		Msg("feed exhausted")

	return items, last, nil
}
