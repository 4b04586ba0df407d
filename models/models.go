/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Response is the status/header envelope captured for every remote
// operation. Headers are read before the body is consumed because the
// transport response is a single-consumption stream.
type Response struct {
	// StatusCode is the HTTP status of the operation.
	StatusCode int
	// Headers is the full response header map.
	Headers http.Header
	// RequestCharge is the normalized request charge reported by the service.
	RequestCharge float64
	// ActivityID identifies the operation server-side, for diagnostics.
	ActivityID string
	// ETag is the resource etag after the operation, when present.
	ETag string
	// SessionToken is the session consistency token, when present.
	SessionToken string
}

// NewResponse captures the envelope from a raw transport response.
// It only inspects status and headers, never the body.
func NewResponse(resp *http.Response) Response {
	r := Response{
		StatusCode:   resp.StatusCode,
		Headers:      resp.Header,
		ActivityID:   resp.Header.Get("x-ms-activity-id"),
		ETag:         resp.Header.Get("ETag"),
		SessionToken: resp.Header.Get("x-ms-session-token"),
	}
	if rc := resp.Header.Get("x-ms-request-charge"); rc != "" {
		if v, err := strconv.ParseFloat(rc, 64); err == nil {
			r.RequestCharge = v
		}
	}
	return r
}

// ItemResponse is the outcome of a single-item operation. Item is nil
// for writes that did not request the resulting document be echoed back.
type ItemResponse struct {
	Response
	Item json.RawMessage
}

// QueryResponse is the fully materialized outcome of a paged query or
// listing: all pages aggregated in page order.
type QueryResponse struct {
	Response
	Items []json.RawMessage
}

// DatabaseProperties describes a database resource.
type DatabaseProperties struct {
	ID         string `json:"id"`
	ResourceID string `json:"_rid,omitempty"`
	SelfLink   string `json:"_self,omitempty"`
	ETag       string `json:"_etag,omitempty"`
	Timestamp  int64  `json:"_ts,omitempty"`
}

// PartitionKeyDefinition declares how a container partitions its documents.
type PartitionKeyDefinition struct {
	Paths   []string `json:"paths"`
	Kind    string   `json:"kind"`
	Version int      `json:"version,omitempty"`
}

// ContainerProperties describes a container resource.
type ContainerProperties struct {
	ID           string                 `json:"id"`
	PartitionKey PartitionKeyDefinition `json:"partitionKey"`
	ResourceID   string                 `json:"_rid,omitempty"`
	SelfLink     string                 `json:"_self,omitempty"`
	ETag         string                 `json:"_etag,omitempty"`
	Timestamp    int64                  `json:"_ts,omitempty"`
}

// QueryParameter is a named value passed through with a query. The query
// text itself is opaque to the client.
type QueryParameter struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}
