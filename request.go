/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"

	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/models"
)

// apiVersion is the service REST version this client speaks.
const apiVersion = "2018-12-31"

const (
	headerDate         = "x-ms-date"
	headerVersion      = "x-ms-version"
	headerPartitionKey = "x-ms-documentdb-partitionkey"
	headerIsUpsert     = "x-ms-documentdb-is-upsert"
	headerIsQuery      = "x-ms-documentdb-isquery"
	headerMaxItemCount = "x-ms-max-item-count"
	headerContinuation = "x-ms-continuation"
)

// requestOptions carries the per-request knobs the executor translates
// into headers.
type requestOptions struct {
	partitionKey string // wire-encoded, set when non-empty
	isUpsert     bool
	isWrite      bool
	echoBody     bool
	ifMatch      string
	isQuery      bool
	maxItemCount int32
	continuation string
}

// sendRequest runs one logical operation to completion on the shared
// pipeline: build, sign, execute, capture the envelope, decode the body,
// classify failure. The envelope is captured from the headers BEFORE the
// body is consumed; the transport body is a single-consumption stream.
// Retry, if any, happens in the pipeline beneath, never here.
func (c *Client) sendRequest(ctx context.Context, method, resourceType, resourceLink, path string, body any, opts requestOptions) (models.Response, []byte, error) {
	req, err := runtime.NewRequest(ctx, method, runtime.JoinPaths(c.endpoint, path))
	if err != nil {
		return models.Response{}, nil, fmt.Errorf("failed to build request: %w", err)
	}

	date := strings.ToLower(time.Now().UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT"))
	h := req.Raw().Header
	h.Set(headerDate, date)
	h.Set(headerVersion, apiVersion)
	h.Set("Authorization", c.cred.authorize(method, resourceType, resourceLink, date))
	h.Set("Accept", "application/json")

	if opts.partitionKey != "" {
		h.Set(headerPartitionKey, opts.partitionKey)
	}
	if opts.isUpsert {
		h.Set(headerIsUpsert, "true")
	}
	if opts.isWrite && !opts.echoBody {
		h.Set("Prefer", "return=minimal")
	}
	if opts.ifMatch != "" {
		h.Set("If-Match", opts.ifMatch)
	}
	if opts.maxItemCount > 0 {
		h.Set(headerMaxItemCount, strconv.Itoa(int(opts.maxItemCount)))
	}
	if opts.continuation != "" {
		h.Set(headerContinuation, opts.continuation)
	}

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return models.Response{}, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		contentType := "application/json"
		if opts.isQuery {
			contentType = "application/query+json"
			h.Set(headerIsQuery, "True")
		}
		if err := req.SetBody(streaming.NopCloser(bytes.NewReader(data)), contentType); err != nil {
			return models.Response{}, nil, fmt.Errorf("failed to set request body: %w", err)
		}
	}

	resp, err := c.pl.Do(req)
	if err != nil {
		return models.Response{}, nil, errors.Classify(err)
	}

	// Envelope first: headers must be captured before the body stream
	// is consumed.
	envelope := models.NewResponse(resp)

	payload, err := runtime.Payload(resp)
	if err != nil {
		return envelope, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", envelope.StatusCode).
		Float64("requestCharge", envelope.RequestCharge).
		Msg("request complete")

	if envelope.StatusCode >= 400 {
		return envelope, nil, errors.NewStatusError(envelope.StatusCode, envelope.ActivityID, serviceMessage(payload))
	}

	return envelope, payload, nil
}

// serviceMessage extracts the service's error message from a failure
// body, falling back to the raw payload.
func serviceMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(payload))
}
