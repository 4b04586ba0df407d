/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/models"
	"github.com/suparena/docstore/partitionkey"
)

// ContainerHandle is a lightweight view of one container: a shared client
// reference, the database and container ids, and the partition key path
// when known. The path is captured at container-creation time; handles
// obtained by id alone derive partition keys from document bodies via the
// fallback candidate fields instead, which is why callers should prefer
// handles from CreateContainer.
type ContainerHandle struct {
	client           *Client
	database         string
	id               string
	partitionKeyPath string
}

// ID returns the container id.
func (ct *ContainerHandle) ID() string {
	return ct.id
}

// PartitionKeyPath returns the declared partition key path, or "" when
// the handle was created without one.
func (ct *ContainerHandle) PartitionKeyPath() string {
	return ct.partitionKeyPath
}

func (ct *ContainerHandle) link() string {
	return "dbs/" + ct.database + "/colls/" + ct.id
}

func (ct *ContainerHandle) itemLink(id string) string {
	return ct.link() + "/docs/" + id
}

// Read fetches the container's properties, including its partition key
// definition.
func (ct *ContainerHandle) Read(ctx context.Context) (models.ContainerProperties, models.Response, error) {
	resp, payload, err := ct.client.sendRequest(ctx, http.MethodGet, "colls", ct.link(), "/"+ct.link(), nil, requestOptions{})
	if err != nil {
		return models.ContainerProperties{}, resp, err
	}

	var props models.ContainerProperties
	if err := json.Unmarshal(payload, &props); err != nil {
		return models.ContainerProperties{}, resp, fmt.Errorf("failed to decode container properties: %w", err)
	}
	return props, resp, nil
}

// CreateItem creates a document. A body without an "id" field gets a
// generated UUID unless the options disable that. A conflict on an
// existing id surfaces as errors.ErrConflict. The resulting document is
// echoed back only when EnableContentResponseOnWrite is set.
func (ct *ContainerHandle) CreateItem(ctx context.Context, item any, o *ItemOptions) (models.ItemResponse, error) {
	return ct.putItem(ctx, item, o, false)
}

// UpsertItem creates or replaces a document keyed by id and partition key.
func (ct *ContainerHandle) UpsertItem(ctx context.Context, item any, o *ItemOptions) (models.ItemResponse, error) {
	return ct.putItem(ctx, item, o, true)
}

func (ct *ContainerHandle) putItem(ctx context.Context, item any, o *ItemOptions, upsert bool) (models.ItemResponse, error) {
	o = o.orDefault()

	doc, err := toDocument(item)
	if err != nil {
		return models.ItemResponse{}, err
	}
	if _, ok := doc["id"]; !ok && !o.DisableAutomaticIDGeneration {
		doc["id"] = uuid.NewString()
	}

	wire, err := ct.resolveKey(doc, o)
	if err != nil {
		return models.ItemResponse{}, err
	}

	resp, payload, err := ct.client.sendRequest(ctx, http.MethodPost, "docs", ct.link(), "/"+ct.link()+"/docs", doc, requestOptions{
		partitionKey: wire,
		isUpsert:     upsert,
		isWrite:      true,
		echoBody:     o.EnableContentResponseOnWrite,
		ifMatch:      o.IfMatchETag,
	})
	if err != nil {
		return models.ItemResponse{}, err
	}
	return itemResponse(resp, payload, o.EnableContentResponseOnWrite), nil
}

// ReplaceItem replaces the document with the given id. The partition key
// is derived from the new body unless the options carry an override.
func (ct *ContainerHandle) ReplaceItem(ctx context.Context, id string, item any, o *ItemOptions) (models.ItemResponse, error) {
	o = o.orDefault()

	doc, err := toDocument(item)
	if err != nil {
		return models.ItemResponse{}, err
	}

	wire, err := ct.resolveKey(doc, o)
	if err != nil {
		return models.ItemResponse{}, err
	}

	resp, payload, err := ct.client.sendRequest(ctx, http.MethodPut, "docs", ct.itemLink(id), "/"+ct.itemLink(id), doc, requestOptions{
		partitionKey: wire,
		isWrite:      true,
		echoBody:     o.EnableContentResponseOnWrite,
		ifMatch:      o.IfMatchETag,
	})
	if err != nil {
		return models.ItemResponse{}, err
	}
	return itemResponse(resp, payload, o.EnableContentResponseOnWrite), nil
}

// ReadItem fetches one document by id and partition key.
func (ct *ContainerHandle) ReadItem(ctx context.Context, id string, pk partitionkey.PartitionKey, o *ItemOptions) (models.ItemResponse, error) {
	o = o.orDefault()

	wire, err := pk.WireValue()
	if err != nil {
		return models.ItemResponse{}, err
	}

	resp, payload, err := ct.client.sendRequest(ctx, http.MethodGet, "docs", ct.itemLink(id), "/"+ct.itemLink(id), nil, requestOptions{
		partitionKey: wire,
		ifMatch:      o.IfMatchETag,
	})
	if err != nil {
		return models.ItemResponse{}, err
	}
	return itemResponse(resp, payload, true), nil
}

// DeleteItem deletes one document by id and partition key. Deleting a
// nonexistent document surfaces as errors.ErrNotFound.
func (ct *ContainerHandle) DeleteItem(ctx context.Context, id string, pk partitionkey.PartitionKey, o *ItemOptions) (models.Response, error) {
	o = o.orDefault()

	wire, err := pk.WireValue()
	if err != nil {
		return models.Response{}, err
	}

	resp, _, err := ct.client.sendRequest(ctx, http.MethodDelete, "docs", ct.itemLink(id), "/"+ct.itemLink(id), nil, requestOptions{
		partitionKey: wire,
		ifMatch:      o.IfMatchETag,
	})
	return resp, err
}

// QueryItems runs a query within one partition, exhausting every page
// before returning; the items come back aggregated in page order. The
// query text is opaque to the client. A partition key is required and
// its absence fails before any network round trip; cross-partition
// fan-out is out of scope.
func (ct *ContainerHandle) QueryItems(ctx context.Context, query string, pk partitionkey.PartitionKey, o *QueryOptions) (models.QueryResponse, error) {
	o = o.orDefault()

	if pk.IsZero() {
		return models.QueryResponse{}, errors.NewValidationError("partitionKey", "a partition key is required to query items")
	}
	wire, err := pk.WireValue()
	if err != nil {
		return models.QueryResponse{}, err
	}

	params := o.Parameters
	if params == nil {
		params = []models.QueryParameter{}
	}

	items, resp, err := ct.client.readFeed(ctx, feedRequest{
		method:       http.MethodPost,
		resourceType: "docs",
		resourceLink: ct.link(),
		path:         "/" + ct.link() + "/docs",
		body:         querySpec{Query: query, Parameters: params},
		partitionKey: wire,
		pageSize:     o.PageSize,
	}, "Documents")
	if err != nil {
		return models.QueryResponse{}, err
	}
	return models.QueryResponse{Response: resp, Items: items}, nil
}

// PatchItem is an explicitly unsupported operation family in this client.
func (ct *ContainerHandle) PatchItem(ctx context.Context, id string, pk partitionkey.PartitionKey, operations any, o *ItemOptions) (models.ItemResponse, error) {
	return models.ItemResponse{}, errors.NewNotImplementedError("PatchItem")
}

// resolveKey derives the wire-encoded partition key for a document body,
// honoring an explicit override from the options first.
func (ct *ContainerHandle) resolveKey(doc map[string]any, o *ItemOptions) (string, error) {
	pk, err := partitionkey.Derive(doc, ct.partitionKeyPath, o.PartitionKey)
	if err != nil {
		return "", err
	}
	return pk.WireValue()
}

// toDocument normalizes an item into a JSON object. Raw JSON is accepted
// as-is; anything else round-trips through encoding/json. The store is
// schemaless, so no shape beyond "object" is enforced.
func toDocument(item any) (map[string]any, error) {
	var data []byte
	switch tv := item.(type) {
	case json.RawMessage:
		data = tv
	case []byte:
		data = tv
	default:
		var err error
		data, err = json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("failed to encode document: %w", err)
		}
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewValidationError("", "document body must be a JSON object")
	}
	return doc, nil
}

func itemResponse(resp models.Response, payload []byte, includeBody bool) models.ItemResponse {
	out := models.ItemResponse{Response: resp}
	if includeBody && len(payload) > 0 {
		out.Item = payload
	}
	return out
}
