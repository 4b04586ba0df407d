/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/models"
)

// DatabaseHandle is a lightweight view of one database: a shared client
// reference plus the database id. It holds no connection state of its own
// and is cheap to copy.
type DatabaseHandle struct {
	client *Client
	id     string
}

// ID returns the database id.
func (db *DatabaseHandle) ID() string {
	return db.id
}

func (db *DatabaseHandle) link() string {
	return "dbs/" + db.id
}

// Container returns a handle to a container by id. No request is made,
// so the handle carries no partition key path; items written through it
// fall back to derivation from the document body.
func (db *DatabaseHandle) Container(id string) *ContainerHandle {
	return &ContainerHandle{client: db.client, database: db.id, id: id}
}

// CreateContainer creates a container partitioned on the single given
// path and returns a handle that remembers that path for partition key
// derivation. The paths slice must hold exactly one path starting with
// "/"; hierarchical keys are out of scope.
func (db *DatabaseHandle) CreateContainer(ctx context.Context, id string, partitionKeyPaths []string) (*ContainerHandle, models.Response, error) {
	if id == "" {
		return nil, models.Response{}, errors.NewValidationError("id", "container id is required")
	}
	if len(partitionKeyPaths) != 1 {
		return nil, models.Response{}, errors.NewValidationError("partitionKeyPaths", "must contain exactly one path")
	}
	path := partitionKeyPaths[0]
	if !strings.HasPrefix(path, "/") {
		return nil, models.Response{}, errors.NewValidationError("partitionKeyPaths", fmt.Sprintf("path %q must start with /", path))
	}

	body := models.ContainerProperties{
		ID: id,
		PartitionKey: models.PartitionKeyDefinition{
			Paths:   partitionKeyPaths,
			Kind:    "Hash",
			Version: 2,
		},
	}
	resp, _, err := db.client.sendRequest(ctx, http.MethodPost, "colls", db.link(), "/"+db.link()+"/colls", body, requestOptions{})
	if err != nil {
		return nil, resp, err
	}

	return &ContainerHandle{
		client:           db.client,
		database:         db.id,
		id:               id,
		partitionKeyPath: path,
	}, resp, nil
}

// DeleteContainer deletes a container by id.
func (db *DatabaseHandle) DeleteContainer(ctx context.Context, id string) (models.Response, error) {
	link := db.link() + "/colls/" + id
	resp, _, err := db.client.sendRequest(ctx, http.MethodDelete, "colls", link, "/"+link, nil, requestOptions{})
	return resp, err
}

// Read fetches the database's properties.
func (db *DatabaseHandle) Read(ctx context.Context) (models.DatabaseProperties, models.Response, error) {
	resp, payload, err := db.client.sendRequest(ctx, http.MethodGet, "dbs", db.link(), "/"+db.link(), nil, requestOptions{})
	if err != nil {
		return models.DatabaseProperties{}, resp, err
	}

	var props models.DatabaseProperties
	if err := json.Unmarshal(payload, &props); err != nil {
		return models.DatabaseProperties{}, resp, fmt.Errorf("failed to decode database properties: %w", err)
	}
	return props, resp, nil
}

// ListContainers reads the container feed to exhaustion and returns the
// properties of every container in the database.
func (db *DatabaseHandle) ListContainers(ctx context.Context) ([]models.ContainerProperties, models.Response, error) {
	raw, resp, err := db.client.readFeed(ctx, feedRequest{
		method:       http.MethodGet,
		resourceType: "colls",
		resourceLink: db.link(),
		path:         "/" + db.link() + "/colls",
	}, "DocumentCollections")
	if err != nil {
		return nil, models.Response{}, err
	}

	colls := make([]models.ContainerProperties, 0, len(raw))
	for _, r := range raw {
		var props models.ContainerProperties
		if err := json.Unmarshal(r, &props); err != nil {
			return nil, models.Response{}, fmt.Errorf("failed to decode container properties: %w", err)
		}
		colls = append(colls, props)
	}
	return colls, resp, nil
}
