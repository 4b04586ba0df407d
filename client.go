/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/rs/zerolog"

	"github.com/suparena/docstore/errors"
	"github.com/suparena/docstore/models"
)

const moduleName = "github.com/suparena/docstore"

// Client is the account-level handle: one service endpoint plus
// credential. It exclusively owns the underlying transport pipeline,
// built once at construction and immutable afterwards, so concurrent
// calls from many goroutines need no external locking. Database and
// container handles are cheap views sharing this client.
type Client struct {
	endpoint string
	cred     KeyCredential
	pl       runtime.Pipeline
	log      zerolog.Logger
}

// NewClient creates a client for the given account endpoint. The
// credential must have been constructed with NewKeyCredential; a zero
// credential fails here rather than on first use.
func NewClient(endpoint string, cred KeyCredential, o *ClientOptions) (*Client, error) {
	if endpoint == "" {
		return nil, errors.NewValidationError("endpoint", "endpoint is required")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewValidationError("endpoint", fmt.Sprintf("%q is not an absolute URL", endpoint))
	}
	if len(cred.key) == 0 {
		return nil, errors.NewCredentialError("credential is unset")
	}
	if o == nil {
		o = &ClientOptions{}
	}

	log := zerolog.Nop()
	if o.Logger != nil {
		log = *o.Logger
	}

	pl := runtime.NewPipeline(moduleName, Version, runtime.PipelineOptions{}, &o.ClientOptions)

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		cred:     cred,
		pl:       pl,
		log:      log,
	}, nil
}

// Endpoint returns the account endpoint this client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Database returns a handle to a database by id. No request is made;
// the handle is a capability view created on demand.
func (c *Client) Database(id string) *DatabaseHandle {
	return &DatabaseHandle{client: c, id: id}
}

// CreateDatabase creates a database and returns a handle to it. A
// concurrent creator racing on the same id surfaces as
// errors.ErrConflict; the conflict is never swallowed.
func (c *Client) CreateDatabase(ctx context.Context, id string) (*DatabaseHandle, models.Response, error) {
	if id == "" {
		return nil, models.Response{}, errors.NewValidationError("id", "database id is required")
	}

	body := models.DatabaseProperties{ID: id}
	resp, _, err := c.sendRequest(ctx, http.MethodPost, "dbs", "", "/dbs", body, requestOptions{})
	if err != nil {
		return nil, resp, err
	}
	return c.Database(id), resp, nil
}

// DeleteDatabase deletes a database by id.
func (c *Client) DeleteDatabase(ctx context.Context, id string) (models.Response, error) {
	resp, _, err := c.sendRequest(ctx, http.MethodDelete, "dbs", "dbs/"+id, "/dbs/"+id, nil, requestOptions{})
	return resp, err
}

// ListDatabases reads the database feed to exhaustion and returns the
// properties of every database in the account. Metadata listings ride
// the same continuation protocol as item queries but carry no partition
// key.
func (c *Client) ListDatabases(ctx context.Context) ([]models.DatabaseProperties, models.Response, error) {
	raw, resp, err := c.readFeed(ctx, feedRequest{
		method:       http.MethodGet,
		resourceType: "dbs",
		resourceLink: "",
		path:         "/dbs",
	}, "Databases")
	if err != nil {
		return nil, models.Response{}, err
	}

	dbs := make([]models.DatabaseProperties, 0, len(raw))
	for _, r := range raw {
		var props models.DatabaseProperties
		if err := json.Unmarshal(r, &props); err != nil {
			return nil, models.Response{}, fmt.Errorf("failed to decode database properties: %w", err)
		}
		dbs = append(dbs, props)
	}
	return dbs, resp, nil
}
