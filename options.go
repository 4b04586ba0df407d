/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/rs/zerolog"

	"github.com/suparena/docstore/models"
	"github.com/suparena/docstore/partitionkey"
)

// ClientOptions configures a Client. The embedded azcore options control
// the transport pipeline (retry, custom Transporter, per-call policies);
// retry is the transport's concern, never this client's.
type ClientOptions struct {
	azcore.ClientOptions

	// Logger receives per-request debug events. Nil disables logging.
	Logger *zerolog.Logger
}

// ItemOptions configures single-item operations. It is an open-ended
// option bag; unrecognized concerns are extension points, not contract.
type ItemOptions struct {
	// PartitionKey is an explicit override. When set it takes priority
	// over derivation from the document body. Required for operations
	// that carry no body (read, delete).
	PartitionKey partitionkey.PartitionKey

	// EnableContentResponseOnWrite asks the service to echo the resulting
	// document back in the body of create/replace/upsert responses.
	// When false, writes return only the header envelope.
	EnableContentResponseOnWrite bool

	// DisableAutomaticIDGeneration suppresses the UUID the client assigns
	// to documents created without an "id" field.
	DisableAutomaticIDGeneration bool

	// IfMatchETag makes the operation conditional on the resource's
	// current etag. A mismatch fails with errors.ErrPreconditionFailed.
	IfMatchETag string
}

// QueryOptions configures paged queries.
type QueryOptions struct {
	// Parameters are named values passed through with the opaque query text.
	Parameters []models.QueryParameter

	// PageSize caps the item count per page request. Zero lets the
	// service choose.
	PageSize int32
}

func (o *ItemOptions) orDefault() *ItemOptions {
	if o == nil {
		return &ItemOptions{}
	}
	return o
}

func (o *QueryOptions) orDefault() *QueryOptions {
	if o == nil {
		return &QueryOptions{}
	}
	return o
}
