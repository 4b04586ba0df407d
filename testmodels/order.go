package testmodels

import "github.com/go-openapi/strfmt"

type Order struct {

	// Timestamp when the order was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"createdAt"`

	// Unique identifier for the order.
	// Required: true
	ID *string `json:"id"`

	// Order status.
	Status string `json:"status,omitempty"`

	// Tenant owning the order; the partition key field.
	// Required: true
	TenantID *string `json:"tenantId"`

	// Order total.
	// Required: true
	Total *float64 `json:"total"`

	// Timestamp when the order was last updated.
	// Required: true
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"updatedAt"`
}
