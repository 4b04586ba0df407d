/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/docstore/errors"
)

// base64 of "docstore-test-master-key-0123456789"
const testMasterKey = "ZG9jc3RvcmUtdGVzdC1tYXN0ZXIta2V5LTAxMjM0NTY3ODk="

func TestNewKeyCredential(t *testing.T) {
	cred, err := NewKeyCredential(testMasterKey)
	require.NoError(t, err)
	assert.NotEmpty(t, cred.key)
}

func TestNewKeyCredentialRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not base64", "!!not-base64!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKeyCredential(tt.key)
			assert.True(t, errors.IsBadCredential(err))
		})
	}
}

func TestAuthorizeSignatures(t *testing.T) {
	cred, err := NewKeyCredential(testMasterKey)
	require.NoError(t, err)

	// Vectors computed independently from the documented signing scheme.
	tests := []struct {
		name         string
		verb         string
		resourceType string
		resourceLink string
		date         string
		expected     string
	}{
		{
			name:         "read database",
			verb:         "GET",
			resourceType: "dbs",
			resourceLink: "dbs/testdb",
			date:         "thu, 27 apr 2017 00:51:12 gmt",
			expected:     "type%3Dmaster%26ver%3D1.0%26sig%3DVSv7JIJDIOYgtaElIpnTVqkDTrpzta2Q0fC9oiqJFJ8%3D",
		},
		{
			name:         "create document",
			verb:         "POST",
			resourceType: "docs",
			resourceLink: "dbs/testdb/colls/items",
			date:         "mon, 01 jan 2024 10:00:00 gmt",
			expected:     "type%3Dmaster%26ver%3D1.0%26sig%3DRsg3ScI4THlooKeffqtPgUBgNeEkuuRFJS1hq%2F0Q7HU%3D",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cred.authorize(tt.verb, tt.resourceType, tt.resourceLink, tt.date)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAuthorizeLowercasesVerbAndDate(t *testing.T) {
	cred, err := NewKeyCredential(testMasterKey)
	require.NoError(t, err)

	lower := cred.authorize("get", "dbs", "dbs/testdb", "thu, 27 apr 2017 00:51:12 gmt")
	upper := cred.authorize("GET", "DBS", "dbs/testdb", "THU, 27 APR 2017 00:51:12 GMT")
	assert.Equal(t, lower, upper)
}
