/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package partitionkey

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/docstore/errors"
)

func TestFromValueSupportedScalars(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		value any
	}{
		{"string", "tenant-1", "tenant-1"},
		{"int", 42, int64(42)},
		{"int64", int64(-7), int64(-7)},
		{"uint32", uint32(7), int64(7)},
		{"uint64", uint64(9), int64(9)},
		{"float64", 2.5, 2.5},
		{"float32", float32(1.5), 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pk, err := FromValue(tt.in)
			require.NoError(t, err)
			assert.False(t, pk.IsZero())
			assert.Equal(t, tt.value, pk.Value())
		})
	}
}

func TestFromValueUnsupportedShapes(t *testing.T) {
	for _, v := range []any{true, nil, []string{"a"}, map[string]any{"a": 1}, struct{ A int }{1}} {
		_, err := FromValue(v)
		assert.Truef(t, errors.IsInvalidKeyType(err), "FromValue(%#v) should fail with ErrInvalidKeyType, got %v", v, err)
	}
}

func TestFromValueUnsignedOverflow(t *testing.T) {
	for _, v := range []any{uint64(math.MaxInt64) + 1, uint64(math.MaxUint64)} {
		_, err := FromValue(v)
		assert.Truef(t, errors.IsInvalidKeyType(err), "FromValue(%#v) should reject values above the int64 range, got %v", v, err)
	}

	pk, err := FromValue(uint64(math.MaxInt64))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), pk.Value())
}

func TestFromValuePassthrough(t *testing.T) {
	orig := String("x")
	pk, err := FromValue(orig)
	require.NoError(t, err)
	assert.Equal(t, orig, pk)
}

func TestWireValue(t *testing.T) {
	tests := []struct {
		name string
		pk   PartitionKey
		wire string
	}{
		{"string", String("tenant-1"), `["tenant-1"]`},
		{"int", Int(42), `[42]`},
		{"float", Float(2.5), `[2.5]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire, err := tt.pk.WireValue()
			require.NoError(t, err)
			assert.Equal(t, tt.wire, wire)
		})
	}
}

func TestWireValueUnset(t *testing.T) {
	var pk PartitionKey
	_, err := pk.WireValue()
	assert.True(t, errors.IsInvalidInput(err))
}

func TestDeriveOverrideWins(t *testing.T) {
	doc := map[string]any{"pk": "from-body", "id": "1"}

	pk, err := Derive(doc, "/pk", String("explicit"))
	require.NoError(t, err)
	assert.Equal(t, "explicit", pk.Value())
}

func TestDeriveDeclaredPath(t *testing.T) {
	// The declared path wins even when fallback candidates are present.
	doc := map[string]any{"tenant": "t-9", "pk": "decoy", "id": "decoy"}

	pk, err := Derive(doc, "/tenant", PartitionKey{})
	require.NoError(t, err)
	assert.Equal(t, "t-9", pk.Value())
}

func TestDeriveDeclaredPathMissingField(t *testing.T) {
	doc := map[string]any{"id": "1"}

	_, err := Derive(doc, "/tenant", PartitionKey{})
	assert.True(t, errors.IsInvalidInput(err))
}

func TestDeriveFallbackOrderDeterministic(t *testing.T) {
	doc := map[string]any{"id": "the-id", "pk": "the-pk"}

	// The same candidate must win on every invocation.
	for i := 0; i < 10; i++ {
		pk, err := Derive(doc, "", PartitionKey{})
		require.NoError(t, err)
		assert.Equal(t, "the-pk", pk.Value())
	}
}

func TestDeriveFallbackLaterCandidates(t *testing.T) {
	tests := []struct {
		name  string
		doc   map[string]any
		value any
	}{
		{"category", map[string]any{"category": "books", "id": "1"}, "books"},
		{"tenantId", map[string]any{"tenantId": "t-1", "id": "1"}, "t-1"},
		{"id only", map[string]any{"id": "1"}, "1"},
		{"numeric candidate", map[string]any{"pk": float64(3)}, float64(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pk, err := Derive(tt.doc, "", PartitionKey{})
			require.NoError(t, err)
			assert.Equal(t, tt.value, pk.Value())
		})
	}
}

func TestDeriveNoCandidate(t *testing.T) {
	doc := map[string]any{"name": "no key fields here"}

	_, err := Derive(doc, "", PartitionKey{})
	assert.True(t, errors.IsInvalidInput(err))
}

func TestDeriveBadCandidateType(t *testing.T) {
	doc := map[string]any{"pk": true}

	_, err := Derive(doc, "", PartitionKey{})
	assert.True(t, errors.IsInvalidKeyType(err))
}
