/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package partitionkey

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/suparena/docstore/errors"
)

type kind int

const (
	kindUnset kind = iota
	kindString
	kindInt
	kindFloat
)

// PartitionKey is a tagged scalar: exactly one of string, integer or
// floating-point is active. The zero value is unset, which operations
// that require a key reject up front.
type PartitionKey struct {
	kind kind
	str  string
	i    int64
	f    float64
}

// String creates a string-valued partition key.
func String(v string) PartitionKey {
	return PartitionKey{kind: kindString, str: v}
}

// Int creates an integer-valued partition key.
func Int(v int64) PartitionKey {
	return PartitionKey{kind: kindInt, i: v}
}

// Float creates a floating-point partition key.
func Float(v float64) PartitionKey {
	return PartitionKey{kind: kindFloat, f: v}
}

// FromValue converts a loosely-typed scalar into a PartitionKey.
// Strings, all Go integer widths and float32/float64 are accepted;
// anything else fails with errors.ErrInvalidKeyType. Unsigned values
// above the int64 range are rejected rather than wrapped.
func FromValue(v any) (PartitionKey, error) {
	switch tv := v.(type) {
	case PartitionKey:
		return tv, nil
	case string:
		return String(tv), nil
	case int:
		return Int(int64(tv)), nil
	case int8:
		return Int(int64(tv)), nil
	case int16:
		return Int(int64(tv)), nil
	case int32:
		return Int(int64(tv)), nil
	case int64:
		return Int(tv), nil
	case uint:
		if uint64(tv) > math.MaxInt64 {
			return PartitionKey{}, errors.NewKeyTypeError(v)
		}
		return Int(int64(tv)), nil
	case uint8:
		return Int(int64(tv)), nil
	case uint16:
		return Int(int64(tv)), nil
	case uint32:
		return Int(int64(tv)), nil
	case uint64:
		if tv > math.MaxInt64 {
			return PartitionKey{}, errors.NewKeyTypeError(v)
		}
		return Int(int64(tv)), nil
	case float32:
		return Float(float64(tv)), nil
	case float64:
		return Float(tv), nil
	default:
		return PartitionKey{}, errors.NewKeyTypeError(v)
	}
}

// IsZero reports whether the key is unset.
func (pk PartitionKey) IsZero() bool {
	return pk.kind == kindUnset
}

// Value returns the active scalar, or nil when unset.
func (pk PartitionKey) Value() any {
	switch pk.kind {
	case kindString:
		return pk.str
	case kindInt:
		return pk.i
	case kindFloat:
		return pk.f
	default:
		return nil
	}
}

// WireValue encodes the key in the store's canonical wire representation:
// a JSON array holding the single scalar, e.g. ["tenant-1"] or [42].
func (pk PartitionKey) WireValue() (string, error) {
	if pk.IsZero() {
		return "", errors.NewValidationError("partitionKey", "partition key is unset")
	}
	b, err := json.Marshal([]any{pk.Value()})
	if err != nil {
		return "", fmt.Errorf("failed to encode partition key: %w", err)
	}
	return string(b), nil
}

// FallbackFields is the fixed, ordered candidate list probed when a
// document carries no declared partition key path. The first field
// present in the body wins, so a document with both "pk" and "id"
// always keys on "pk". Callers should declare the path on the
// container instead of relying on this order.
var FallbackFields = []string{"pk", "partitionKey", "category", "type", "tenantId", "id"}

// Derive resolves the partition key for a document body.
//
// Priority order:
//  1. an explicit caller-supplied override;
//  2. the declared partition key path, when the container knows one
//     (leading separator stripped, top-level fields only);
//  3. the first FallbackFields candidate present in the body.
//
// A declared path whose field is absent from the body fails rather
// than falling through to the candidate probe. When nothing resolves,
// Derive fails with errors.ErrInvalidInput.
func Derive(doc map[string]any, declaredPath string, override PartitionKey) (PartitionKey, error) {
	if !override.IsZero() {
		return override, nil
	}

	if declaredPath != "" {
		field := strings.TrimPrefix(declaredPath, "/")
		if v, ok := doc[field]; ok {
			return FromValue(v)
		}
		return PartitionKey{}, errors.NewValidationError(field, "partition key not found at declared path")
	}

	for _, field := range FallbackFields {
		if v, ok := doc[field]; ok {
			return FromValue(v)
		}
	}

	return PartitionKey{}, errors.NewValidationError("", "partition key not found")
}
