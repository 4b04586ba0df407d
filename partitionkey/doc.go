/*
Package partitionkey converts loosely-typed scalars into the document
store's canonical partition key representation and derives keys from
document bodies.

A PartitionKey is a tagged scalar: string, integer or floating-point,
never a compound key. FromValue enforces that boundary:

	pk, err := partitionkey.FromValue("tenant-1") // ok
	pk, err := partitionkey.FromValue(42)         // ok
	pk, err := partitionkey.FromValue(true)       // errors.ErrInvalidKeyType

Derive resolves the key for a document body, preferring an explicit
override, then the container's declared partition key path, then a
fixed candidate field order (FallbackFields). The candidate order is a
deliberate, documented tie-break: a document carrying both "pk" and
"id" keys on "pk" every time. Declaring the path on the container
avoids relying on it.
*/
package partitionkey
