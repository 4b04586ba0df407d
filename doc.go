/*
Package docstore is a client SDK for a partitioned, multi-tenant, HTTP-based
document store. It owns the connection lifecycle, resolves partition keys,
executes requests against the service and paginates query results, behind
synchronous calls that are safe to issue from many goroutines against the
same client.

The resource hierarchy is three tiers of handles:
  - Client: one service endpoint plus credential; exclusively owns the
    underlying transport pipeline, shared by every handle derived from it.
  - DatabaseHandle: a cheap view of (client, database id).
  - ContainerHandle: a cheap view of (client, database id, container id),
    plus the partition key path when known.

Basic Usage:

	cred, err := docstore.NewKeyCredential(os.Getenv("DOCSTORE_KEY"))
	client, err := docstore.NewClient("https://myaccount.example.com:443/", cred, nil)

	db, _, err := client.CreateDatabase(ctx, "appdata")
	container, _, err := db.CreateContainer(ctx, "orders", []string{"/tenantId"})

	item := map[string]any{"id": "o-1", "tenantId": "t-1", "total": 12.5}
	_, err = container.CreateItem(ctx, item, nil)

	pk := partitionkey.String("t-1")
	out, err := container.QueryItems(ctx, "SELECT * FROM c", pk, nil)

Remote failures surface through the semantic types in the errors package,
so callers can branch on errors.IsNotFound, errors.IsConflict and friends.

For more information, see the documentation at https://github.com/suparena/docstore
*/
package docstore
