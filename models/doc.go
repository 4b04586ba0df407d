/*
Package models defines the data structures shared across the docstore client.

Key Types:

Response:
The status/header envelope every operation returns alongside (or instead
of) a body:

	resp, err := client.DeleteDatabase(ctx, "appdata")
	fmt.Println(resp.StatusCode, resp.RequestCharge, resp.ActivityID)

ItemResponse / QueryResponse:
Single-item outcomes carry an optional raw document; query outcomes carry
the fully aggregated item set:

	out, err := container.QueryItems(ctx, "SELECT * FROM c", pk, nil)
	for _, raw := range out.Items {
	    var doc map[string]any
	    _ = json.Unmarshal(raw, &doc)
	}

DatabaseProperties / ContainerProperties:
Metadata resources as the service returns them, including the system
fields (_rid, _etag, _ts) the store stamps onto every resource.

Documents themselves stay schemaless: items are json.RawMessage and the
client never assumes a fixed shape.
*/
package models
