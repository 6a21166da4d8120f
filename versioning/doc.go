// Package versioning groups the routes of an app.App by API version and
// mounts each group as its own sub-application.
//
// Handlers are tagged with the Version and Unversion decorators. New reads
// the tags once, buckets the routes by version and builds a parent App with
// one mount per version:
//
//	a := app.New(app.WithTitle("Items API"))
//	a.Get("/items", versioning.Version(1)(http.HandlerFunc(listItemsV1)))
//	a.Get("/items", versioning.Version(2)(http.HandlerFunc(listItemsV2)))
//	a.Post("/items", http.HandlerFunc(createItem))                         // default version
//	a.Get("/health", versioning.Unversion()(http.HandlerFunc(health)))     // stays on the parent
//
//	parent, err := versioning.New(a, versioning.WithLatest(true))
//	if err != nil {
//	    return err
//	}
//	http.ListenAndServe(":8080", parent)
//
// With the default templates this serves /v1_0/items (v1 list, create),
// /v2_0/items (v2 list, create), /latest/items (same as /v2_0) and /health.
//
// Every version mount exposes the routes of its own version and of all lower
// versions. A route at a higher version replaces a lower version's route for
// the same path and method.
package versioning
