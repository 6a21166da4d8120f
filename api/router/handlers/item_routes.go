package handlers

import (
	"apiversions/app"
	"apiversions/versioning"
	"net/http"
)

// RegisterItemRoutes sets up the items resource. Untagged routes land in the
// default version and are inherited by every later one; version 2 replaces
// the list and detail representations and adds deletion.
func RegisterItemRoutes(a *app.App) {
	a.Get("/items", versioning.VersionFunc(ListItemsV1Handler, 1), app.WithName("list items"), app.WithTags("Items"))
	a.Post("/items", http.HandlerFunc(CreateItemHandler), app.WithName("create item"), app.WithTags("Items"))
	a.Get("/items/{itemID}", http.HandlerFunc(GetItemHandler), app.WithName("get item"), app.WithTags("Items"))

	v2 := versioning.NewGroup(a, 2)
	v2.Get("/items", http.HandlerFunc(ListItemsV2Handler), app.WithName("list items"), app.WithTags("Items"))
	v2.Get("/items/{itemID}", http.HandlerFunc(GetItemV2Handler), app.WithName("get item"), app.WithTags("Items"))
	v2.Delete("/items/{itemID}", http.HandlerFunc(DeleteItemHandler), app.WithName("delete item"), app.WithTags("Items"))
}
