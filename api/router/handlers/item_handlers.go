package handlers

import (
	"apiversions/database"
	"apiversions/logger"
	"apiversions/models"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ListItemsV1Handler returns the first page of items as a bare array.
// @Summary List items
// @Tags Items
// @Produce json
// @Param limit query int false "Maximum number of items" default(25)
// @Success 200 {array} models.ItemV1
// @Failure 500 {object} models.ErrorResponse
// @Router /v1_0/items [get]
func ListItemsV1Handler(w http.ResponseWriter, r *http.Request) {
	_, limit := pagination(r)
	items, _, err := database.ListItemsPaginated(limit, 0)
	if err != nil {
		logger.Error("ListItemsV1Handler: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list items")
		return
	}
	out := make([]models.ItemV1, 0, len(items))
	for _, item := range items {
		out = append(out, item.V1())
	}
	writeJSON(w, http.StatusOK, out)
}

// ListItemsV2Handler returns a page of items in a pagination envelope.
// @Summary List items (paginated)
// @Tags Items
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(25)
// @Success 200 {object} models.PaginatedItems
// @Failure 500 {object} models.ErrorResponse
// @Router /v2_0/items [get]
func ListItemsV2Handler(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	items, total, err := database.ListItemsPaginated(limit, (page-1)*limit)
	if err != nil {
		logger.Error("ListItemsV2Handler: page %d limit %d: %v", page, limit, err)
		writeError(w, http.StatusInternalServerError, "Failed to list items")
		return
	}
	resp := models.PaginatedItems{Page: page, Limit: limit, TotalRecords: total, Items: make([]models.ItemV2, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, item.V2())
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateItemHandler stores a new item.
// @Summary Create item
// @Tags Items
// @Accept json
// @Produce json
// @Param item body models.CreateItemRequest true "Item to create"
// @Success 201 {object} models.ItemV1
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /v1_0/items [post]
func CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("CreateItemHandler: Error decoding request body: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Item name is required")
		return
	}

	item, err := database.CreateItem(req)
	if err != nil {
		logger.Error("CreateItemHandler: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create item")
		return
	}
	logger.Info("Created item %s ('%s')", item.ID, item.Name)
	writeJSON(w, http.StatusCreated, item.V1())
}

// GetItemHandler returns one item in the version 1 representation.
// @Summary Get item
// @Tags Items
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} models.ItemV1
// @Failure 404 {object} models.ErrorResponse
// @Router /v1_0/items/{itemID} [get]
func GetItemHandler(w http.ResponseWriter, r *http.Request) {
	item, ok := loadItem(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, item.V1())
}

// GetItemV2Handler returns one item in the version 2 representation.
// @Summary Get item
// @Tags Items
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} models.ItemV2
// @Failure 404 {object} models.ErrorResponse
// @Router /v2_0/items/{itemID} [get]
func GetItemV2Handler(w http.ResponseWriter, r *http.Request) {
	item, ok := loadItem(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, item.V2())
}

// DeleteItemHandler removes an item.
// @Summary Delete item
// @Tags Items
// @Param itemID path string true "Item ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /v2_0/items/{itemID} [delete]
func DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := database.DeleteItem(itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Item not found")
		} else {
			logger.Error("DeleteItemHandler: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete item")
		}
		return
	}
	logger.Info("Deleted item %s", itemID)
	w.WriteHeader(http.StatusNoContent)
}

func loadItem(w http.ResponseWriter, r *http.Request) (models.Item, bool) {
	itemID := chi.URLParam(r, "itemID")
	item, err := database.GetItemByID(itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Item not found")
		} else {
			logger.Error("Error fetching item %s: %v", itemID, err)
			writeError(w, http.StatusInternalServerError, "Failed to retrieve item")
		}
		return models.Item{}, false
	}
	return item, true
}
