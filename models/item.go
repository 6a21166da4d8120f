package models

import (
	"database/sql"
	"time"
)

// Item is the resource served by the demo items API.
type Item struct {
	ID          string         `json:"id" readOnly:"true" example:"4f1c2a9e-1f0b-4b0e-9a57-3c7d2d1f8e11"`
	Name        string         `json:"name" binding:"required"`
	Description sql.NullString `json:"-"`
	CreatedAt   time.Time      `json:"created_at" readOnly:"true"`
}

// ItemV1 is the version 1 representation of an Item.
type ItemV1 struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemV2 adds the description and creation time.
type ItemV2 struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateItemRequest is the body of POST /items.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// PaginatedItems is the version 2 list envelope.
type PaginatedItems struct {
	Page         int      `json:"page"`
	Limit        int      `json:"limit"`
	TotalRecords int64    `json:"total_records"`
	Items        []ItemV2 `json:"items"`
}

func (i Item) V1() ItemV1 {
	return ItemV1{ID: i.ID, Name: i.Name}
}

func (i Item) V2() ItemV2 {
	v := ItemV2{ID: i.ID, Name: i.Name, CreatedAt: i.CreatedAt}
	if i.Description.Valid {
		d := i.Description.String
		v.Description = &d
	}
	return v
}
