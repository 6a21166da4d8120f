package database

import (
	"apiversions/models"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func CreateItem(req models.CreateItemRequest) (models.Item, error) {
	item := models.Item{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: models.NullString(req.Description),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	_, err := DB.Exec("INSERT INTO items (id, name, description, created_at) VALUES (?, ?, ?, ?)",
		item.ID, item.Name, item.Description, item.CreatedAt)
	if err != nil {
		return models.Item{}, fmt.Errorf("inserting item '%s': %w", item.Name, err)
	}
	return item, nil
}

func GetItemByID(id string) (models.Item, error) {
	var item models.Item
	err := DB.QueryRow("SELECT id, name, description, created_at FROM items WHERE id = ?", id).
		Scan(&item.ID, &item.Name, &item.Description, &item.CreatedAt)
	if err != nil {
		return models.Item{}, fmt.Errorf("fetching item %s: %w", id, err)
	}
	return item, nil
}

// ListItemsPaginated returns one page of items in creation order and the
// total number of items.
func ListItemsPaginated(limit, offset int) ([]models.Item, int64, error) {
	var totalRecords int64
	if err := DB.QueryRow("SELECT COUNT(*) FROM items").Scan(&totalRecords); err != nil {
		return nil, 0, fmt.Errorf("counting items: %w", err)
	}

	items := []models.Item{}
	if totalRecords == 0 {
		return items, 0, nil
	}

	rows, err := DB.Query(`SELECT id, name, description, created_at
              FROM items
              ORDER BY created_at ASC, id ASC
              LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, totalRecords, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.CreatedAt); err != nil {
			return nil, totalRecords, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, item)
	}
	return items, totalRecords, rows.Err()
}

// DeleteItem removes an item. It returns sql.ErrNoRows when no item has the id.
func DeleteItem(id string) error {
	res, err := DB.Exec("DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deletion of item %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("deleting item %s: %w", id, sql.ErrNoRows)
	}
	return nil
}
