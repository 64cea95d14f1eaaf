package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rewear-ai/rewear/internal/model"
)

const itemColumns = `id, user_id, name, category, color, season, occasion,
	image_mime, times_worn, celeb_twin, styling_tip, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*model.ClothingItem, error) {
	item := &model.ClothingItem{}
	var imageMime sql.NullString
	err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Category, &item.Color,
		&item.Season, &item.Occasion, &imageMime, &item.TimesWorn,
		&item.CelebTwin, &item.StylingTip, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.ImageMime = imageMime.String
	return item, nil
}

// CreateItem adds a new clothing item to a user's wardrobe.
func CreateItem(ctx context.Context, db *sql.DB, item *model.ClothingItem) (*model.ClothingItem, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO clothing_items (user_id, name, category, color, season, occasion, celeb_twin, styling_tip)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.UserID, item.Name, item.Category, item.Color, item.Season, item.Occasion,
		item.CelebTwin, item.StylingTip,
	)
	if err != nil {
		return nil, fmt.Errorf("creating clothing item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting clothing item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns a clothing item by ID regardless of owner.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.ClothingItem, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM clothing_items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting clothing item: %w", err)
	}
	return item, nil
}

// GetUserItem returns a clothing item only if it belongs to the given user.
func GetUserItem(ctx context.Context, db *sql.DB, id, userID int64) (*model.ClothingItem, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM clothing_items WHERE id = ? AND user_id = ?`, id, userID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting clothing item: %w", err)
	}
	return item, nil
}

// ListItems returns a user's wardrobe, optionally filtered by a name
// substring search and an exact category match.
func ListItems(ctx context.Context, db *sql.DB, userID int64, search, category string) ([]model.ClothingItem, error) {
	query := `SELECT ` + itemColumns + ` FROM clothing_items WHERE user_id = ?`
	args := []any{userID}

	if search != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+search+"%")
	}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}

	query += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clothing items: %w", err)
	}
	defer rows.Close()

	var items []model.ClothingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning clothing item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem updates a clothing item's editable fields, scoped to the owner.
func UpdateItem(ctx context.Context, db *sql.DB, id, userID int64, name, category, color, season, occasion string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE clothing_items
		 SET name = ?, category = ?, color = ?, season = ?, occasion = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		name, category, color, season, occasion, id, userID,
	)
	if err != nil {
		return fmt.Errorf("updating clothing item: %w", err)
	}
	return nil
}

// DeleteItem removes a clothing item from the wardrobe, scoped to the owner.
func DeleteItem(ctx context.Context, db *sql.DB, id, userID int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM clothing_items WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting clothing item: %w", err)
	}
	return nil
}

// SetItemImage stores an item's processed image bytes, scoped to the owner.
func SetItemImage(ctx context.Context, db *sql.DB, id, userID int64, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE clothing_items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		image, mime, id, userID,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's image bytes and MIME type, or nil if none.
func GetItemImage(ctx context.Context, db *sql.DB, id, userID int64) ([]byte, string, error) {
	var data []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM clothing_items WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return data, mime.String, nil
}

// IncrementWear increments the wear counter of every given item by exactly 1
// in a single transaction. Used when a full outfit has been assembled; a
// failure on any row leaves all counters untouched.
func IncrementWear(ctx context.Context, db *sql.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE clothing_items SET times_worn = times_worn + 1, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`, id,
		); err != nil {
			return fmt.Errorf("incrementing wear count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing wear counts: %w", err)
	}
	return nil
}

// TotalWears returns the sum of wear counters across a user's wardrobe.
func TotalWears(ctx context.Context, db *sql.DB, userID int64) (int, error) {
	var total int
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(times_worn), 0) FROM clothing_items WHERE user_id = ?`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing wear counts: %w", err)
	}
	return total, nil
}

// CountItems returns the total number of clothing items across all users.
func CountItems(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clothing_items`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting clothing items: %w", err)
	}
	return n, nil
}
