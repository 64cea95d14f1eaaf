package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rewear-ai/rewear/internal/model"
)

// CreateCharity adds a verified charity to the local store.
func CreateCharity(ctx context.Context, db *sql.DB, name, address, phone string, lat, lon *float64) (*model.Charity, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO charities (name, address, phone, lat, lon) VALUES (?, ?, ?, ?, ?)`,
		name, address, phone, lat, lon,
	)
	if err != nil {
		return nil, fmt.Errorf("creating charity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting charity id: %w", err)
	}

	return GetCharity(ctx, db, id)
}

// GetCharity returns a charity by ID.
func GetCharity(ctx context.Context, db *sql.DB, id int64) (*model.Charity, error) {
	c := &model.Charity{}
	var lat, lon sql.NullFloat64
	err := db.QueryRowContext(ctx,
		`SELECT id, name, address, phone, lat, lon, created_at FROM charities WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &lat, &lon, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting charity: %w", err)
	}
	if lat.Valid {
		c.Lat = &lat.Float64
	}
	if lon.Valid {
		c.Lon = &lon.Float64
	}
	return c, nil
}

// ListCharities returns all verified charities.
func ListCharities(ctx context.Context, db *sql.DB) ([]model.Charity, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, address, phone, lat, lon, created_at FROM charities ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing charities: %w", err)
	}
	defer rows.Close()

	var charities []model.Charity
	for rows.Next() {
		var c model.Charity
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &lat, &lon, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning charity: %w", err)
		}
		if lat.Valid {
			v := lat.Float64
			c.Lat = &v
		}
		if lon.Valid {
			v := lon.Float64
			c.Lon = &v
		}
		charities = append(charities, c)
	}
	return charities, rows.Err()
}
