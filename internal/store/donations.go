package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rewear-ai/rewear/internal/model"
)

// ErrItemNotFound is returned when a donation names an item that does not
// exist or does not belong to the donating user.
var ErrItemNotFound = errors.New("item not found in wardrobe")

// LogDonation records a donation and, when itemID is positive, removes the
// donated item from the wardrobe. Record insert and item removal happen in a
// single transaction so a failure leaves both untouched.
//
// itemID <= 0 logs a generic donation with placeholder name and category and
// a lower impact score. An itemID that is positive but not owned by the user
// fails with ErrItemNotFound; it is never downgraded to a generic donation.
func LogDonation(ctx context.Context, db *sql.DB, userID, itemID int64, charityName string) (*model.DonationRecord, error) {
	if charityName == "" {
		charityName = model.DefaultCharityName
	}

	itemName := model.GenericDonationName
	category := model.GenericDonationCategory
	impact := model.ImpactGenericDonation

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if itemID > 0 {
		err := tx.QueryRowContext(ctx,
			`SELECT name, category FROM clothing_items WHERE id = ? AND user_id = ?`,
			itemID, userID,
		).Scan(&itemName, &category)
		if err == sql.ErrNoRows {
			return nil, ErrItemNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("looking up donated item: %w", err)
		}
		impact = model.ImpactItemDonation

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM clothing_items WHERE id = ? AND user_id = ?`, itemID, userID,
		); err != nil {
			return nil, fmt.Errorf("removing donated item: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO donation_records (user_id, item_name, category, charity_name, impact_score)
		 VALUES (?, ?, ?, ?, ?)`,
		userID, itemName, category, charityName, impact,
	)
	if err != nil {
		return nil, fmt.Errorf("recording donation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing donation: %w", err)
	}

	recordID, _ := result.LastInsertId()
	return GetDonation(ctx, db, recordID, userID)
}

// GetDonation returns a donation record by ID, scoped to its owner.
func GetDonation(ctx context.Context, db *sql.DB, id, userID int64) (*model.DonationRecord, error) {
	rec := &model.DonationRecord{}
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, item_name, category, charity_name, impact_score, donated_at
		 FROM donation_records WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&rec.ID, &rec.UserID, &rec.ItemName, &rec.Category, &rec.CharityName,
		&rec.ImpactScore, &rec.DonatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting donation record: %w", err)
	}
	return rec, nil
}

// ListDonations returns a user's donation history, newest first.
func ListDonations(ctx context.Context, db *sql.DB, userID int64) ([]model.DonationRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, item_name, category, charity_name, impact_score, donated_at
		 FROM donation_records WHERE user_id = ? ORDER BY donated_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing donation records: %w", err)
	}
	defer rows.Close()

	var records []model.DonationRecord
	for rows.Next() {
		var rec model.DonationRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ItemName, &rec.Category,
			&rec.CharityName, &rec.ImpactScore, &rec.DonatedAt); err != nil {
			return nil, fmt.Errorf("scanning donation record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountDonations returns the total number of donation records across all users.
func CountDonations(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM donation_records`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting donation records: %w", err)
	}
	return n, nil
}
