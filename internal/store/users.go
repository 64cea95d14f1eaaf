package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rewear-ai/rewear/internal/model"
)

// CreateUser creates a new user with the standard role.
func CreateUser(ctx context.Context, db *sql.DB, username, email, passwordHash string) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// ClaimAdminRole atomically promotes the user to admin if no admin has been
// claimed yet. The claim is guarded by the settings primary key rather than a
// read-then-write count check, so two racing registrations cannot both win.
// Returns true if this user became the admin.
func ClaimAdminRole(ctx context.Context, db *sql.DB, userID int64) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('admin_user_id', ?)`,
		fmt.Sprint(userID),
	)
	if err != nil {
		return false, fmt.Errorf("claiming admin role: %w", err)
	}

	// Read back: either our insert or a previous claim.
	var claimed string
	err = tx.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'admin_user_id'`,
	).Scan(&claimed)
	if err != nil {
		return false, fmt.Errorf("reading admin claim: %w", err)
	}

	if claimed != fmt.Sprint(userID) {
		return false, tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET role = ? WHERE id = ?`, model.RoleAdmin, userID,
	)
	if err != nil {
		return false, fmt.Errorf("promoting user to admin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing admin claim: %w", err)
	}
	return true, nil
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, role, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email, the unique login key.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, role, created_at
		 FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

// CountUsers returns the number of registered users.
func CountUsers(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}
