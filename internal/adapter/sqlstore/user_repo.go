package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"innerlight/internal/domain"
)

// CreateUser inserts a new account row.
func (d *DB) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, name, gender, date_of_birth, place_of_birth, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Gender, u.DateOfBirth, u.PlaceOfBirth, u.Role, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

const userColumns = "id, email, password_hash, name, gender, date_of_birth, place_of_birth, role, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Gender, &u.DateOfBirth, &u.PlaceOfBirth, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID retrieves a user by ID.
func (d *DB) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// GetUserByEmail retrieves a user by email.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

// UpdateUser saves a user's profile fields. The password hash has its own
// update path and is left untouched here.
func (d *DB) UpdateUser(ctx context.Context, u *domain.User) error {
	_, err := d.sql.ExecContext(ctx,
		`UPDATE users SET email = $1, name = $2, gender = $3, date_of_birth = $4, place_of_birth = $5, role = $6, updated_at = $7
		 WHERE id = $8`,
		u.Email, u.Name, u.Gender, u.DateOfBirth, u.PlaceOfBirth, u.Role, u.UpdatedAt, u.ID,
	)
	return err
}

// UpdatePasswordHash replaces a user's stored credential.
func (d *DB) UpdatePasswordHash(ctx context.Context, userID, passwordHash string, updatedAt time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3",
		passwordHash, updatedAt, userID,
	)
	return err
}

// DeleteUser removes an account; dependent rows cascade.
func (d *DB) DeleteUser(ctx context.Context, id string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

// ListUsers returns every account, oldest first.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Gender, &u.DateOfBirth, &u.PlaceOfBirth, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
