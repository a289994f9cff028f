package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// sqliteRepository handles database operations for user profiles.
type sqliteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *sqliteRepository {
	return &sqliteRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user with a generated ID and timestamps.
func (r *sqliteRepository) Create(ctx context.Context, user User) (User, error) {
	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	restrictions, err := json.Marshal(user.DietaryRestrictions)
	if err != nil {
		return User{}, fmt.Errorf("marshal dietary restrictions: %w", err)
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO users (
			id, name, age, weight_kg, height_cm, objective, experience_level,
			dietary_restrictions, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Age, user.WeightKg, user.HeightCm,
		string(user.Objective), string(user.Level), string(restrictions),
		now.Format(timestampFormat), now.Format(timestampFormat))
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// Get retrieves a user by ID.
func (r *sqliteRepository) Get(ctx context.Context, id string) (User, error) {
	var (
		user                      User
		restrictions              string
		objective, level          string
		createdAtStr, updatedAtStr string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, age, weight_kg, height_cm, objective, experience_level,
		       dietary_restrictions, created_at, updated_at
		FROM users
		WHERE id = ?`, id).Scan(
		&user.ID, &user.Name, &user.Age, &user.WeightKg, &user.HeightCm,
		&objective, &level, &restrictions, &createdAtStr, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("query user: %w", err)
	}

	user.Objective = Objective(objective)
	user.Level = Level(level)
	if err = json.Unmarshal([]byte(restrictions), &user.DietaryRestrictions); err != nil {
		return User{}, fmt.Errorf("unmarshal dietary restrictions: %w", err)
	}
	if user.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
		return User{}, fmt.Errorf("parse created_at: %w", err)
	}
	if user.UpdatedAt, err = time.Parse(timestampFormat, updatedAtStr); err != nil {
		return User{}, fmt.Errorf("parse updated_at: %w", err)
	}

	return user, nil
}

// List returns all users ordered by creation time.
func (r *sqliteRepository) List(ctx context.Context) (_ []User, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id
		FROM users
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	users := make([]User, 0, len(ids))
	for _, id := range ids {
		var user User
		if user, err = r.Get(ctx, id); err != nil {
			return nil, fmt.Errorf("get user %s: %w", id, err)
		}
		users = append(users, user)
	}

	return users, nil
}

// Update applies updateFn to the stored user and persists the result when the
// function reports a change.
func (r *sqliteRepository) Update(ctx context.Context, id string, updateFn func(user *User) (bool, error)) error {
	user, err := r.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get user for update: %w", err)
	}

	updated, err := updateFn(&user)
	if err != nil {
		return fmt.Errorf("update function: %w", err)
	}
	if !updated {
		return nil
	}

	restrictions, err := json.Marshal(user.DietaryRestrictions)
	if err != nil {
		return fmt.Errorf("marshal dietary restrictions: %w", err)
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		UPDATE users
		SET name = ?, age = ?, weight_kg = ?, height_cm = ?, objective = ?,
		    experience_level = ?, dietary_restrictions = ?, updated_at = ?
		WHERE id = ?`,
		user.Name, user.Age, user.WeightKg, user.HeightCm,
		string(user.Objective), string(user.Level), string(restrictions),
		time.Now().UTC().Format(timestampFormat), id)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

// Delete removes a user. Plans and sessions cascade.
func (r *sqliteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	rowCount, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowCount == 0 {
		return ErrNotFound
	}
	return nil
}
