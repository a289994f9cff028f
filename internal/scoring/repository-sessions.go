package scoring

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
)

const (
	dateFormat      = "2006-01-02"
	timestampFormat = "2006-01-02T15:04:05.000Z"
)

// sqliteSessionRepository stores training sessions and their exercise
// results.
type sqliteSessionRepository struct {
	db *sqlite.Database
}

func newSQLiteSessionRepository(db *sqlite.Database) *sqliteSessionRepository {
	return &sqliteSessionRepository{db: db}
}

// Create persists a session and its exercise results in one transaction.
func (r *sqliteSessionRepository) Create(ctx context.Context, session Session) (_ Session, err error) {
	session.ID = uuid.NewString()
	session.CreatedAt = time.Now().UTC()

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO workout_sessions (id, user_id, session_date, duration_minutes, notes, performance_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.UserID, session.Date.Format(dateFormat),
		session.DurationMinutes, session.Notes, session.Score,
		session.CreatedAt.Format(timestampFormat)); err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}

	for _, exercise := range session.Exercises {
		var reps, loads []byte
		if reps, err = json.Marshal(exercise.Reps); err != nil {
			return Session{}, fmt.Errorf("marshal reps: %w", err)
		}
		if loads, err = json.Marshal(exercise.LoadsKg); err != nil {
			return Session{}, fmt.Errorf("marshal loads: %w", err)
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO session_exercises (session_id, exercise_id, position, sets_performed, reps, loads_kg, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			session.ID, exercise.ExerciseID, exercise.Position, exercise.SetsPerformed,
			string(reps), string(loads), exercise.Notes); err != nil {
			return Session{}, fmt.Errorf("insert session exercise: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("commit: %w", err)
	}

	return session, nil
}

// Get retrieves a session with its exercise results.
func (r *sqliteSessionRepository) Get(ctx context.Context, id string) (Session, error) {
	var (
		session      Session
		dateStr      string
		createdAtStr string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, user_id, session_date, duration_minutes, notes, performance_score, created_at
		FROM workout_sessions
		WHERE id = ?`, id).Scan(
		&session.ID, &session.UserID, &dateStr, &session.DurationMinutes,
		&session.Notes, &session.Score, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("query session: %w", err)
	}

	if session.Date, err = time.Parse(dateFormat, dateStr); err != nil {
		return Session{}, fmt.Errorf("parse session_date: %w", err)
	}
	if session.CreatedAt, err = time.Parse(timestampFormat, createdAtStr); err != nil {
		return Session{}, fmt.Errorf("parse created_at: %w", err)
	}

	if session.Exercises, err = r.sessionExercises(ctx, session.ID); err != nil {
		return Session{}, err
	}

	return session, nil
}

func (r *sqliteSessionRepository) sessionExercises(ctx context.Context, sessionID string) (_ []ExerciseResult, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, position, sets_performed, reps, loads_kg, notes
		FROM session_exercises
		WHERE session_id = ?
		ORDER BY position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []ExerciseResult
	for rows.Next() {
		var (
			exercise ExerciseResult
			reps     string
			loads    string
		)
		if err = rows.Scan(&exercise.ExerciseID, &exercise.Position, &exercise.SetsPerformed,
			&reps, &loads, &exercise.Notes); err != nil {
			return nil, fmt.Errorf("scan session exercise: %w", err)
		}
		if err = json.Unmarshal([]byte(reps), &exercise.Reps); err != nil {
			return nil, fmt.Errorf("unmarshal reps: %w", err)
		}
		if err = json.Unmarshal([]byte(loads), &exercise.LoadsKg); err != nil {
			return nil, fmt.Errorf("unmarshal loads: %w", err)
		}
		exercises = append(exercises, exercise)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return exercises, nil
}

// List returns the user's sessions newest first, up to limit.
func (r *sqliteSessionRepository) List(ctx context.Context, userID string, limit int) (_ []Session, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id
		FROM workout_sessions
		WHERE user_id = ?
		ORDER BY session_date DESC, created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
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
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	sessions := make([]Session, 0, len(ids))
	for _, id := range ids {
		var session Session
		if session, err = r.Get(ctx, id); err != nil {
			return nil, fmt.Errorf("get session %s: %w", id, err)
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// RecentScores returns the scores of the user's latest scored sessions,
// newest first, up to limit.
func (r *sqliteSessionRepository) RecentScores(ctx context.Context, userID string, limit int) (_ []int, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT performance_score
		FROM workout_sessions
		WHERE user_id = ? AND performance_score IS NOT NULL
		ORDER BY session_date DESC, created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var scores []int
	for rows.Next() {
		var score int
		if err = rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, score)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return scores, nil
}

// Update applies updateFn to the stored session and persists duration and
// notes when the function reports a change. The score and exercise results
// are immutable once logged.
func (r *sqliteSessionRepository) Update(ctx context.Context, id string, updateFn func(session *Session) (bool, error)) error {
	session, err := r.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get session for update: %w", err)
	}

	updated, err := updateFn(&session)
	if err != nil {
		return fmt.Errorf("update function: %w", err)
	}
	if !updated {
		return nil
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		UPDATE workout_sessions
		SET duration_minutes = ?, notes = ?
		WHERE id = ?`,
		session.DurationMinutes, session.Notes, id)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	return nil
}
