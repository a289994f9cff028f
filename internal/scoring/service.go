package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
)

// How much history feeds the score bonus and the recommendations.
const (
	scoreHistorySize     = 5
	recommendHistorySize = 10
)

// profileReader verifies sessions are logged against existing users.
type profileReader interface {
	Get(ctx context.Context, id string) (profile.User, error)
}

// exerciseReader resolves the muscle groups trained by a session.
type exerciseReader interface {
	ListExercises(ctx context.Context, maxLevel profile.Level) ([]catalog.Exercise, error)
}

// Service logs sessions, scores them, and produces recommendations.
type Service struct {
	repo      *sqliteSessionRepository
	profiles  profileReader
	exercises exerciseReader
	logger    *slog.Logger
}

// NewService creates a new scoring service.
func NewService(db *sqlite.Database, profiles profileReader, exercises exerciseReader, logger *slog.Logger) *Service {
	return &Service{
		repo:      newSQLiteSessionRepository(db),
		profiles:  profiles,
		exercises: exercises,
		logger:    logger,
	}
}

// LogSession records a training session and scores it against the user's
// recent history. The score is assigned exactly once here.
func (s *Service) LogSession(ctx context.Context, session Session) (Session, error) {
	if _, err := s.profiles.Get(ctx, session.UserID); err != nil {
		return Session{}, fmt.Errorf("get user: %w", err)
	}

	recentScores, err := s.repo.RecentScores(ctx, session.UserID, scoreHistorySize)
	if err != nil {
		return Session{}, fmt.Errorf("recent scores: %w", err)
	}

	score := Score(session.Exercises, session.DurationMinutes, recentScores)
	session.Score = &score

	created, err := s.repo.Create(ctx, session)
	if err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "logged training session",
		slog.String("user_id", created.UserID),
		slog.String("session_id", created.ID),
		slog.Int("score", score))

	return created, nil
}

// GetSession retrieves a session by ID.
func (s *Service) GetSession(ctx context.Context, id string) (Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return session, nil
}

// ListSessions returns the user's sessions newest first, up to limit. A
// non-positive limit returns the latest twenty.
func (s *Service) ListSessions(ctx context.Context, userID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	sessions, err := s.repo.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// UpdateSession applies updateFn to the stored session. Only duration and
// notes can change, the score stays as assigned at logging time.
func (s *Service) UpdateSession(ctx context.Context, id string, updateFn func(session *Session) (bool, error)) error {
	if err := s.repo.Update(ctx, id, updateFn); err != nil {
		return fmt.Errorf("update session %s: %w", id, err)
	}
	return nil
}

// Recommend derives training advice from the user's recent sessions.
func (s *Service) Recommend(ctx context.Context, userID string) ([]string, error) {
	if _, err := s.profiles.Get(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	sessions, err := s.repo.List(ctx, userID, recommendHistorySize)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	exercises, err := s.exercises.ListExercises(ctx, profile.LevelAdvanced)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	muscleGroups := make(map[int]catalog.MuscleGroup, len(exercises))
	for _, exercise := range exercises {
		muscleGroups[exercise.ID] = exercise.MuscleGroup
	}

	return Recommendations(sessions, muscleGroups), nil
}
