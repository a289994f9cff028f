package scoring_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/saulgabriel7/athlete-core/internal/catalog"
	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/ptr"
	"github.com/saulgabriel7/athlete-core/internal/scoring"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
	"github.com/saulgabriel7/athlete-core/internal/testhelpers"
)

func newTestServices(t *testing.T) (*scoring.Service, *profile.Service) {
	t.Helper()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	profiles := profile.NewService(db, logger)
	catalogSvc := catalog.NewService(db, logger, "")
	return scoring.NewService(db, profiles, catalogSvc, logger), profiles
}

func createTestUser(t *testing.T, profiles *profile.Service) profile.User {
	t.Helper()
	user, err := profiles.Create(t.Context(), profile.User{
		Name:      "Test Athlete",
		Age:       28,
		WeightKg:  75,
		HeightCm:  178,
		Objective: profile.ObjectiveHypertrophy,
		Level:     profile.LevelIntermediate,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// solidSession uses the first fixture exercise with clean numbers that score
// 95 points against an empty history.
func solidSession(userID string, date time.Time) scoring.Session {
	return scoring.Session{
		UserID: userID,
		Date:   date,
		Exercises: []scoring.ExerciseResult{{
			ExerciseID:    1,
			Position:      1,
			SetsPerformed: 3,
			Reps:          []int{10, 10, 10},
			LoadsKg:       []float64{50, 50, 50},
		}},
	}
}

func TestService_LogSession(t *testing.T) {
	svc, profiles := newTestServices(t)
	ctx := t.Context()
	user := createTestUser(t, profiles)

	logged, err := svc.LogSession(ctx, solidSession(user.ID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("log session: %v", err)
	}
	if logged.ID == "" {
		t.Error("logged session has no ID")
	}
	if logged.Score == nil {
		t.Fatal("logged session has no score")
	}
	if *logged.Score != 95 {
		t.Errorf("score = %d, want 95", *logged.Score)
	}

	stored, err := svc.GetSession(ctx, logged.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if stored.Score == nil || *stored.Score != 95 {
		t.Errorf("stored score = %v, want 95", stored.Score)
	}
	if len(stored.Exercises) != 1 {
		t.Fatalf("stored session has %d exercises, want 1", len(stored.Exercises))
	}
	if got := stored.Exercises[0].Reps; len(got) != 3 || got[0] != 10 {
		t.Errorf("stored reps = %v, want [10 10 10]", got)
	}
}

func TestService_LogSession_UnknownUser(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.LogSession(t.Context(), solidSession("no-such-user", time.Now()))
	if !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("error = %v, want profile.ErrNotFound", err)
	}
}

func TestService_ListSessions_NewestFirst(t *testing.T) {
	svc, profiles := newTestServices(t)
	ctx := t.Context()
	user := createTestUser(t, profiles)

	dates := []time.Time{
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	}
	for _, date := range dates {
		if _, err := svc.LogSession(ctx, solidSession(user.ID, date)); err != nil {
			t.Fatalf("log session: %v", err)
		}
	}

	sessions, err := svc.ListSessions(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("listed %d sessions, want 3", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].Date.After(sessions[i-1].Date) {
			t.Errorf("sessions not newest first: %v before %v",
				sessions[i-1].Date, sessions[i].Date)
		}
	}

	limited, err := svc.ListSessions(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("list sessions with limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("listed %d sessions, want 2", len(limited))
	}
}

func TestService_UpdateSession(t *testing.T) {
	svc, profiles := newTestServices(t)
	ctx := t.Context()
	user := createTestUser(t, profiles)

	logged, err := svc.LogSession(ctx, solidSession(user.ID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("log session: %v", err)
	}

	err = svc.UpdateSession(ctx, logged.ID, func(session *scoring.Session) (bool, error) {
		session.DurationMinutes = ptr.Ref(45)
		session.Notes = "felt strong"
		return true, nil
	})
	if err != nil {
		t.Fatalf("update session: %v", err)
	}

	updated, err := svc.GetSession(ctx, logged.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if updated.DurationMinutes == nil || *updated.DurationMinutes != 45 {
		t.Errorf("duration = %v, want 45", updated.DurationMinutes)
	}
	if updated.Notes != "felt strong" {
		t.Errorf("notes = %q, want %q", updated.Notes, "felt strong")
	}
	if updated.Score == nil || *updated.Score != *logged.Score {
		t.Errorf("score changed on update: %v, want %d", updated.Score, *logged.Score)
	}
}

func TestService_UpdateSession_NotFound(t *testing.T) {
	svc, _ := newTestServices(t)

	err := svc.UpdateSession(t.Context(), "no-such-session", func(*scoring.Session) (bool, error) {
		return true, nil
	})
	if !errors.Is(err, scoring.ErrNotFound) {
		t.Errorf("error = %v, want scoring.ErrNotFound", err)
	}
}

func TestService_Recommend(t *testing.T) {
	svc, profiles := newTestServices(t)
	ctx := t.Context()
	user := createTestUser(t, profiles)

	recommendations, err := svc.Recommend(ctx, user.ID)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(recommendations) != 1 || !strings.Contains(recommendations[0], "first training session") {
		t.Errorf("recommendations = %v, want the onboarding message", recommendations)
	}

	// One chest session: the consistency nudge and the missing groups both
	// apply.
	if _, err = svc.LogSession(ctx, solidSession(user.ID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("log session: %v", err)
	}
	recommendations, err = svc.Recommend(ctx, user.ID)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	var hasConsistency, hasBalance bool
	for _, recommendation := range recommendations {
		if strings.Contains(recommendation, "Consistency is the key") {
			hasConsistency = true
		}
		if strings.Contains(recommendation, "back, legs, shoulders") {
			hasBalance = true
		}
	}
	if !hasConsistency || !hasBalance {
		t.Errorf("recommendations = %v, want consistency nudge and balance advice", recommendations)
	}
}

func TestService_Recommend_UnknownUser(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.Recommend(t.Context(), "no-such-user")
	if !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("error = %v, want profile.ErrNotFound", err)
	}
}
