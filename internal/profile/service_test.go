package profile_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/saulgabriel7/athlete-core/internal/profile"
	"github.com/saulgabriel7/athlete-core/internal/sqlite"
	"github.com/saulgabriel7/athlete-core/internal/testhelpers"
)

func newTestService(t *testing.T) *profile.Service {
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

	return profile.NewService(db, logger)
}

func testUser() profile.User {
	return profile.User{
		Name:                "Test Athlete",
		Age:                 28,
		WeightKg:            75,
		HeightCm:            178,
		Objective:           profile.ObjectiveHypertrophy,
		Level:               profile.LevelBeginner,
		DietaryRestrictions: []string{"lactose"},
	}
}

func TestService_CreateAndGet(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, testUser())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == "" {
		t.Error("created user has no ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("created user has no timestamps")
	}

	stored, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	// Timestamps lose sub-millisecond precision on the round trip.
	if diff := cmp.Diff(created, stored, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("user mismatch (-created +stored):\n%s", diff)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(t.Context(), "no-such-user")
	if !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("error = %v, want profile.ErrNotFound", err)
	}
}

func TestService_List(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("listed %d users from an empty database", len(users))
	}

	for range 3 {
		if _, err = svc.Create(ctx, testUser()); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	users, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("listed %d users, want 3", len(users))
	}
}

func TestService_Update(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, testUser())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	err = svc.Update(ctx, created.ID, func(user *profile.User) (bool, error) {
		user.WeightKg = 78.5
		user.Objective = profile.ObjectiveFatLoss
		return true, nil
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}

	updated, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if updated.WeightKg != 78.5 {
		t.Errorf("WeightKg = %v, want 78.5", updated.WeightKg)
	}
	if updated.Objective != profile.ObjectiveFatLoss {
		t.Errorf("Objective = %v, want fat_loss", updated.Objective)
	}
	if updated.Name != created.Name {
		t.Errorf("Name changed to %q", updated.Name)
	}
}

func TestService_Update_SkippedWhenUnchanged(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, testUser())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	err = svc.Update(ctx, created.ID, func(user *profile.User) (bool, error) {
		user.WeightKg = 100
		return false, nil
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}

	unchanged, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if unchanged.WeightKg != 75 {
		t.Errorf("WeightKg = %v, want unchanged 75", unchanged.WeightKg)
	}
}

func TestService_Delete(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	created, err := svc.Create(ctx, testUser())
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err = svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err = svc.Get(ctx, created.ID); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("error = %v, want profile.ErrNotFound", err)
	}

	if err = svc.Delete(ctx, created.ID); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("second delete error = %v, want profile.ErrNotFound", err)
	}
}
