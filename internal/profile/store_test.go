package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/myrjola/pulsecoach/internal/errors"
	"github.com/myrjola/pulsecoach/internal/profile"
	"github.com/myrjola/pulsecoach/internal/sqlite"
	"github.com/myrjola/pulsecoach/internal/testhelpers"
)

func newTestStore(t *testing.T) *profile.SQLiteStore {
	t.Helper()
	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Error(closeErr)
		}
	})
	return profile.NewSQLiteStore(db)
}

func TestSQLiteStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	p := validProfile()
	created, err := store.Create(ctx, &p)
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Fatal("created profile should have an ID")
	}

	fetched, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(created, fetched, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("fetched profile mismatch (-created +fetched):\n%s", diff)
	}

	updated, err := store.Update(ctx, created.ID, func(p *profile.Profile) error {
		p.Age = 31
		p.Preferences = append(p.Preferences, profile.PreferenceCycling)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Age != 31 {
		t.Errorf("Age = %d, want 31", updated.Age)
	}
	if len(updated.Preferences) != 2 {
		t.Errorf("Preferences = %v, want two entries", updated.Preferences)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("List returned %d profiles, want 1", len(all))
	}

	if err = store.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err = store.Get(ctx, created.ID); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
}

func TestSQLiteStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Get(ctx, 999); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("Get: got %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, 999); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("Delete: got %v, want ErrNotFound", err)
	}
}

func TestSQLiteStoreRejectsInvalidProfile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	p := validProfile()
	p.Age = 5
	if _, err := store.Create(ctx, &p); err == nil {
		t.Error("Create should reject an invalid profile")
	}

	valid := validProfile()
	created, err := store.Create(ctx, &valid)
	if err != nil {
		t.Fatal(err)
	}
	_, err = store.Update(ctx, created.ID, func(p *profile.Profile) error {
		p.WeightKg = -1
		return nil
	})
	if err == nil {
		t.Error("Update should reject an invalid profile")
	}
}
