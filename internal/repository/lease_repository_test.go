package repository

import (
	"context"
	"testing"
	"time"
)

func TestLeaseRepository_ExclusiveWhileHeld(t *testing.T) {
	repo := NewLeaseRepository(newTestDB(t))
	ctx := context.Background()

	ok, err := repo.Acquire(ctx, "daily_log", "owner-1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire must succeed, got %v (%v)", ok, err)
	}

	ok, err = repo.Acquire(ctx, "daily_log", "owner-2", time.Minute)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if ok {
		t.Fatal("a held lease must not be granted to another owner")
	}

	// A different job name is independent.
	ok, err = repo.Acquire(ctx, "retention_sweep", "owner-2", time.Minute)
	if err != nil || !ok {
		t.Fatalf("leases are keyed by job name, got %v (%v)", ok, err)
	}
}

func TestLeaseRepository_SameOwnerExtends(t *testing.T) {
	repo := NewLeaseRepository(newTestDB(t))
	ctx := context.Background()

	if ok, err := repo.Acquire(ctx, "daily_log", "owner-1", time.Minute); err != nil || !ok {
		t.Fatalf("acquire: %v %v", ok, err)
	}
	if ok, err := repo.Acquire(ctx, "daily_log", "owner-1", time.Minute); err != nil || !ok {
		t.Fatal("the holder must be able to extend its own lease")
	}
}

func TestLeaseRepository_StaleLeaseReclaimed(t *testing.T) {
	repo := NewLeaseRepository(newTestDB(t))
	ctx := context.Background()

	if ok, err := repo.Acquire(ctx, "daily_log", "crashed", 10*time.Millisecond); err != nil || !ok {
		t.Fatalf("acquire: %v %v", ok, err)
	}
	time.Sleep(20 * time.Millisecond)

	ok, err := repo.Acquire(ctx, "daily_log", "owner-2", time.Minute)
	if err != nil || !ok {
		t.Fatalf("an expired lease must be reclaimable, got %v (%v)", ok, err)
	}
}

func TestLeaseRepository_ReleaseFreesLease(t *testing.T) {
	repo := NewLeaseRepository(newTestDB(t))
	ctx := context.Background()

	if ok, err := repo.Acquire(ctx, "daily_log", "owner-1", time.Minute); err != nil || !ok {
		t.Fatalf("acquire: %v %v", ok, err)
	}
	if err := repo.Release(ctx, "daily_log", "owner-1"); err != nil {
		t.Fatalf("Release: %v", err)
	}

	ok, err := repo.Acquire(ctx, "daily_log", "owner-2", time.Minute)
	if err != nil || !ok {
		t.Fatalf("a released lease must be free, got %v (%v)", ok, err)
	}
}

func TestLeaseRepository_ReleaseByNonOwnerIsNoop(t *testing.T) {
	repo := NewLeaseRepository(newTestDB(t))
	ctx := context.Background()

	if ok, err := repo.Acquire(ctx, "daily_log", "owner-1", time.Minute); err != nil || !ok {
		t.Fatalf("acquire: %v %v", ok, err)
	}
	if err := repo.Release(ctx, "daily_log", "owner-2"); err != nil {
		t.Fatalf("Release: %v", err)
	}

	ok, err := repo.Acquire(ctx, "daily_log", "owner-2", time.Minute)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if ok {
		t.Fatal("a non-owner release must not free the lease")
	}
}
