package repository

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/prejin2310/paperlesh-notifier/internal/model"
)

func TestUserRepository_ListIDs(t *testing.T) {
	db := newTestDB(t)
	for _, u := range []model.User{
		{ID: "b", Email: "b@example.com"},
		{ID: "a", Email: "a@example.com", PushToken: "tok-a"},
	} {
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	repo := NewUserRepository(db)
	ids, err := repo.ListIDs(context.Background())
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("want [a b], got %v", ids)
	}
}

func TestUserRepository_PushToken(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&model.User{ID: "with", PushToken: "tok-1"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&model.User{ID: "without"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewUserRepository(db)
	ctx := context.Background()

	tok, err := repo.PushToken(ctx, "with")
	if err != nil || tok != "tok-1" {
		t.Fatalf("want tok-1, got %q (%v)", tok, err)
	}
	tok, err = repo.PushToken(ctx, "without")
	if err != nil || tok != "" {
		t.Fatalf("want empty token, got %q (%v)", tok, err)
	}
	if _, err := repo.PushToken(ctx, "missing"); err == nil {
		t.Fatal("unknown user must error")
	}
}

func TestUserRepository_HasLogForDate(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&model.User{ID: "u1"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Create(&model.LogEntry{UserID: "u1", Date: "2024-06-15"}).Error; err != nil {
		t.Fatalf("seed log: %v", err)
	}

	repo := NewUserRepository(db)
	ctx := context.Background()

	has, err := repo.HasLogForDate(ctx, "u1", "2024-06-15")
	if err != nil || !has {
		t.Fatalf("want true for logged date, got %v (%v)", has, err)
	}
	has, err = repo.HasLogForDate(ctx, "u1", "2024-06-16")
	if err != nil || has {
		t.Fatalf("want false for unlogged date, got %v (%v)", has, err)
	}
}

func TestUserRepository_ToolConfig(t *testing.T) {
	db := newTestDB(t)
	cfg := model.ToolConfig{
		UserID: "u1",
		Key:    model.ToolImportantDates,
		Data:   datatypes.JSON([]byte(`{"items":[{"date":"1990-06-15","title":"Anniversary"}]}`)),
	}
	if err := db.Create(&cfg).Error; err != nil {
		t.Fatalf("seed config: %v", err)
	}

	repo := NewUserRepository(db)
	ctx := context.Background()

	got, err := repo.ToolConfig(ctx, "u1", model.ToolImportantDates)
	if err != nil {
		t.Fatalf("ToolConfig: %v", err)
	}
	if got == nil {
		t.Fatal("want config, got nil")
	}
	items := got.Items()
	if len(items) != 1 || items[0].Title != "Anniversary" {
		t.Fatalf("want decoded items, got %+v", items)
	}

	// Absent config is not an error.
	got, err = repo.ToolConfig(ctx, "u2", model.ToolImportantDates)
	if err != nil {
		t.Fatalf("absent config must not error: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil for absent config, got %+v", got)
	}
}
