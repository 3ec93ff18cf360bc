package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
	"github.com/Rahul-Chotaliya/tradehub/internal/testutil"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts and finds a user by username and id", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewUserRepository(db)
		u := &model.User{
			ID:           testutil.MakeID(),
			Username:     testutil.MakeUsername("alice"),
			PasswordHash: "hash",
			CreatedAt:    time.Now().UTC(),
		}

		// Execute
		if err := repo.InsertUser(ctx, u); err != nil {
			t.Fatalf("InsertUser() returned unexpected error: %v", err)
		}

		// Assert
		byName, err := repo.GetUserByUsername(ctx, u.Username)
		if err != nil {
			t.Fatalf("GetUserByUsername() returned unexpected error: %v", err)
		}
		if byName.ID != u.ID || byName.PasswordHash != "hash" {
			t.Errorf("Unexpected user %+v", byName)
		}

		byID, err := repo.GetUserByID(ctx, u.ID)
		if err != nil {
			t.Fatalf("GetUserByID() returned unexpected error: %v", err)
		}
		if byID.Username != u.Username {
			t.Errorf("Expected username %s, got %s", u.Username, byID.Username)
		}
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewUserRepository(db)
		existing := testutil.NewUser().Build(t, db)

		err := repo.InsertUser(ctx, &model.User{
			ID:           testutil.MakeID(),
			Username:     existing.Username,
			PasswordHash: "hash",
			CreatedAt:    time.Now().UTC(),
		})

		if !errors.Is(err, apperrors.ErrDuplicateUsername) {
			t.Errorf("Expected ErrDuplicateUsername, got %v", err)
		}
	})

	t.Run("returns ErrUserNotFound for unknown users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewUserRepository(db)

		if _, err := repo.GetUserByUsername(ctx, "nobody"); !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound by username, got %v", err)
		}
		if _, err := repo.GetUserByID(ctx, testutil.MakeID()); !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound by id, got %v", err)
		}
	})
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewCategoryRepository(db)

	t.Run("lists the seeded categories by name", func(t *testing.T) {
		categories, err := repo.GetCategories(ctx)
		if err != nil {
			t.Fatalf("GetCategories() returned unexpected error: %v", err)
		}

		want := []string{testutil.CategoryBonds, testutil.CategoryCrypto, testutil.CategoryRealEstate, testutil.CategoryStocks}
		if len(categories) != len(want) {
			t.Fatalf("Expected %d categories, got %d", len(want), len(categories))
		}
		for i, slug := range want {
			if categories[i].Slug != slug {
				t.Errorf("Position %d: expected %s, got %s", i, slug, categories[i].Slug)
			}
		}
	})

	t.Run("finds a category by slug", func(t *testing.T) {
		c, err := repo.GetCategoryBySlug(ctx, testutil.CategoryCrypto)
		if err != nil {
			t.Fatalf("GetCategoryBySlug() returned unexpected error: %v", err)
		}

		if c.Name != "Cryptocurrency" {
			t.Errorf("Expected Cryptocurrency, got %s", c.Name)
		}
	})

	t.Run("returns ErrCategoryNotFound for unknown slug", func(t *testing.T) {
		_, err := repo.GetCategoryBySlug(ctx, "art")

		if !errors.Is(err, apperrors.ErrCategoryNotFound) {
			t.Errorf("Expected ErrCategoryNotFound, got %v", err)
		}
	})
}

func TestParseTime(t *testing.T) {
	ts := time.Date(2024, 2, 29, 23, 59, 59, 1, time.UTC)

	got, err := repository.ParseTime(repository.FormatTime(ts))
	if err != nil {
		t.Fatalf("ParseTime() returned unexpected error: %v", err)
	}
	if !got.Equal(ts) {
		t.Errorf("Expected %s, got %s", ts, got)
	}

	if _, err := repository.ParseTime("2024-02-29"); err != nil {
		t.Errorf("Expected date-only input to parse, got %v", err)
	}
	if _, err := repository.ParseTime("yesterday"); err == nil {
		t.Error("Expected error for unparseable time")
	}
}
