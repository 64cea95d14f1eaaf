package store

import (
	"context"
	"testing"

	"github.com/rewear-ai/rewear/internal/db"
	"github.com/rewear-ai/rewear/internal/model"
)

func TestCreateAndGetUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "ada", "ada@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected default role %q, got %q", model.RoleUser, user.Role)
	}

	got, err := GetUserByEmail(ctx, database, "ada@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Errorf("expected user %d by email, got %v", user.ID, got)
	}
}

func TestCreateUserDuplicateEmailFails(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "ada", "ada@example.com", "hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := CreateUser(ctx, database, "other", "ada@example.com", "hash"); err == nil {
		t.Error("expected error for duplicate email")
	}
}

func TestClaimAdminRoleFirstUserWins(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, _ := CreateUser(ctx, database, "first", "first@example.com", "hash")
	second, _ := CreateUser(ctx, database, "second", "second@example.com", "hash")

	claimed, err := ClaimAdminRole(ctx, database, first.ID)
	if err != nil {
		t.Fatalf("ClaimAdminRole: %v", err)
	}
	if !claimed {
		t.Error("expected first claim to succeed")
	}

	claimed, err = ClaimAdminRole(ctx, database, second.ID)
	if err != nil {
		t.Fatalf("ClaimAdminRole: %v", err)
	}
	if claimed {
		t.Error("expected second claim to fail")
	}

	first, _ = GetUser(ctx, database, first.ID)
	second, _ = GetUser(ctx, database, second.ID)
	if first.Role != model.RoleAdmin {
		t.Errorf("expected first user to be admin, got %q", first.Role)
	}
	if second.Role != model.RoleUser {
		t.Errorf("expected second user to stay %q, got %q", model.RoleUser, second.Role)
	}
}

func TestClaimAdminRoleIdempotentForWinner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, _ := CreateUser(ctx, database, "only", "only@example.com", "hash")

	for i := 0; i < 2; i++ {
		claimed, err := ClaimAdminRole(ctx, database, user.ID)
		if err != nil {
			t.Fatalf("ClaimAdminRole attempt %d: %v", i+1, err)
		}
		if !claimed {
			t.Errorf("expected claim attempt %d by winner to report true", i+1)
		}
	}
}

func TestGetUserNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	user, err := GetUser(context.Background(), database, 42)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for missing user, got %v", user)
	}
}
