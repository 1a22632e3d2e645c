package service

import (
	"context"
	"testing"

	"github.com/splitmate/splitmate/internal/models"
)

func TestCreateGroup(t *testing.T) {
	store := setupTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")

	t.Run("creator becomes the first member", func(t *testing.T) {
		group, err := svc.CreateGroup(ctx, "Roommates", alice.ID)
		if err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" || group.CreatedAt == 0 {
			t.Error("expected ID and CreatedAt to be set")
		}
		if len(group.MemberIDs) != 1 || group.MemberIDs[0] != alice.ID {
			t.Errorf("members = %v, want just the creator", group.MemberIDs)
		}
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		if _, err := svc.CreateGroup(ctx, "  ", alice.ID); !models.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("unknown creator is NotFound", func(t *testing.T) {
		if _, err := svc.CreateGroup(ctx, "Ghosts", "no-such-user"); !models.IsNotFound(err) {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})
}

func TestAddMember(t *testing.T) {
	store := setupTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	group, err := svc.CreateGroup(ctx, "Trip", alice.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("existing account joins by email", func(t *testing.T) {
		bob := seedUser(t, store, "bob@example.com", "Bob")

		added, err := svc.AddMember(ctx, group.ID, "bob@example.com", "")
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if added.ID != bob.ID {
			t.Errorf("added user %s, want existing account %s", added.ID, bob.ID)
		}

		got, err := svc.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if !got.HasMember(bob.ID) {
			t.Errorf("members = %v, missing bob", got.MemberIDs)
		}
	})

	t.Run("unknown email creates a placeholder", func(t *testing.T) {
		added, err := svc.AddMember(ctx, group.ID, "Carol@Example.com", "Carol")
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if added.Email != "carol@example.com" {
			t.Errorf("email = %s, want normalized carol@example.com", added.Email)
		}
		if added.DisplayName != "Carol" {
			t.Errorf("DisplayName = %s, want Carol", added.DisplayName)
		}
		if added.PasswordHash != "" {
			t.Error("placeholder should have no password")
		}

		got, err := svc.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if !got.HasMember(added.ID) {
			t.Errorf("members = %v, missing placeholder", got.MemberIDs)
		}
	})

	t.Run("re-adding the same email is a no-op", func(t *testing.T) {
		before, err := svc.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}

		added, err := svc.AddMember(ctx, group.ID, "carol@example.com", "")
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}

		after, err := svc.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(after.MemberIDs) != len(before.MemberIDs) {
			t.Errorf("member count changed: %d -> %d", len(before.MemberIDs), len(after.MemberIDs))
		}
		if added.DisplayName != "Carol" {
			t.Errorf("DisplayName = %s, existing name should be kept", added.DisplayName)
		}
	})

	t.Run("blank email is rejected", func(t *testing.T) {
		if _, err := svc.AddMember(ctx, group.ID, "  ", ""); !models.IsValidation(err) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})

	t.Run("unknown group is NotFound", func(t *testing.T) {
		if _, err := svc.AddMember(ctx, "no-such-group", "dan@example.com", "Dan"); !models.IsNotFound(err) {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})
}

func TestDeleteGroup(t *testing.T) {
	store := setupTestStore(t)
	groups := NewGroupService(store)
	ledgerSvc := NewLedgerService(store, nil)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	group, err := groups.CreateGroup(ctx, "Short-lived", alice.ID)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if _, err := ledgerSvc.CreateExpense(ctx, group.ID, alice.ID, "Snacks", dec("9.99"), []string{alice.ID}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	if err := groups.DeleteGroup(ctx, group.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if _, err := groups.GetGroup(ctx, group.ID); !models.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if _, err := ledgerSvc.ListGroupExpenses(ctx, group.ID); !models.IsNotFound(err) {
		t.Errorf("expected NotFoundError listing deleted group's expenses, got %v", err)
	}
	if err := groups.DeleteGroup(ctx, group.ID); !models.IsNotFound(err) {
		t.Errorf("expected NotFoundError on double delete, got %v", err)
	}
}
