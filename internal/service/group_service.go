package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/splitmate/splitmate/internal/models"
	"github.com/splitmate/splitmate/internal/storage"
)

// GroupService manages groups and their member sets.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group with the creator as its first member, so the
// group invariant (at least one member) holds from the start.
func (s *GroupService) CreateGroup(ctx context.Context, name, creatorID string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("group name is required")
	}
	if _, err := s.store.GetUserByID(ctx, creatorID); err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:      name,
		MemberIDs: []string{creatorID},
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name)
	return group, nil
}

// GetGroup retrieves a group with its member IDs.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListGroups lists all groups the user belongs to.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListGroupsByMember(ctx, userID)
}

// AddMember adds a user to a group by email. If no account exists for the
// email, a placeholder user is created with the given display name; they
// can claim it later by registering with the same email. Adding an
// existing member is a no-op, and existing expenses are never touched.
func (s *GroupService) AddMember(ctx context.Context, groupID, email, displayName string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, models.NewValidationError("email is required")
	}
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if displayName == "" {
			displayName = email
		}
		user = models.NewUser(email, displayName, "")
		if err := s.store.CreateUser(ctx, user); err != nil {
			slog.Error("AddMember failed to create placeholder user", "email", email, "error", err)
			return nil, err
		}
		slog.Info("Placeholder user created", "user_id", user.ID, "email", email)
	} else if user.DisplayName == user.Email && displayName != "" {
		// Fill in a real name for a placeholder that never got one.
		user.DisplayName = displayName
		if err := s.store.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := s.store.AddGroupMember(ctx, groupID, user.ID); err != nil {
		slog.Error("AddMember failed", "group_id", groupID, "user_id", user.ID, "error", err)
		return nil, err
	}

	slog.Info("Member added to group", "group_id", groupID, "user_id", user.ID)
	return user, nil
}

// DeleteGroup removes a group and, by cascade, its expenses and splits.
// This is explicit and irreversible.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	slog.Info("Group deleted", "group_id", groupID)
	return nil
}
