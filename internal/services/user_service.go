package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yoockh/languageclub/internal/cache"
	"github.com/yoockh/languageclub/internal/models"
	mongorepo "github.com/yoockh/languageclub/internal/repositories/mongo"
	"github.com/yoockh/languageclub/internal/utils"
)

type UserService interface {
	// Register inserts u unless a user with the same email exists, in which
	// case existed is true and nothing is written.
	Register(ctx context.Context, u *models.User) (res *models.InsertResult, existed bool, err error)
	HasRole(ctx context.Context, email string, role models.UserRole) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	ListInstructors(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
	Promote(ctx context.Context, id string, role models.UserRole) (*models.UpdateResult, error)
}

type userService struct {
	users    mongorepo.UserRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewUserService(users mongorepo.UserRepository, c cache.Cache, ttl time.Duration) UserService {
	return &userService{users: users, cache: orNop(c), cacheTTL: ttl}
}

func (s *userService) Register(ctx context.Context, u *models.User) (*models.InsertResult, bool, error) {
	const op = "UserService.Register"

	if u == nil || strings.TrimSpace(u.Email) == "" {
		return nil, false, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}
	u.Email = strings.TrimSpace(u.Email)
	// roles are granted only through Promote
	u.Role = models.RoleNone

	_, err := s.users.FindByEmail(ctx, u.Email)
	if err == nil {
		return nil, true, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, false, utils.StoreError(op, "failed to look up user", err)
	}

	res, err := s.users.Insert(ctx, u)
	if errors.Is(err, utils.ErrDuplicate) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, utils.StoreError(op, "failed to insert user", err)
	}
	return res, false, nil
}

func (s *userService) HasRole(ctx context.Context, email string, role models.UserRole) (bool, error) {
	const op = "UserService.HasRole"

	if email == "" {
		return false, nil
	}
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, utils.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, utils.StoreError(op, "failed to look up user", err)
	}
	return u.HasRole(role), nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	const op = "UserService.List"

	out, err := s.users.List(ctx)
	if err != nil {
		return nil, utils.StoreError(op, "failed to list users", err)
	}
	return out, nil
}

func (s *userService) ListInstructors(ctx context.Context) ([]models.User, error) {
	const op = "UserService.ListInstructors"

	out, err := cachedList(ctx, s.cache, s.cacheTTL, cache.KeyInstructors, func() ([]models.User, error) {
		return s.users.ListByRole(ctx, models.RoleInstructor)
	})
	if err != nil {
		return nil, utils.StoreError(op, "failed to list instructors", err)
	}
	return out, nil
}

func (s *userService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	const op = "UserService.Delete"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	res, err := s.users.Delete(ctx, oid)
	if err != nil {
		return nil, utils.StoreError(op, "failed to delete user", err)
	}
	_ = s.cache.Del(ctx, cache.KeyInstructors)
	return res, nil
}

func (s *userService) Promote(ctx context.Context, id string, role models.UserRole) (*models.UpdateResult, error) {
	const op = "UserService.Promote"

	if role != models.RoleAdmin && role != models.RoleInstructor {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown role", nil)
	}
	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	res, err := s.users.SetRole(ctx, oid, role)
	if err != nil {
		return nil, utils.StoreError(op, "failed to set role", err)
	}
	_ = s.cache.Del(ctx, cache.KeyInstructors)
	return res, nil
}
