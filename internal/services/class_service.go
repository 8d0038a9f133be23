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

// CatalogMinPrice is the exclusive lower bound for the user-facing catalog.
const CatalogMinPrice = 10

type ClassService interface {
	Add(ctx context.Context, c *models.Class) (*models.InsertResult, error)
	Get(ctx context.Context, id string) (*models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	ListForInstructor(ctx context.Context, email string) ([]models.Class, error)
	ListCatalog(ctx context.Context) ([]models.Class, error)
	ListPopular(ctx context.Context) ([]models.Class, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
	UpdateDetails(ctx context.Context, id string, d models.ClassDetails) (*models.UpdateResult, error)
	Approve(ctx context.Context, id string) (*models.UpdateResult, error)
	Deny(ctx context.Context, id string) (*models.UpdateResult, error)
	SetFeedback(ctx context.Context, id, feedback string) (*models.UpdateResult, error)
}

type classService struct {
	classes  mongorepo.ClassRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewClassService(classes mongorepo.ClassRepository, c cache.Cache, ttl time.Duration) ClassService {
	return &classService{classes: classes, cache: orNop(c), cacheTTL: ttl}
}

// invalidate drops both catalog listings; every class write can change them.
func (s *classService) invalidate(ctx context.Context) {
	_ = s.cache.Del(ctx, cache.KeyClassesPopular, cache.KeyClassesUser)
}

func (s *classService) Add(ctx context.Context, c *models.Class) (*models.InsertResult, error) {
	const op = "ClassService.Add"

	if c == nil || strings.TrimSpace(c.Name) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	if c.Seats < 0 || c.Price < 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "seats and price must not be negative", nil)
	}
	c.Status = models.ClassPending
	c.Feedback = ""
	if c.Enrolled < 0 {
		c.Enrolled = 0
	}

	res, err := s.classes.Insert(ctx, c)
	if err != nil {
		return nil, utils.StoreError(op, "failed to insert class", err)
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *classService) Get(ctx context.Context, id string) (*models.Class, error) {
	const op = "ClassService.Get"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	c, err := s.classes.FindByID(ctx, oid)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "class not found", err)
	}
	if err != nil {
		return nil, utils.StoreError(op, "failed to load class", err)
	}
	return c, nil
}

func (s *classService) ListAll(ctx context.Context) ([]models.Class, error) {
	const op = "ClassService.ListAll"

	out, err := s.classes.ListAll(ctx)
	if err != nil {
		return nil, utils.StoreError(op, "failed to list classes", err)
	}
	return out, nil
}

func (s *classService) ListForInstructor(ctx context.Context, email string) ([]models.Class, error) {
	const op = "ClassService.ListForInstructor"

	out, err := s.classes.ListByInstructor(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, utils.StoreError(op, "failed to list classes", err)
	}
	return out, nil
}

func (s *classService) ListCatalog(ctx context.Context) ([]models.Class, error) {
	const op = "ClassService.ListCatalog"

	out, err := cachedList(ctx, s.cache, s.cacheTTL, cache.KeyClassesUser, func() ([]models.Class, error) {
		return s.classes.ListPricedAbove(ctx, CatalogMinPrice)
	})
	if err != nil {
		return nil, utils.StoreError(op, "failed to list classes", err)
	}
	return out, nil
}

func (s *classService) ListPopular(ctx context.Context) ([]models.Class, error) {
	const op = "ClassService.ListPopular"

	out, err := cachedList(ctx, s.cache, s.cacheTTL, cache.KeyClassesPopular, func() ([]models.Class, error) {
		return s.classes.ListByStatus(ctx, models.ClassApproved)
	})
	if err != nil {
		return nil, utils.StoreError(op, "failed to list classes", err)
	}
	return out, nil
}

func (s *classService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	const op = "ClassService.Delete"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	res, err := s.classes.Delete(ctx, oid)
	if err != nil {
		return nil, utils.StoreError(op, "failed to delete class", err)
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *classService) UpdateDetails(ctx context.Context, id string, d models.ClassDetails) (*models.UpdateResult, error) {
	const op = "ClassService.UpdateDetails"

	if d.Seats < 0 || d.Price < 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "seats and price must not be negative", nil)
	}
	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	res, err := s.classes.UpsertDetails(ctx, oid, d)
	if err != nil {
		return nil, utils.StoreError(op, "failed to update class", err)
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *classService) Approve(ctx context.Context, id string) (*models.UpdateResult, error) {
	return s.setStatus(ctx, "ClassService.Approve", id, models.ClassApproved)
}

func (s *classService) Deny(ctx context.Context, id string) (*models.UpdateResult, error) {
	return s.setStatus(ctx, "ClassService.Deny", id, models.ClassDenied)
}

func (s *classService) setStatus(ctx context.Context, op, id string, status models.ClassStatus) (*models.UpdateResult, error) {
	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	res, err := s.classes.SetStatus(ctx, oid, status)
	if err != nil {
		return nil, utils.StoreError(op, "failed to set class status", err)
	}
	s.invalidate(ctx)
	return res, nil
}

func (s *classService) SetFeedback(ctx context.Context, id, feedback string) (*models.UpdateResult, error) {
	const op = "ClassService.SetFeedback"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	res, err := s.classes.UpsertFeedback(ctx, oid, feedback)
	if err != nil {
		return nil, utils.StoreError(op, "failed to save feedback", err)
	}
	return res, nil
}
