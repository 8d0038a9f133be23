package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yoockh/languageclub/internal/models"
	mongorepo "github.com/yoockh/languageclub/internal/repositories/mongo"
	"github.com/yoockh/languageclub/internal/utils"
)

type CartService interface {
	Add(ctx context.Context, item *models.CartItem) (*models.InsertResult, error)
	Get(ctx context.Context, id string) (*models.CartItem, error)
	ListByEmail(ctx context.Context, email string) ([]models.CartItem, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

type cartService struct {
	cart mongorepo.CartRepository
}

func NewCartService(cart mongorepo.CartRepository) CartService {
	return &cartService{cart: cart}
}

func (s *cartService) Add(ctx context.Context, item *models.CartItem) (*models.InsertResult, error) {
	const op = "CartService.Add"

	if item == nil || strings.TrimSpace(item.Email) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}
	res, err := s.cart.Insert(ctx, item)
	if err != nil {
		return nil, utils.StoreError(op, "failed to add cart item", err)
	}
	return res, nil
}

func (s *cartService) Get(ctx context.Context, id string) (*models.CartItem, error) {
	const op = "CartService.Get"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	item, err := s.cart.FindByID(ctx, oid)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "cart item not found", err)
	}
	if err != nil {
		return nil, utils.StoreError(op, "failed to load cart item", err)
	}
	return item, nil
}

func (s *cartService) ListByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	const op = "CartService.ListByEmail"

	out, err := s.cart.ListByEmail(ctx, email)
	if err != nil {
		return nil, utils.StoreError(op, "failed to list cart", err)
	}
	return out, nil
}

func (s *cartService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	const op = "CartService.Delete"

	oid, err := parseID(op, id)
	if err != nil {
		return nil, err
	}
	res, err := s.cart.Delete(ctx, oid)
	if err != nil {
		return nil, utils.StoreError(op, "failed to delete cart item", err)
	}
	return res, nil
}
