package mongo

import (
	"context"
	"errors"

	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CartRepository interface {
	Insert(ctx context.Context, item *models.CartItem) (*models.InsertResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CartItem, error)
	ListByEmail(ctx context.Context, email string) ([]models.CartItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
}

type cartRepo struct {
	col *mongo.Collection
}

func NewCartRepo(db *mongo.Database) CartRepository {
	return &cartRepo{col: db.Collection("cart")}
}

func (r *cartRepo) Insert(ctx context.Context, item *models.CartItem) (*models.InsertResult, error) {
	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return nil, err
	}
	out := insertResult(res)
	item.ID = out.InsertedID
	return out, nil
}

func (r *cartRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) ListByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	cur, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.CartItem{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.CartItem{}
	}
	return out, nil
}

func (r *cartRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return deleteResult(res), nil
}
