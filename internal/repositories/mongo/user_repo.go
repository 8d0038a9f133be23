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

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (*models.InsertResult, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (*models.UpdateResult, error)
}

type userRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepository {
	return &userRepo{col: db.Collection("users")}
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Insert(ctx context.Context, u *models.User) (*models.InsertResult, error) {
	res, err := r.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return nil, utils.ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	out := insertResult(res)
	u.ID = out.InsertedID
	return out, nil
}

func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *userRepo) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	return r.find(ctx, bson.M{"role": role})
}

func (r *userRepo) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.User{}
	}
	return out, nil
}

func (r *userRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return deleteResult(res), nil
}

func (r *userRepo) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (*models.UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}
