package mongo

import (
	"context"
	"errors"

	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ClassRepository interface {
	Insert(ctx context.Context, c *models.Class) (*models.InsertResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	// ListByInstructor returns every class when email is empty.
	ListByInstructor(ctx context.Context, email string) ([]models.Class, error)
	// ListPricedAbove and ListByStatus return the catalog projection sorted by enrolled desc.
	ListPricedAbove(ctx context.Context, minPrice float64) ([]models.Class, error)
	ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
	UpsertDetails(ctx context.Context, id primitive.ObjectID, d models.ClassDetails) (*models.UpdateResult, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (*models.UpdateResult, error)
	UpsertFeedback(ctx context.Context, id primitive.ObjectID, feedback string) (*models.UpdateResult, error)
}

type classRepo struct {
	col *mongo.Collection
}

func NewClassRepo(db *mongo.Database) ClassRepository {
	return &classRepo{col: db.Collection("classes")}
}

func (r *classRepo) Insert(ctx context.Context, c *models.Class) (*models.InsertResult, error) {
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return nil, err
	}
	out := insertResult(res)
	c.ID = out.InsertedID
	return out, nil
}

func (r *classRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	var c models.Class
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *classRepo) ListAll(ctx context.Context) ([]models.Class, error) {
	return r.find(ctx, bson.M{})
}

func (r *classRepo) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	return r.find(ctx, filter)
}

func (r *classRepo) ListPricedAbove(ctx context.Context, minPrice float64) ([]models.Class, error) {
	return r.find(ctx, bson.M{"price": bson.M{"$gt": minPrice}}, catalogOptions())
}

func (r *classRepo) ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error) {
	return r.find(ctx, bson.M{"status": status}, catalogOptions())
}

func catalogOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "enrolled", Value: -1}}).
		SetProjection(catalogProjection)
}

func (r *classRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Class, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Class{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Class{}
	}
	return out, nil
}

func (r *classRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return deleteResult(res), nil
}

func (r *classRepo) UpsertDetails(ctx context.Context, id primitive.ObjectID, d models.ClassDetails) (*models.UpdateResult, error) {
	return r.update(ctx, id, bson.M{
		"name":   d.Name,
		"seats":  d.Seats,
		"price":  d.Price,
		"status": models.ClassPending,
	}, true)
}

func (r *classRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (*models.UpdateResult, error) {
	return r.update(ctx, id, bson.M{"status": status}, false)
}

func (r *classRepo) UpsertFeedback(ctx context.Context, id primitive.ObjectID, feedback string) (*models.UpdateResult, error) {
	return r.update(ctx, id, bson.M{"feedback": feedback}, true)
}

func (r *classRepo) update(ctx context.Context, id primitive.ObjectID, set bson.M, upsert bool) (*models.UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.Update().SetUpsert(upsert),
	)
	if err != nil {
		return nil, err
	}
	return updateResult(res), nil
}
