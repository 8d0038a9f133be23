package mongo

import (
	"context"
	"time"

	"github.com/yoockh/languageclub/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentRepository interface {
	Insert(ctx context.Context, p *models.Payment) (*models.InsertResult, error)
	// ListByEmail returns newest first.
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

type paymentRepo struct {
	col *mongo.Collection
}

func NewPaymentRepo(db *mongo.Database) PaymentRepository {
	return &paymentRepo{col: db.Collection("payment")}
}

func (r *paymentRepo) Insert(ctx context.Context, p *models.Payment) (*models.InsertResult, error) {
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	out := insertResult(res)
	p.ID = out.InsertedID
	return out, nil
}

func (r *paymentRepo) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"email": email},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Payment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Payment{}
	}
	return out, nil
}
