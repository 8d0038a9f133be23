package mongo

import (
	"context"
	"sync/atomic"

	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Lazy hands out repositories before the database is reachable. Until Set is
// called every operation fails with utils.ErrUnavailable.
type Lazy struct {
	client atomic.Pointer[mongo.Client]
	db     atomic.Pointer[mongo.Database]
}

func NewLazy() *Lazy { return &Lazy{} }

// Set publishes a connected client. Later calls are ignored.
func (l *Lazy) Set(client *mongo.Client, dbName string) bool {
	if !l.client.CompareAndSwap(nil, client) {
		return false
	}
	l.db.Store(client.Database(dbName))
	return true
}

// Client is nil until Set.
func (l *Lazy) Client() *mongo.Client { return l.client.Load() }

func (l *Lazy) Ping(ctx context.Context) error {
	c := l.client.Load()
	if c == nil {
		return utils.ErrUnavailable
	}
	return c.Ping(ctx, readpref.Primary())
}

func (l *Lazy) database() (*mongo.Database, error) {
	db := l.db.Load()
	if db == nil {
		return nil, utils.ErrUnavailable
	}
	return db, nil
}

func (l *Lazy) Users() UserRepository       { return lazyUsers{l} }
func (l *Lazy) Classes() ClassRepository    { return lazyClasses{l} }
func (l *Lazy) Cart() CartRepository        { return lazyCart{l} }
func (l *Lazy) Payments() PaymentRepository { return lazyPayments{l} }

// call builds the repository over the current database and runs fn on it.
func call[R, T any](l *Lazy, build func(*mongo.Database) R, fn func(R) (T, error)) (T, error) {
	db, err := l.database()
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(build(db))
}

type lazyUsers struct{ l *Lazy }

func (u lazyUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return call(u.l, NewUserRepo, func(r UserRepository) (*models.User, error) { return r.FindByEmail(ctx, email) })
}

func (u lazyUsers) Insert(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	return call(u.l, NewUserRepo, func(r UserRepository) (*models.InsertResult, error) { return r.Insert(ctx, user) })
}

func (u lazyUsers) List(ctx context.Context) ([]models.User, error) {
	return call(u.l, NewUserRepo, func(r UserRepository) ([]models.User, error) { return r.List(ctx) })
}

func (u lazyUsers) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	return call(u.l, NewUserRepo, func(r UserRepository) ([]models.User, error) { return r.ListByRole(ctx, role) })
}

func (u lazyUsers) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	return call(u.l, NewUserRepo, func(r UserRepository) (*models.DeleteResult, error) { return r.Delete(ctx, id) })
}

func (u lazyUsers) SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (*models.UpdateResult, error) {
	return call(u.l, NewUserRepo, func(r UserRepository) (*models.UpdateResult, error) { return r.SetRole(ctx, id, role) })
}

type lazyClasses struct{ l *Lazy }

func (c lazyClasses) Insert(ctx context.Context, class *models.Class) (*models.InsertResult, error) {
	return call(c.l, NewClassRepo, func(r ClassRepository) (*models.InsertResult, error) { return r.Insert(ctx, class) })
}

func (c lazyClasses) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	return call(c.l, NewClassRepo, func(r ClassRepository) (*models.Class, error) { return r.FindByID(ctx, id) })
}

func (c lazyClasses) ListAll(ctx context.Context) ([]models.Class, error) {
	return call(c.l, NewClassRepo, func(r ClassRepository) ([]models.Class, error) { return r.ListAll(ctx) })
}

func (c lazyClasses) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	return call(c.l, NewClassRepo, func(r ClassRepository) ([]models.Class, error) { return r.ListByInstructor(ctx, email) })
}

func (c lazyClasses) ListPricedAbove(ctx context.Context, minPrice float64) ([]models.Class, error) {
	return call(c.l, NewClassRepo, func(r ClassRepository) ([]models.Class, error) { return r.ListPricedAbove(ctx, minPrice) })
}

func (c lazyClasses) ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error) {
	return call(c.l, NewClassRepo, func(r ClassRepository) ([]models.Class, error) { return r.ListByStatus(ctx, status) })
}

func (c lazyClasses) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	return call(c.l, NewClassRepo, func(r ClassRepository) (*models.DeleteResult, error) { return r.Delete(ctx, id) })
}

func (c lazyClasses) UpsertDetails(ctx context.Context, id primitive.ObjectID, d models.ClassDetails) (*models.UpdateResult, error) {
	return call(c.l, NewClassRepo, func(r ClassRepository) (*models.UpdateResult, error) { return r.UpsertDetails(ctx, id, d) })
}

func (c lazyClasses) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (*models.UpdateResult, error) {
	return call(c.l, NewClassRepo, func(r ClassRepository) (*models.UpdateResult, error) { return r.SetStatus(ctx, id, status) })
}

func (c lazyClasses) UpsertFeedback(ctx context.Context, id primitive.ObjectID, feedback string) (*models.UpdateResult, error) {
	return call(c.l, NewClassRepo, func(r ClassRepository) (*models.UpdateResult, error) { return r.UpsertFeedback(ctx, id, feedback) })
}

type lazyCart struct{ l *Lazy }

func (c lazyCart) Insert(ctx context.Context, item *models.CartItem) (*models.InsertResult, error) {
	return call(c.l, NewCartRepo, func(r CartRepository) (*models.InsertResult, error) { return r.Insert(ctx, item) })
}

func (c lazyCart) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CartItem, error) {
	return call(c.l, NewCartRepo, func(r CartRepository) (*models.CartItem, error) { return r.FindByID(ctx, id) })
}

func (c lazyCart) ListByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	return call(c.l, NewCartRepo, func(r CartRepository) ([]models.CartItem, error) { return r.ListByEmail(ctx, email) })
}

func (c lazyCart) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	return call(c.l, NewCartRepo, func(r CartRepository) (*models.DeleteResult, error) { return r.Delete(ctx, id) })
}

type lazyPayments struct{ l *Lazy }

func (p lazyPayments) Insert(ctx context.Context, pay *models.Payment) (*models.InsertResult, error) {
	return call(p.l, NewPaymentRepo, func(r PaymentRepository) (*models.InsertResult, error) { return r.Insert(ctx, pay) })
}

func (p lazyPayments) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return call(p.l, NewPaymentRepo, func(r PaymentRepository) ([]models.Payment, error) { return r.ListByEmail(ctx, email) })
}
