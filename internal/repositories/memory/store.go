// Package memory is a process-local document store with the same observable
// behaviour as the Mongo repositories. It backs `serve --in-memory` and the
// handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yoockh/languageclub/internal/models"
	mongorepo "github.com/yoockh/languageclub/internal/repositories/mongo"
	"github.com/yoockh/languageclub/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu       sync.RWMutex
	users    []models.User
	classes  []models.Class
	cart     []models.CartItem
	payments []models.Payment
	now      func() time.Time
}

func New() *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) Users() mongorepo.UserRepository       { return userRepo{s} }
func (s *Store) Classes() mongorepo.ClassRepository    { return classRepo{s} }
func (s *Store) Cart() mongorepo.CartRepository        { return cartRepo{s} }
func (s *Store) Payments() mongorepo.PaymentRepository { return paymentRepo{s} }

// Ping satisfies the health check.
func (s *Store) Ping(context.Context) error { return nil }

type userRepo struct{ s *Store }

func (r userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r userRepo) Insert(_ context.Context, u *models.User) (*models.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, utils.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.s.users = append(r.s.users, *u)
	return &models.InsertResult{Acknowledged: true, InsertedID: u.ID}, nil
}

func (r userRepo) List(context.Context) ([]models.User, error) {
	return r.filter(func(models.User) bool { return true }), nil
}

func (r userRepo) ListByRole(_ context.Context, role models.UserRole) ([]models.User, error) {
	return r.filter(func(u models.User) bool { return u.Role == role }), nil
}

func (r userRepo) filter(keep func(models.User) bool) []models.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.User{}
	for _, u := range r.s.users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

func (r userRepo) Delete(_ context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, u := range r.s.users {
		if u.ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &models.DeleteResult{Acknowledged: true}, nil
}

func (r userRepo) SetRole(_ context.Context, id primitive.ObjectID, role models.UserRole) (*models.UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			res := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
			if r.s.users[i].Role != role {
				r.s.users[i].Role = role
				res.ModifiedCount = 1
			}
			return res, nil
		}
	}
	return &models.UpdateResult{Acknowledged: true}, nil
}

type classRepo struct{ s *Store }

func (r classRepo) Insert(_ context.Context, c *models.Class) (*models.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.s.classes = append(r.s.classes, *c)
	return &models.InsertResult{Acknowledged: true, InsertedID: c.ID}, nil
}

func (r classRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.classes {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r classRepo) ListAll(context.Context) ([]models.Class, error) {
	return r.filter(func(models.Class) bool { return true }), nil
}

func (r classRepo) ListByInstructor(_ context.Context, email string) ([]models.Class, error) {
	return r.filter(func(c models.Class) bool { return email == "" || c.Email == email }), nil
}

func (r classRepo) ListPricedAbove(_ context.Context, minPrice float64) ([]models.Class, error) {
	return catalog(r.filter(func(c models.Class) bool { return c.Price > minPrice })), nil
}

func (r classRepo) ListByStatus(_ context.Context, status models.ClassStatus) ([]models.Class, error) {
	return catalog(r.filter(func(c models.Class) bool { return c.Status == status })), nil
}

// catalog sorts by enrolment and strips fields outside the public view.
func catalog(in []models.Class) []models.Class {
	sort.SliceStable(in, func(i, j int) bool { return in[i].Enrolled > in[j].Enrolled })
	for i := range in {
		in[i].Email = ""
		in[i].Feedback = ""
	}
	return in
}

func (r classRepo) filter(keep func(models.Class) bool) []models.Class {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Class{}
	for _, c := range r.s.classes {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (r classRepo) Delete(_ context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, c := range r.s.classes {
		if c.ID == id {
			r.s.classes = append(r.s.classes[:i], r.s.classes[i+1:]...)
			return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &models.DeleteResult{Acknowledged: true}, nil
}

func (r classRepo) UpsertDetails(_ context.Context, id primitive.ObjectID, d models.ClassDetails) (*models.UpdateResult, error) {
	return r.update(id, true, func(c *models.Class) {
		c.Name = d.Name
		c.Seats = d.Seats
		c.Price = d.Price
		c.Status = models.ClassPending
	})
}

func (r classRepo) SetStatus(_ context.Context, id primitive.ObjectID, status models.ClassStatus) (*models.UpdateResult, error) {
	return r.update(id, false, func(c *models.Class) { c.Status = status })
}

func (r classRepo) UpsertFeedback(_ context.Context, id primitive.ObjectID, feedback string) (*models.UpdateResult, error) {
	return r.update(id, true, func(c *models.Class) { c.Feedback = feedback })
}

func (r classRepo) update(id primitive.ObjectID, upsert bool, apply func(*models.Class)) (*models.UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.classes {
		if r.s.classes[i].ID == id {
			before := r.s.classes[i]
			apply(&r.s.classes[i])
			res := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
			if before != r.s.classes[i] {
				res.ModifiedCount = 1
			}
			return res, nil
		}
	}
	if !upsert {
		return &models.UpdateResult{Acknowledged: true}, nil
	}
	c := models.Class{ID: id}
	apply(&c)
	r.s.classes = append(r.s.classes, c)
	return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &id}, nil
}

type cartRepo struct{ s *Store }

func (r cartRepo) Insert(_ context.Context, item *models.CartItem) (*models.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	r.s.cart = append(r.s.cart, *item)
	return &models.InsertResult{Acknowledged: true, InsertedID: item.ID}, nil
}

func (r cartRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, item := range r.s.cart {
		if item.ID == id {
			out := item
			return &out, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (r cartRepo) ListByEmail(_ context.Context, email string) ([]models.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.CartItem{}
	for _, item := range r.s.cart {
		if item.Email == email {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r cartRepo) Delete(_ context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, item := range r.s.cart {
		if item.ID == id {
			r.s.cart = append(r.s.cart[:i], r.s.cart[i+1:]...)
			return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &models.DeleteResult{Acknowledged: true}, nil
}

type paymentRepo struct{ s *Store }

func (r paymentRepo) Insert(_ context.Context, p *models.Payment) (*models.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.Date.IsZero() {
		p.Date = r.s.now()
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.s.payments = append(r.s.payments, *p)
	return &models.InsertResult{Acknowledged: true, InsertedID: p.ID}, nil
}

func (r paymentRepo) ListByEmail(_ context.Context, email string) ([]models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Payment{}
	for _, p := range r.s.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
