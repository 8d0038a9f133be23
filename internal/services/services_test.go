package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/languageclub/internal/cache"
	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/repositories/memory"
	"github.com/yoockh/languageclub/internal/utils"
)

func newCache(t *testing.T) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewRedisCache(rdb), mr
}

type stubProcessor struct {
	amount   int64
	currency string
	exponent int
	err      error
}

func (p *stubProcessor) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	p.amount, p.currency = amount, currency
	if p.err != nil {
		return "", p.err
	}
	return "pi_secret_123", nil
}

func (p *stubProcessor) MinorUnitExponent(string) int { return p.exponent }

func (p *stubProcessor) Name() string { return "stub" }

func TestUserService_RegisterIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.New().Users(), nil, time.Minute)

	res, existed, err := svc.Register(ctx, &models.User{Email: "a@x.io", Name: "A", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, existed)
	require.NotNil(t, res)
	assert.False(t, res.InsertedID.IsZero())

	res, existed, err = svc.Register(ctx, &models.User{Email: "a@x.io"})
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Nil(t, res)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	// signup never grants a role
	assert.Equal(t, models.RoleNone, list[0].Role)

	_, _, err = svc.Register(ctx, &models.User{})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestUserService_PromoteAndHasRole(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.New().Users(), nil, time.Minute)

	res, _, err := svc.Register(ctx, &models.User{Email: "i@x.io"})
	require.NoError(t, err)

	ok, err := svc.HasRole(ctx, "i@x.io", models.RoleInstructor)
	require.NoError(t, err)
	assert.False(t, ok)

	upd, err := svc.Promote(ctx, res.InsertedID.Hex(), models.RoleInstructor)
	require.NoError(t, err)
	assert.EqualValues(t, 1, upd.ModifiedCount)

	ok, err = svc.HasRole(ctx, "i@x.io", models.RoleInstructor)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasRole(ctx, "i@x.io", models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.HasRole(ctx, "nobody@x.io", models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Promote(ctx, "not-an-id", models.RoleAdmin)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	_, err = svc.Promote(ctx, res.InsertedID.Hex(), models.RoleNone)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestUserService_InstructorsCacheInvalidatedOnPromote(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	svc := NewUserService(memory.New().Users(), c, time.Minute)

	res, _, err := svc.Register(ctx, &models.User{Email: "i@x.io"})
	require.NoError(t, err)

	list, err := svc.ListInstructors(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.True(t, mr.Exists(cache.KeyInstructors))

	_, err = svc.Promote(ctx, res.InsertedID.Hex(), models.RoleInstructor)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.KeyInstructors))

	list, err = svc.ListInstructors(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "i@x.io", list[0].Email)
}

func TestClassService_AddForcesPending(t *testing.T) {
	ctx := context.Background()
	svc := NewClassService(memory.New().Classes(), nil, time.Minute)

	c := &models.Class{Name: "French B1", Price: 40, Status: models.ClassApproved, Feedback: "sneaky", Enrolled: -3}
	res, err := svc.Add(ctx, c)
	require.NoError(t, err)

	got, err := svc.Get(ctx, res.InsertedID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.ClassPending, got.Status)
	assert.Empty(t, got.Feedback)
	assert.Zero(t, got.Enrolled)

	_, err = svc.Add(ctx, &models.Class{Price: 1})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestClassService_GetMissingAndMalformed(t *testing.T) {
	ctx := context.Background()
	svc := NewClassService(memory.New().Classes(), nil, time.Minute)

	_, err := svc.Get(ctx, "64b7f0c2a1b2c3d4e5f60718")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = svc.Get(ctx, "zzz")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestClassService_PopularCacheInvalidatedOnApprove(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	svc := NewClassService(memory.New().Classes(), c, time.Minute)

	res, err := svc.Add(ctx, &models.Class{Name: "German A2", Price: 25, Enrolled: 7})
	require.NoError(t, err)

	popular, err := svc.ListPopular(ctx)
	require.NoError(t, err)
	assert.Empty(t, popular)
	assert.True(t, mr.Exists(cache.KeyClassesPopular))

	_, err = svc.Approve(ctx, res.InsertedID.Hex())
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.KeyClassesPopular))

	popular, err = svc.ListPopular(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, models.ClassApproved, popular[0].Status)

	catalog, err := svc.ListCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 1)
}

func TestClassService_UpdateResetsStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewClassService(memory.New().Classes(), nil, time.Minute)

	res, err := svc.Add(ctx, &models.Class{Name: "Italian", Price: 15})
	require.NoError(t, err)
	id := res.InsertedID.Hex()

	_, err = svc.Approve(ctx, id)
	require.NoError(t, err)
	_, err = svc.UpdateDetails(ctx, id, models.ClassDetails{Name: "Italian A1", Seats: 10, Price: 18})
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.ClassPending, got.Status)
	assert.Equal(t, "Italian A1", got.Name)

	_, err = svc.SetFeedback(ctx, id, "needs syllabus")
	require.NoError(t, err)
	got, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "needs syllabus", got.Feedback)
}

func TestCartService(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(memory.New().Cart())

	res, err := svc.Add(ctx, &models.CartItem{ClassID: "c1", Email: "a@x.io", Price: 20})
	require.NoError(t, err)

	list, err := svc.ListByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	del, err := svc.Delete(ctx, res.InsertedID.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)

	_, err = svc.Get(ctx, res.InsertedID.Hex())
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = svc.Add(ctx, &models.CartItem{ClassID: "c1"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestToMinorUnits(t *testing.T) {
	assert.EqualValues(t, 2000, ToMinorUnits(20, 2))
	assert.EqualValues(t, 1999, ToMinorUnits(19.99, 2))
	assert.EqualValues(t, 1, ToMinorUnits(0.005, 2))
	assert.EqualValues(t, 50000, ToMinorUnits(50000, 0))
	assert.EqualValues(t, 1500, ToMinorUnits(1499.6, 0))
}

func TestPaymentService_CreateIntent(t *testing.T) {
	ctx := context.Background()
	proc := &stubProcessor{exponent: 2}
	svc := NewPaymentService(memory.New().Payments(), proc, "USD")

	secret, err := svc.CreateIntent(ctx, 19.99)
	require.NoError(t, err)
	assert.Equal(t, "pi_secret_123", secret)
	assert.EqualValues(t, 1999, proc.amount)
	assert.Equal(t, "usd", proc.currency)

	for _, price := range []float64{0, -5, 0.001} {
		_, err := svc.CreateIntent(ctx, price)
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument), "price %v", price)
	}

	proc.err = errors.New("card_declined")
	_, err = svc.CreateIntent(ctx, 10)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}

func TestPaymentService_RecordAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewPaymentService(memory.New().Payments(), &stubProcessor{}, "")

	p := &models.Payment{Email: "a@x.io", TransactionID: "tx1", Price: 20}
	_, err := svc.Record(ctx, p)
	require.NoError(t, err)
	assert.False(t, p.Date.IsZero())

	list, err := svc.ListByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "tx1", list[0].TransactionID)
}

func TestPaymentService_CreateIntentZeroDecimalCurrency(t *testing.T) {
	ctx := context.Background()
	proc := &stubProcessor{exponent: 0}
	svc := NewPaymentService(memory.New().Payments(), proc, "idr")

	_, err := svc.CreateIntent(ctx, 50000)
	require.NoError(t, err)
	// whole rupiah, not 100x
	assert.EqualValues(t, 50000, proc.amount)

	_, err = svc.CreateIntent(ctx, 0.4)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestPaymentService_NoProcessor(t *testing.T) {
	svc := NewPaymentService(memory.New().Payments(), nil, "usd")
	_, err := svc.CreateIntent(context.Background(), 10)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}
