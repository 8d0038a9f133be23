package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find by email", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "languageClub.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "admin@club.io"},
			{Key: "role", Value: "admin"},
		}))

		u, err := NewUserRepo(mt.DB).FindByEmail(ctx, "admin@club.io")
		require.NoError(mt, err)
		assert.Equal(mt, id, u.ID)
		assert.Equal(mt, models.RoleAdmin, u.Role)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, "admin@club.io", filter.Lookup("email").StringValue())
	})

	mt.Run("find by email not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "languageClub.users", mtest.FirstBatch))

		_, err := NewUserRepo(mt.DB).FindByEmail(ctx, "nobody@club.io")
		assert.ErrorIs(mt, err, utils.ErrNotFound)
	})

	mt.Run("insert duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := NewUserRepo(mt.DB).Insert(ctx, &models.User{Email: "dup@club.io"})
		assert.ErrorIs(mt, err, utils.ErrDuplicate)
	})

	mt.Run("insert assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &models.User{Email: "new@club.io"}
		res, err := NewUserRepo(mt.DB).Insert(ctx, u)
		require.NoError(mt, err)
		assert.True(mt, res.Acknowledged)
		assert.False(mt, res.InsertedID.IsZero())
		assert.Equal(mt, res.InsertedID, u.ID)
	})

	mt.Run("list by role empty is not nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "languageClub.users", mtest.FirstBatch))

		out, err := NewUserRepo(mt.DB).ListByRole(ctx, models.RoleInstructor)
		require.NoError(mt, err)
		assert.NotNil(mt, out)
		assert.Empty(mt, out)
	})

	mt.Run("set role", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		res, err := NewUserRepo(mt.DB).SetRole(ctx, primitive.NewObjectID(), models.RoleInstructor)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.MatchedCount)
		assert.Equal(mt, int64(1), res.ModifiedCount)
	})

	mt.Run("delete zero matches", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		res, err := NewUserRepo(mt.DB).Delete(ctx, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, res.Acknowledged)
		assert.Zero(mt, res.DeletedCount)
	})
}

func TestClassRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("approved catalog is sorted and projected", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "languageClub.classes", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Spanish A1"}, {Key: "enrolled", Value: 30}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "French A1"}, {Key: "enrolled", Value: 12}},
		))

		out, err := NewClassRepo(mt.DB).ListByStatus(ctx, models.ClassApproved)
		require.NoError(mt, err)
		require.Len(mt, out, 2)
		assert.Equal(mt, "Spanish A1", out[0].Name)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "Approved", cmd.Lookup("filter", "status").StringValue())
		assert.Equal(mt, int32(-1), cmd.Lookup("sort", "enrolled").Int32())
		_, err = cmd.Lookup("projection").Document().LookupErr("instructorName")
		assert.NoError(mt, err)
		_, err = cmd.Lookup("projection").Document().LookupErr("feedback")
		assert.Error(mt, err)
	})

	mt.Run("priced above uses $gt", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "languageClub.classes", mtest.FirstBatch))

		_, err := NewClassRepo(mt.DB).ListPricedAbove(ctx, 10)
		require.NoError(mt, err)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, float64(10), cmd.Lookup("filter", "price", "$gt").Double())
	})

	mt.Run("instructor filter omitted when email empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "languageClub.classes", mtest.FirstBatch))

		_, err := NewClassRepo(mt.DB).ListByInstructor(ctx, "")
		require.NoError(mt, err)

		_, err = mt.GetStartedEvent().Command.Lookup("filter").Document().LookupErr("email")
		assert.Error(mt, err)
	})

	mt.Run("upsert details resets status", func(mt *mtest.T) {
		upserted := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: upserted}}}},
		))

		res, err := NewClassRepo(mt.DB).UpsertDetails(ctx, upserted, models.ClassDetails{Name: "German B1", Seats: 20, Price: 45})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.UpsertedCount)
		require.NotNil(mt, res.UpsertedID)
		assert.Equal(mt, upserted, *res.UpsertedID)

		update := mt.GetStartedEvent().Command.Lookup("updates").Array().Index(0).Value().Document()
		assert.True(mt, update.Lookup("upsert").Boolean())
		assert.Equal(mt, "Pending", update.Lookup("u", "$set", "status").StringValue())
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "languageClub.classes", mtest.FirstBatch))

		_, err := NewClassRepo(mt.DB).FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, utils.ErrNotFound)
	})
}

func TestCartAndPaymentRepos(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("cart list by email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "languageClub.cart", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "a@b.com"}, {Key: "price", Value: 20.5}},
		))

		out, err := NewCartRepo(mt.DB).ListByEmail(ctx, "a@b.com")
		require.NoError(mt, err)
		require.Len(mt, out, 1)
		assert.Equal(mt, 20.5, out[0].Price)
	})

	mt.Run("payment insert defaults date", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Payment{Email: "a@b.com", TransactionID: "pi_1", Price: 20}
		before := time.Now().UTC().Add(-time.Second)
		_, err := NewPaymentRepo(mt.DB).Insert(ctx, p)
		require.NoError(mt, err)
		assert.True(mt, p.Date.After(before))
	})

	mt.Run("payments sorted by date desc", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "languageClub.payment", mtest.FirstBatch))

		out, err := NewPaymentRepo(mt.DB).ListByEmail(ctx, "a@b.com")
		require.NoError(mt, err)
		assert.Empty(mt, out)
		assert.Equal(mt, int32(-1), mt.GetStartedEvent().Command.Lookup("sort", "date").Int32())
	})
}
