package mongo

import (
	"github.com/yoockh/languageclub/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// catalogProjection is the public view of a class document.
var catalogProjection = bson.M{
	"_id":            1,
	"name":           1,
	"image":          1,
	"instructorName": 1,
	"seats":          1,
	"status":         1,
	"price":          1,
	"enrolled":       1,
}

func insertResult(res *mongo.InsertOneResult) *models.InsertResult {
	out := &models.InsertResult{Acknowledged: true}
	if res != nil {
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			out.InsertedID = id
		}
	}
	return out
}

func updateResult(res *mongo.UpdateResult) *models.UpdateResult {
	out := &models.UpdateResult{Acknowledged: true}
	if res == nil {
		return out
	}
	out.MatchedCount = res.MatchedCount
	out.ModifiedCount = res.ModifiedCount
	out.UpsertedCount = res.UpsertedCount
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = &id
	}
	return out
}

func deleteResult(res *mongo.DeleteResult) *models.DeleteResult {
	out := &models.DeleteResult{Acknowledged: true}
	if res != nil {
		out.DeletedCount = res.DeletedCount
	}
	return out
}
