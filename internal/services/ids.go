package services

import (
	"github.com/yoockh/languageclub/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utils.E(utils.CodeInvalidArgument, op, "invalid id", err)
	}
	return oid, nil
}
