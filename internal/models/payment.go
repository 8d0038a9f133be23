package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Price         float64            `bson:"price" json:"price"`
	Date          time.Time          `bson:"date" json:"date"`
	CartItemID    string             `bson:"cartItemId,omitempty" json:"cartItemId,omitempty"`
	ClassID       string             `bson:"classId,omitempty" json:"classId,omitempty"`
	ClassName     string             `bson:"className,omitempty" json:"className,omitempty"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`
}
