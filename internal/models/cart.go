package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type CartItem struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ClassID        string             `bson:"classId" json:"classId"`
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName string             `bson:"instructorName,omitempty" json:"instructorName,omitempty"`
	Price          float64            `bson:"price" json:"price"`
	Email          string             `bson:"email" json:"email"`
}
