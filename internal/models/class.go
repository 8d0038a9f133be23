package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type ClassStatus string

const (
	ClassPending  ClassStatus = "Pending"
	ClassApproved ClassStatus = "Approved"
	ClassDenied   ClassStatus = "Denied"
)

type Class struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name           string             `bson:"name" json:"name"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	InstructorName string             `bson:"instructorName,omitempty" json:"instructorName,omitempty"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"` // instructor email
	Seats          int                `bson:"seats" json:"seats"`
	Price          float64            `bson:"price" json:"price"`
	Enrolled       int                `bson:"enrolled" json:"enrolled"`
	Status         ClassStatus        `bson:"status,omitempty" json:"status,omitempty"`
	Feedback       string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// ClassDetails are the instructor-editable fields.
type ClassDetails struct {
	Name  string  `json:"name"`
	Seats int     `json:"seats"`
	Price float64 `json:"price"`
}
