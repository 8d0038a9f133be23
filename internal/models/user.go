package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type UserRole string

// RoleNone is the role of a freshly signed-up user.
const (
	RoleNone       UserRole = ""
	RoleAdmin      UserRole = "admin"
	RoleInstructor UserRole = "instructor"
)

type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Email string             `bson:"email" json:"email"`
	Photo string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role  UserRole           `bson:"role,omitempty" json:"role,omitempty"`
}

func (u *User) HasRole(r UserRole) bool {
	return u != nil && r != RoleNone && u.Role == r
}
