package structs

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Users are never hard-deleted.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username  string               `bson:"username" json:"username"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password" json:"-"`
	Bio       string               `bson:"bio,omitempty" json:"bio,omitempty"`
	IsAdmin   bool                 `bson:"isAdmin" json:"isAdmin"`
	Posts     []primitive.ObjectID `bson:"posts" json:"posts"`
	Comments  []primitive.ObjectID `bson:"comments" json:"comments"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
}

// Normalize replaces nil reference lists with empty ones.
func (u *User) Normalize() *User {
	if u.Posts == nil {
		u.Posts = []primitive.ObjectID{}
	}
	if u.Comments == nil {
		u.Comments = []primitive.ObjectID{}
	}
	return u
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Posts = append([]primitive.ObjectID{}, u.Posts...)
	c.Comments = append([]primitive.ObjectID{}, u.Comments...)
	return &c
}
