package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Todo represents a task owned by exactly one user.
type Todo struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user_id"`
	Title     string        `bson:"title"`
	Date      string        `bson:"date"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
