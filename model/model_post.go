package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post is the stored shape. The owner reference never changes after insert;
// likes hold each user at most once; comments are append-only.
type Post struct {
	ID        bson.ObjectID   `json:"id"        bson:"_id,omitempty"`
	UserID    bson.ObjectID   `json:"userId"    bson:"user_id"`
	Content   string          `json:"content"   bson:"content"`
	Image     *string         `json:"image"     bson:"image"`
	Likes     []bson.ObjectID `json:"likes"     bson:"likes"`
	Comments  []Comment       `json:"comments"  bson:"comments"`
	CreatedAt time.Time       `json:"createdAt" bson:"created_at"`
}

type Comment struct {
	UserID    bson.ObjectID `json:"userId"    bson:"user_id"`
	Content   string        `json:"content"   bson:"content"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
}
