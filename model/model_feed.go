package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserRef is a stored user reference expanded to its display fields.
type UserRef struct {
	ID       bson.ObjectID `json:"id"       bson:"_id"`
	Username string        `json:"username" bson:"username"`
}

type FeedComment struct {
	Author    UserRef   `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedPost is the display composite returned by listing, create and
// comment-append: author and every comment author resolved to UserRef.
type FeedPost struct {
	ID        bson.ObjectID   `json:"id"`
	Author    UserRef         `json:"author"`
	Content   string          `json:"content"`
	Image     *string         `json:"image"`
	Likes     []bson.ObjectID `json:"likes"`
	Comments  []FeedComment   `json:"comments"`
	CreatedAt time.Time       `json:"createdAt"`
}
