package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/mrhabibie/go-socmed-api/model"
)

type PostRepository interface {
	Create(ctx context.Context, post model.Post) (model.Post, error)
	ListNewestFirst(ctx context.Context, page, limit int64) ([]model.FeedPost, int64, error)
	FindPopulated(ctx context.Context, id bson.ObjectID) (model.FeedPost, error)
	FindOwned(ctx context.Context, id, owner bson.ObjectID) (model.Post, error)
	Update(ctx context.Context, id, owner bson.ObjectID, content string, image *string) (model.Post, error)
	Delete(ctx context.Context, id, owner bson.ObjectID) error
	ToggleLike(ctx context.Context, id, user bson.ObjectID) (model.Post, error)
	AppendComment(ctx context.Context, id, author bson.ObjectID, content string) (model.FeedPost, error)
}

type mongoPostRepo struct {
	col *mongo.Collection
}

func NewMongoPostRepo(db *mongo.Database) PostRepository {
	return &mongoPostRepo{col: db.Collection("posts")}
}

// feedRow is the raw aggregation output before comment authors are stitched in.
type feedRow struct {
	ID             bson.ObjectID   `bson:"_id"`
	Content        string          `bson:"content"`
	Image          *string         `bson:"image"`
	Likes          []bson.ObjectID `bson:"likes"`
	Comments       []model.Comment `bson:"comments"`
	CreatedAt      time.Time       `bson:"created_at"`
	Author         model.UserRef   `bson:"author"`
	CommentAuthors []model.UserRef `bson:"comment_authors"`
}

// populateStages joins the users collection twice: once for the post author,
// once for every comment author.
func populateStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$author", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "comments.user_id",
			"foreignField": "_id",
			"as":           "comment_authors",
		}}},
	}
}

func (row feedRow) toFeedPost() model.FeedPost {
	authors := make(map[bson.ObjectID]model.UserRef, len(row.CommentAuthors))
	for _, a := range row.CommentAuthors {
		authors[a.ID] = a
	}

	comments := make([]model.FeedComment, 0, len(row.Comments))
	for _, c := range row.Comments {
		author, ok := authors[c.UserID]
		if !ok {
			author = model.UserRef{ID: c.UserID}
		}
		comments = append(comments, model.FeedComment{
			Author:    author,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}

	likes := row.Likes
	if likes == nil {
		likes = []bson.ObjectID{}
	}

	return model.FeedPost{
		ID:        row.ID,
		Author:    row.Author,
		Content:   row.Content,
		Image:     row.Image,
		Likes:     likes,
		Comments:  comments,
		CreatedAt: row.CreatedAt,
	}
}

func (r *mongoPostRepo) Create(ctx context.Context, post model.Post) (model.Post, error) {
	res, err := r.col.InsertOne(ctx, post)
	if err != nil {
		return model.Post{}, err
	}
	post.ID = res.InsertedID.(bson.ObjectID)
	return post, nil
}

func (r *mongoPostRepo) ListNewestFirst(ctx context.Context, page, limit int64) ([]model.FeedPost, int64, error) {
	skip := (page - 1) * limit

	pipe := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
	}
	pipe = append(pipe, populateStages()...)

	cur, err := r.col.Aggregate(ctx, pipe)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var rows []feedRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, 0, err
	}

	posts := make([]model.FeedPost, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toFeedPost())
	}

	total, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *mongoPostRepo) FindPopulated(ctx context.Context, id bson.ObjectID) (model.FeedPost, error) {
	pipe := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipe = append(pipe, populateStages()...)

	cur, err := r.col.Aggregate(ctx, pipe)
	if err != nil {
		return model.FeedPost{}, err
	}
	defer cur.Close(ctx)

	var rows []feedRow
	if err := cur.All(ctx, &rows); err != nil {
		return model.FeedPost{}, err
	}
	if len(rows) == 0 {
		return model.FeedPost{}, ErrNotFound
	}
	return rows[0].toFeedPost(), nil
}

func (r *mongoPostRepo) FindOwned(ctx context.Context, id, owner bson.ObjectID) (model.Post, error) {
	var post model.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": owner}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Post{}, ErrNotFound
	}
	if err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// Update is a read-then-write sequence: the owner-scoped read and the $set are
// separate operations, so interleaved writers can be lost. Accepted limitation.
func (r *mongoPostRepo) Update(ctx context.Context, id, owner bson.ObjectID, content string, image *string) (model.Post, error) {
	post, err := r.FindOwned(ctx, id, owner)
	if err != nil {
		return model.Post{}, err
	}

	if content != "" {
		post.Content = content
	}
	if image != nil {
		post.Image = image
	}

	_, err = r.col.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{"$set": bson.M{
		"content": post.Content,
		"image":   post.Image,
	}})
	if err != nil {
		return model.Post{}, err
	}
	return post, nil
}

// Delete matches id and owner in a single conditional delete; there is no
// separate ownership check to race against.
func (r *mongoPostRepo) Delete(ctx context.Context, id, owner bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": owner})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike tests membership first and then flips it, so two concurrent
// toggles from the same user can cancel each other. $addToSet still keeps the
// set free of duplicates.
func (r *mongoPostRepo) ToggleLike(ctx context.Context, id, user bson.ObjectID) (model.Post, error) {
	var post model.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Post{}, ErrNotFound
	}
	if err != nil {
		return model.Post{}, err
	}

	liked := -1
	for i, uid := range post.Likes {
		if uid == user {
			liked = i
			break
		}
	}

	if liked == -1 {
		_, err = r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"likes": user}})
		post.Likes = append(post.Likes, user)
	} else {
		_, err = r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"likes": user}})
		post.Likes = append(post.Likes[:liked], post.Likes[liked+1:]...)
	}
	if err != nil {
		return model.Post{}, err
	}
	return post, nil
}

func (r *mongoPostRepo) AppendComment(ctx context.Context, id, author bson.ObjectID, content string) (model.FeedPost, error) {
	comment := model.Comment{
		UserID:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return model.FeedPost{}, err
	}
	if res.MatchedCount == 0 {
		return model.FeedPost{}, ErrNotFound
	}
	return r.FindPopulated(ctx, id)
}
