package services

import (
	"context"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mrhabibie/go-socmed-api/internal/repository"
	"github.com/mrhabibie/go-socmed-api/model"
)

// BlobStore persists an uploaded file and returns its public path.
type BlobStore interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type PostService struct {
	Posts repository.PostRepository
	Store BlobStore
}

func NewPostService(posts repository.PostRepository, store BlobStore) *PostService {
	return &PostService{Posts: posts, Store: store}
}

// Create stores the attachment first, then the post document. If the document
// insert fails after the attachment was written, the file is orphaned on disk
// and left there.
func (s *PostService) Create(ctx context.Context, owner bson.ObjectID, content string, image *multipart.FileHeader) (model.FeedPost, error) {
	var imagePath *string
	if image != nil {
		p, err := s.Store.Save(image)
		if err != nil {
			return model.FeedPost{}, err
		}
		imagePath = &p
	}

	post := model.Post{
		UserID:    owner,
		Content:   content,
		Image:     imagePath,
		Likes:     []bson.ObjectID{},
		Comments:  []model.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.Posts.Create(ctx, post)
	if err != nil {
		return model.FeedPost{}, err
	}
	return s.Posts.FindPopulated(ctx, created.ID)
}

// Update replaces content when a non-empty value is supplied and the image
// wholesale when a new file is uploaded. The previous image stays in storage.
func (s *PostService) Update(ctx context.Context, id, owner bson.ObjectID, content string, image *multipart.FileHeader) (model.Post, error) {
	var imagePath *string
	if image != nil {
		p, err := s.Store.Save(image)
		if err != nil {
			return model.Post{}, err
		}
		imagePath = &p
	}
	return s.Posts.Update(ctx, id, owner, content, imagePath)
}
