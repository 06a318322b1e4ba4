package dto

import "github.com/mrhabibie/go-socmed-api/model"

// CreatePostRequest carries the multipart text field; the image part is read
// from the form file directly.
type CreatePostRequest struct {
	Content string `form:"content" json:"content" validate:"required"`
}

type UpdatePostRequest struct {
	Content string `form:"content" json:"content"`
}

type CreateCommentRequest struct {
	Content string `form:"content" json:"content" validate:"required"`
}

// FeedResponse is the paginated listing envelope.
type FeedResponse struct {
	Posts       []model.FeedPost `json:"posts"`
	CurrentPage int64            `json:"currentPage" example:"1"`
	TotalPages  int64            `json:"totalPages"  example:"3"`
	TotalPosts  int64            `json:"totalPosts"  example:"25"`
}
