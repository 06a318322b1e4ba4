package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mrhabibie/go-socmed-api/dto"
	"github.com/mrhabibie/go-socmed-api/internal/authctx"
	"github.com/mrhabibie/go-socmed-api/internal/repository"
	"github.com/mrhabibie/go-socmed-api/services"
)

type PostHandler struct {
	Posts repository.PostRepository
	Svc   *services.PostService
}

// totalPages derives the page count for a window of size limit.
func totalPages(total, limit int64) int64 {
	return (total + limit - 1) / limit
}

// List godoc
// @Summary      Paginated feed, newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-indexed)"  default(1)
// @Param        limit  query     int  false  "Page size"                default(10)
// @Success      200    {object}  dto.FeedResponse
// @Failure      401    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	if page <= 0 {
		page = 1
	}
	limit := int64(c.QueryInt("limit", 10))
	if limit <= 0 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	posts, total, err := h.Posts.ListNewestFirst(ctx, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	return c.JSON(dto.FeedResponse{
		Posts:       posts,
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		TotalPosts:  total,
	})
}

// Create godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        content  formData  string  true   "Post text"
// @Param        image    formData  file    false  "Image attachment"
// @Success      201      {object}  model.FeedPost
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Authentication required"})
	}

	body := dto.CreatePostRequest{Content: c.FormValue("content")}
	if err := validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "content is required"})
	}

	// Absent file is not an error; the post simply has no image.
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	post, err := h.Svc.Create(ctx, uid, body.Content, image)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetByID godoc
// @Summary      Fetch a single post (owner only)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (hex)"
// @Success      200  {object}  model.Post
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetByID(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Authentication required"})
	}
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	post, err := h.Posts.FindOwned(ctx, id, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Post not found or unauthorized"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(post)
}

// Update godoc
// @Summary      Update a post (owner only)
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true   "Post ID (hex)"
// @Param        content  formData  string  false  "New post text"
// @Param        image    formData  file    false  "Replacement image"
// @Success      200      {object}  model.Post
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Authentication required"})
	}
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	content := c.FormValue("content")
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	post, err := h.Svc.Update(ctx, id, uid, content, image)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Post not found or unauthorized"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(post)
}

// Delete godoc
// @Summary      Delete a post (owner only)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (hex)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	uid, ok := authctx.UserIDFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Authentication required"})
	}
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "invalid post id"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	err = h.Posts.Delete(ctx, id, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Post not found or unauthorized"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "Post deleted successfully"})
}
