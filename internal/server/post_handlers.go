// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. Images are attached through
// POST /api/posts/:id/image; a ref cannot be set from the request body.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Category string   `json:"category,omitempty"`
		Tags     []string `json:"tags,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), s.actor(c), service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts. Supports q, category, tag, from, to,
// page, and page_size query parameters; all filters are AND-combined.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	filter, err := parsePostFilter(c)
	if err != nil {
		return nil
	}
	raw := parsePagination(c)
	page, pageSize := service.NormalizePagination(raw.Page, raw.PageSize)

	total, posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Filter:   filter,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"posts":     posts,
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. Absent fields are left untouched.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    *string   `json:"title"`
		Content  *string   `json:"content"`
		Category *string   `json:"category"`
		Tags     *[]string `json:"tags"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), s.actor(c), postID, service.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), s.actor(c), postID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost handles POST /api/posts/:id/like. Liking twice is a no-op.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.LikePost(c.Context(), s.actor(c), postID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	count, err := s.postService.LikesCount(c.Context(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"likes_count": count})
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	removed, err := s.postService.UnlikePost(c.Context(), s.actor(c), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	count, err := s.postService.LikesCount(c.Context(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"removed":     removed,
		"likes_count": count,
	})
}

// GetPostLikes handles GET /api/posts/:id/likes. Authenticated callers also
// get whether they like the post themselves.
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, err := s.postService.LikesCount(c.Context(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	resp := fiber.Map{"likes_count": count}
	if actor := s.optionalActor(c); actor != nil {
		liked, err := s.postService.IsLiked(c.Context(), actor, postID)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		resp["liked"] = liked
	}

	return c.JSON(resp)
}

// UploadPostImage handles POST /api/posts/:id/image. The multipart "image"
// file is handed to the image store and the ref it returns is persisted.
func (s *Server) UploadPostImage(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = file.Close() }()

	post, err := s.postService.AttachImage(c.Context(), s.actor(c), postID, fileHeader.Filename, file)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}

// DeletePostImage handles DELETE /api/posts/:id/image
func (s *Server) DeletePostImage(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.RemoveImage(c.Context(), s.actor(c), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(post)
}
