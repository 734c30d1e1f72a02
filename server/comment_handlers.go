package server

import (
	"errors"

	"prodea/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CommentRequest is the input schema for comment create and update operations.
type CommentRequest struct {
	Text       string `json:"text"`
	PostID     uint   `json:"post_id"`
	UserID     uint   `json:"user_id"`
	SolutionID uint   `json:"solution_id"`
	Rating     int    `json:"rating"`
}

func (r *CommentRequest) validate() error {
	if r.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

func (r *CommentRequest) toModel() models.Comment {
	return models.Comment{
		Text:       r.Text,
		PostID:     r.PostID,
		UserID:     r.UserID,
		SolutionID: r.SolutionID,
		Rating:     r.Rating,
	}
}

// GetComments handles GET /api/comments/get_comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	var comments []models.Comment
	if err := s.db.Find(&comments).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(comments)
}

// GetCommentByID handles GET /api/comments/get_comment_by_id?id=
func (s *Server) GetCommentByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Comment", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(comment)
}

// CreateMultipleComments handles POST /api/comments/create_multiple_comments.
// All rows are inserted in one transaction.
func (s *Server) CreateMultipleComments(c *fiber.Ctx) error {
	var reqs []CommentRequest
	if err := c.BodyParser(&reqs); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comments := make([]models.Comment, 0, len(reqs))
	for _, req := range reqs {
		if err := req.validate(); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		comments = append(comments, req.toModel())
	}

	if len(comments) > 0 {
		if err := s.db.Create(&comments).Error; err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}
	return c.Status(fiber.StatusCreated).JSON(comments)
}

// DeleteCommentByID handles DELETE /api/comments/delete_comment_by_id?id=
func (s *Server) DeleteCommentByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Comment", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.db.Delete(&comment).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(comment)
}

// UpdateCommentByID handles PUT /api/comments/update_comment_by_id?id=
func (s *Server) UpdateCommentByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	req := new(CommentRequest)
	if err := c.BodyParser(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := req.validate(); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Comment", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	comment.Text = req.Text
	comment.Rating = req.Rating

	if err := s.db.Save(&comment).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(comment)
}

// LikeComment handles GET /api/comments/like_comment/:id
func (s *Server) LikeComment(c *fiber.Ctx) error {
	return s.adjustCommentRating(c, 1, "Comment liked successfully")
}

// DislikeComment handles GET /api/comments/dislike_comment/:id. The stored
// rating never drops below zero.
func (s *Server) DislikeComment(c *fiber.Ctx) error {
	return s.adjustCommentRating(c, -1, "Comment disliked successfully")
}

func (s *Server) adjustCommentRating(c *fiber.Ctx, delta int, message string) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("id must be an integer"))
	}

	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absent rows produce an empty "no content" signal.
			return c.SendStatus(fiber.StatusNoContent)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	comment.Rating += delta
	if comment.Rating < 0 {
		comment.Rating = 0
	}

	if err := s.db.Save(&comment).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"message": message,
	})
}
