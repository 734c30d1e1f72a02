package server

import (
	"errors"

	"prodea/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PostRequest is the input schema for post create and update operations.
type PostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	UserID      uint   `json:"user_id"`
}

func (r *PostRequest) validate() error {
	if r.Title == "" || r.Description == "" || r.Category == "" || r.Difficulty == "" {
		return errors.New("title, description, category, and difficulty are required")
	}
	return nil
}

func (r *PostRequest) toModel() models.Post {
	return models.Post{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Difficulty:  r.Difficulty,
		UserID:      r.UserID,
	}
}

// GetPosts handles GET /api/posts/get_posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	var posts []models.Post
	if err := s.db.Find(&posts).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(posts)
}

// GetPostByID handles GET /api/posts/get_post_by_id?id=
func (s *Server) GetPostByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(post)
}

// CreateMultiplePosts handles POST /api/posts/create_multiple_posts. All
// rows are inserted in one transaction.
func (s *Server) CreateMultiplePosts(c *fiber.Ctx) error {
	var reqs []PostRequest
	if err := c.BodyParser(&reqs); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	posts := make([]models.Post, 0, len(reqs))
	for _, req := range reqs {
		if err := req.validate(); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		posts = append(posts, req.toModel())
	}

	if len(posts) > 0 {
		if err := s.db.Create(&posts).Error; err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}
	return c.Status(fiber.StatusCreated).JSON(posts)
}

// DeletePostByID handles DELETE /api/posts/delete_post_by_id?id=
func (s *Server) DeletePostByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.db.Delete(&post).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(post)
}

// UpdatePostByID handles PUT /api/posts/update_post_by_id?id=
func (s *Server) UpdatePostByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	req := new(PostRequest)
	if err := c.BodyParser(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := req.validate(); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	post.Title = req.Title
	post.Description = req.Description
	post.Category = req.Category
	post.Difficulty = req.Difficulty

	if err := s.db.Save(&post).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(post)
}

// LikePost handles GET /api/posts/like_post/:id. Posts carry no rating
// column, so only existence is verified; the count lives client-side.
func (s *Server) LikePost(c *fiber.Ctx) error {
	return s.acknowledgePostRating(c, "Post liked successfully")
}

// DislikePost handles GET /api/posts/dislike_post/:id
func (s *Server) DislikePost(c *fiber.Ctx) error {
	return s.acknowledgePostRating(c, "Post disliked successfully")
}

func (s *Server) acknowledgePostRating(c *fiber.Ctx, message string) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("id must be an integer"))
	}

	var post models.Post
	if err := s.db.Select("id").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"message": message,
		"post_id": id,
		"note":    "Rating stored client-side (posts carry no rating column)",
	})
}
