package server

import (
	"errors"

	"prodea/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SolutionRequest is the input schema for solution create and update operations.
type SolutionRequest struct {
	Text   string `json:"text"`
	PostID uint   `json:"post_id"`
	UserID uint   `json:"user_id"`
	Rating int    `json:"rating"`
}

func (r *SolutionRequest) validate() error {
	if r.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

func (r *SolutionRequest) toModel() models.Solution {
	return models.Solution{
		Text:   r.Text,
		PostID: r.PostID,
		UserID: r.UserID,
		Rating: r.Rating,
	}
}

// GetSolutions handles GET /api/solutions/get_solutions
func (s *Server) GetSolutions(c *fiber.Ctx) error {
	var solutions []models.Solution
	if err := s.db.Find(&solutions).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(solutions)
}

// GetSolutionByID handles GET /api/solutions/get_solution_by_id?id=
func (s *Server) GetSolutionByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var solution models.Solution
	if err := s.db.First(&solution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Solution", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(solution)
}

// CreateMultipleSolutions handles POST /api/solutions/create_multiple_solutions.
// All rows are inserted in one transaction.
func (s *Server) CreateMultipleSolutions(c *fiber.Ctx) error {
	var reqs []SolutionRequest
	if err := c.BodyParser(&reqs); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	solutions := make([]models.Solution, 0, len(reqs))
	for _, req := range reqs {
		if err := req.validate(); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		solutions = append(solutions, req.toModel())
	}

	if len(solutions) > 0 {
		if err := s.db.Create(&solutions).Error; err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}
	return c.Status(fiber.StatusCreated).JSON(solutions)
}

// DeleteSolutionByID handles DELETE /api/solutions/delete_solution_by_id?id=
func (s *Server) DeleteSolutionByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var solution models.Solution
	if err := s.db.First(&solution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Solution", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.db.Delete(&solution).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(solution)
}

// UpdateSolutionByID handles PUT /api/solutions/update_solution_by_id?id=
func (s *Server) UpdateSolutionByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	req := new(SolutionRequest)
	if err := c.BodyParser(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := req.validate(); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var solution models.Solution
	if err := s.db.First(&solution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Solution", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	solution.Text = req.Text
	solution.Rating = req.Rating

	if err := s.db.Save(&solution).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(solution)
}

// LikeSolution handles GET /api/solutions/like_solution/:id
func (s *Server) LikeSolution(c *fiber.Ctx) error {
	return s.adjustSolutionRating(c, 1, "Solution liked successfully")
}

// DislikeSolution handles GET /api/solutions/dislike_solution/:id. The
// stored rating never drops below zero.
func (s *Server) DislikeSolution(c *fiber.Ctx) error {
	return s.adjustSolutionRating(c, -1, "Solution disliked successfully")
}

func (s *Server) adjustSolutionRating(c *fiber.Ctx, delta int, message string) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("id must be an integer"))
	}

	var solution models.Solution
	if err := s.db.First(&solution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absent rows produce an empty "no content" signal.
			return c.SendStatus(fiber.StatusNoContent)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	solution.Rating += delta
	if solution.Rating < 0 {
		solution.Rating = 0
	}

	if err := s.db.Save(&solution).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"message": message,
	})
}
