package server

import (
	"errors"

	"prodea/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserRequest is the input schema for user create and update operations.
type UserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rating   int    `json:"rating"`
}

func (r *UserRequest) validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return errors.New("username, email, and password are required")
	}
	return nil
}

// toModel maps the request to a User with the supplied password already hashed.
func (r *UserRequest) toModel() (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		Username: r.Username,
		Email:    r.Email,
		Password: string(hashed),
		Rating:   r.Rating,
	}, nil
}

// GetUsers handles GET /api/users/get_users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(users)
}

// GetUserByID handles GET /api/users/get_user_by_id?id=
func (s *Server) GetUserByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("User", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(user)
}

// CreateUser handles POST /api/users/create_user
func (s *Server) CreateUser(c *fiber.Ctx) error {
	req := new(UserRequest)
	if err := c.BodyParser(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := req.validate(); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	user, err := req.toModel()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if err := s.db.Create(&user).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// CreateMultipleUsers handles POST /api/users/create_multiple_users. All
// rows are inserted in one transaction.
func (s *Server) CreateMultipleUsers(c *fiber.Ctx) error {
	var reqs []UserRequest
	if err := c.BodyParser(&reqs); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	users := make([]models.User, 0, len(reqs))
	for _, req := range reqs {
		if err := req.validate(); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		user, err := req.toModel()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		users = append(users, user)
	}

	if len(users) > 0 {
		if err := s.db.Create(&users).Error; err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}
	return c.Status(fiber.StatusCreated).JSON(users)
}

// DeleteUserByID handles DELETE /api/users/delete_user_by_id?id=
func (s *Server) DeleteUserByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("User", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(user)
}

// UpdateUserByID handles PUT /api/users/update_user_by_id?id=
func (s *Server) UpdateUserByID(c *fiber.Ctx) error {
	id, err := parseIDQuery(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	req := new(UserRequest)
	if err := c.BodyParser(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := req.validate(); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("User", id))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Password = string(hashed)

	if err := s.db.Save(&user).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(user)
}
