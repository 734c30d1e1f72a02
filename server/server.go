// Package server contains the HTTP handlers for the PRODEA API.
package server

import (
	"fmt"
	"strings"
	"time"

	"prodea/config"
	"prodea/middleware"
	"prodea/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Access tokens expire 30 minutes after issue.
const accessTokenTTL = 30 * time.Minute

// Server holds all dependencies and provides handlers
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
}

// New creates a server instance with its dependencies.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Server {
	return &Server{
		config: cfg,
		db:     db,
		redis:  rdb,
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Structured logging middleware
	app.Use(middleware.StructuredLogger())

	// The two local frontend dev servers are the only allowed origins.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,HEAD,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	users := api.Group("/users")
	users.Get("/", s.Welcome)
	users.Get("/get_users", s.GetUsers)
	users.Get("/get_user_by_id", s.GetUserByID)
	users.Post("/create_user", s.AuthRequired(), s.CreateUser)
	users.Post("/create_multiple_users", s.AuthRequired(), s.CreateMultipleUsers)
	users.Delete("/delete_user_by_id", s.AuthRequired(), s.DeleteUserByID)
	users.Put("/update_user_by_id", s.AuthRequired(), s.UpdateUserByID)

	posts := api.Group("/posts")
	posts.Get("/get_posts", s.GetPosts)
	posts.Get("/get_post_by_id", s.GetPostByID)
	posts.Post("/create_multiple_posts", s.AuthRequired(), s.CreateMultiplePosts)
	posts.Delete("/delete_post_by_id", s.AuthRequired(), s.DeletePostByID)
	posts.Put("/update_post_by_id", s.AuthRequired(), s.UpdatePostByID)
	posts.Get("/like_post/:id", s.LikePost)
	posts.Get("/dislike_post/:id", s.DislikePost)

	solutions := api.Group("/solutions")
	solutions.Get("/get_solutions", s.GetSolutions)
	solutions.Get("/get_solution_by_id", s.GetSolutionByID)
	solutions.Post("/create_multiple_solutions", s.AuthRequired(), s.CreateMultipleSolutions)
	solutions.Delete("/delete_solution_by_id", s.AuthRequired(), s.DeleteSolutionByID)
	solutions.Put("/update_solution_by_id", s.AuthRequired(), s.UpdateSolutionByID)
	solutions.Get("/like_solution/:id", s.LikeSolution)
	solutions.Get("/dislike_solution/:id", s.DislikeSolution)

	comments := api.Group("/comments")
	comments.Get("/get_comments", s.GetComments)
	comments.Get("/get_comment_by_id", s.GetCommentByID)
	comments.Post("/create_multiple_comments", s.AuthRequired(), s.CreateMultipleComments)
	comments.Delete("/delete_comment_by_id", s.AuthRequired(), s.DeleteCommentByID)
	comments.Put("/update_comment_by_id", s.AuthRequired(), s.UpdateCommentByID)
	comments.Get("/like_comment/:id", s.LikeComment)
	comments.Get("/dislike_comment/:id", s.DislikeComment)

	auth := api.Group("/auth")
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
}

// Welcome handles GET /api/users/
func (s *Server) Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Hello Welcome to the PRODEA Project!",
	})
}

// generateToken creates a signed access token for the given user ID.
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.SecretKey == "" {
		return "", fmt.Errorf("token signing secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(accessTokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SecretKey))
}

// AuthRequired returns middleware that verifies the bearer token and stores
// the authenticated user ID in c.Locals("userID"). It guards every mutating
// route.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(s.config.SecretKey), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		uid, ok := claims["user_id"].(float64)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		c.Locals("userID", uint(uid))
		return c.Next()
	}
}

// parseIDQuery reads the mandatory ?id= query parameter.
func parseIDQuery(c *fiber.Ctx) (int, error) {
	id := c.QueryInt("id", -1)
	if id < 0 {
		return 0, fmt.Errorf("id query parameter is required")
	}
	return id, nil
}
