package handlers

import (
	"errors"

	"notes/internal/middleware"
	"notes/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the account routes. auth guards the profile route.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/create-account", h.HandleCreateAccount)
	router.Post("/login", h.HandleLogin)
	router.Get("/get-user", auth, h.HandleGetUser)
}

// CreateAccountRequest represents the request body for registration.
type CreateAccountRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var createAccountMessages = map[string]string{
	"fullName": "Full name is required",
	"email":    "Email is required",
	"password": "Password is required",
}

// HandleCreateAccount registers a new user and returns an access token.
func (h *AuthHandler) HandleCreateAccount(c *fiber.Ctx) error {
	var req CreateAccountRequest
	if err := parseBody(c, &req); err != nil {
		zap.L().Debug("error parsing create-account request body", zap.Error(err))
		return invalidBody(c)
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": validationMessage(err, createAccountMessages),
		})
	}

	user, token, err := h.authService.RegisterUser(c.UserContext(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			// Reported with 200 for compatibility with existing clients.
			return c.JSON(fiber.Map{
				"error":   true,
				"message": "User already exists",
			})
		}
		zap.L().Error("error registering user", zap.String("email", req.Email), zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"error":       false,
		"user":        user,
		"accessToken": token,
		"message":     "Registration Successful",
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"email":    "Email is required",
	"password": "Password is required",
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		zap.L().Debug("error parsing login request body", zap.Error(err))
		return invalidBody(c)
	}

	// These two responses carry no error flag, as existing clients expect.
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validationMessage(err, loginMessages),
		})
	}

	_, token, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "User not found",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid Credentials",
		})
	case err != nil:
		zap.L().Error("error during login", zap.String("email", req.Email), zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"error":       false,
		"message":     "Login Successful",
		"email":       req.Email,
		"accessToken": token,
	})
}

// HandleGetUser returns the profile of the authenticated user.
func (h *AuthHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		zap.L().Error("error fetching user profile", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"user":    user.Profile(),
		"message": "",
	})
}
