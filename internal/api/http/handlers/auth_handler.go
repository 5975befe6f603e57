package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/micorpx/acquisitions/internal/api/dto"
	"github.com/micorpx/acquisitions/internal/auth"
	"github.com/micorpx/acquisitions/internal/domain"
	"github.com/micorpx/acquisitions/internal/service"
	apperrors "github.com/micorpx/acquisitions/pkg/util"
)

// AuthHandler exposes sign-up, sign-in, and sign-out endpoints.
type AuthHandler struct {
	users   *service.UserService
	cookies *auth.SessionCookies
}

// NewAuthHandler constructs handler.
func NewAuthHandler(userService *service.UserService, cookies *auth.SessionCookies) *AuthHandler {
	return &AuthHandler{users: userService, cookies: cookies}
}

// SignUp handles POST /api/auth/sign-up.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation failed", []string{"request body must be valid JSON"})
	}
	if issues := req.Validate(); len(issues) > 0 {
		return apperrors.NewValidationError("Validation failed", issues)
	}

	user, token, err := h.users.CreateUser(c.Context(), req.Name, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	h.cookies.Set(c, token)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    userSummary(user),
	})
}

// SignIn handles POST /api/auth/sign-in.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation failed", []string{"request body must be valid JSON"})
	}
	if issues := req.Validate(); len(issues) > 0 {
		return apperrors.NewValidationError("Validation failed", issues)
	}

	user, token, err := h.users.AuthenticateUser(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Set(c, token)
	return c.JSON(fiber.Map{
		"message": "User signed in successfully",
		"user":    userSummary(user),
	})
}

// SignOut handles POST /api/auth/sign-out.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	h.cookies.Clear(c)
	return c.JSON(fiber.Map{
		"message": "User signed out successfully",
	})
}

// userSummary is the identity-bearing success shape: never password or
// token material.
func userSummary(user *domain.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}
