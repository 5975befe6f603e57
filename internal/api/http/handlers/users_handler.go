package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/micorpx/acquisitions/internal/api/dto"
	"github.com/micorpx/acquisitions/internal/auth"
	"github.com/micorpx/acquisitions/internal/domain"
	"github.com/micorpx/acquisitions/internal/service"
	apperrors "github.com/micorpx/acquisitions/pkg/util"
)

// UsersHandler exposes user CRUD endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /api/users. Route middleware restricts it to admins.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.GetAllUsers(c.Context())
	if err != nil {
		return err
	}

	items := make([]domain.PublicUser, 0, len(users))
	for _, user := range users {
		items = append(items, user.Public())
	}

	return c.JSON(fiber.Map{
		"message": "Successfully retrieved all users",
		"users":   items,
		"count":   len(items),
	})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, issues := dto.ParseUserID(c.Params("id"))
	if len(issues) > 0 {
		return apperrors.NewValidationError("Validation failed", issues)
	}

	caller, _ := auth.IdentityFromContext(c)
	if err := auth.AuthorizeUserAccess(caller, id); err != nil {
		return err
	}

	user, err := h.users.GetUserByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"user": user.Public()})
}

// Update handles PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, issues := dto.ParseUserID(c.Params("id"))
	if len(issues) > 0 {
		return apperrors.NewValidationError("Validation failed", issues)
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation failed", []string{"request body must be valid JSON"})
	}
	if issues := req.Validate(); len(issues) > 0 {
		return apperrors.NewValidationError("Validation failed", issues)
	}

	caller, _ := auth.IdentityFromContext(c)
	if err := auth.AuthorizeUserUpdate(caller, id, req.Role != nil); err != nil {
		return err
	}

	update := service.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.users.UpdateUser(c.Context(), id, update)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user.Public(),
	})
}

// Delete handles DELETE /api/users/:id. Route middleware restricts it to
// admins.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, issues := dto.ParseUserID(c.Params("id"))
	if len(issues) > 0 {
		return apperrors.NewValidationError("Validation failed", issues)
	}

	if err := h.users.DeleteUser(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
