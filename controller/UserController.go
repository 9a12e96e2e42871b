package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/raobaba/SkillBridge-Pro-sub006/dto"
	"github.com/raobaba/SkillBridge-Pro-sub006/middleware"
	"github.com/raobaba/SkillBridge-Pro-sub006/repository"
)

// UserController provides handlers behind the trust and role gates.
type UserController struct {
	userRepo repository.UserRepository
}

func NewUserController(u repository.UserRepository) *UserController {
	return &UserController{userRepo: u}
}

// Me echoes the authenticated identity attached by the trust gate.
func (uc *UserController) Me(c *fiber.Ctx) error {
	user, ok := c.Locals(middleware.UserKey).(*dto.AuthUser)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required."})
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// ListUsers returns the registered users. Admin only.
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list users"})
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, fiber.Map{
			"id":    u.ID.String(),
			"name":  u.Name,
			"email": u.Email,
			"roles": u.RoleCodes(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": out})
}

// DeleteUser removes a user account. Owner or admin.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	if err := uc.userRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete user"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
