package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   *int   `json:"age"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes binds the user routes. Validators run ahead of the handler
// so malformed bodies and ids never reach the store.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/user", ValidateCreateUser, h.createUser)
	app.Get("/api/user", h.getUsers)
	app.Get("/api/user/:id", ValidateID, h.getUser)
	app.Put("/api/user/:id", ValidateID, ValidateUpdateUser, h.updateUser)
	app.Delete("/api/user/:id", ValidateID, h.deleteUser)
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	payload := new(createUserRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if _, err := h.service.Create(User{
		Name:  payload.Name,
		Email: payload.Email,
		Age:   payload.Age,
	}); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully"})
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(users)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	user, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(user)
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	patch := new(Patch)
	if err := c.BodyParser(patch); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(c.Params("id"), *patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "User updated successfully",
		"updatedUser": updated,
	})
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	if _, err := h.service.Delete(c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
