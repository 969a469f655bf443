package sandbox

import "github.com/gofiber/fiber/v2"

// fieldError mirrors one entry of a FastAPI validation detail array.
type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// detail answers the FastAPI error shape {"detail": "<message>"}.
func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// validationDetail answers 422 with {"detail": [{loc, msg}, ...]}.
func validationDetail(c *fiber.Ctx, fields ...fieldError) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"detail": fields})
}

// loc builds a FastAPI-style location path, e.g. loc("body", "items", 0).
func loc(parts ...any) []any { return parts }
