package sandbox

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/naayikhata/khata-go/internal/application/dto"
)

// servicesHandler manages the shop price list.
type servicesHandler struct {
	st *state
}

func (h *servicesHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.st.listServices(currentShopID(c)))
}

func (h *servicesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	var fields []fieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, fieldError{Loc: loc("body", "name"), Msg: "Field required"})
	}
	if in.PricePaise < 0 {
		fields = append(fields, fieldError{Loc: loc("body", "price_paise"), Msg: "Input should be greater than or equal to 0"})
	}
	if len(fields) > 0 {
		return validationDetail(c, fields...)
	}
	svc := h.st.createService(currentShopID(c), strings.TrimSpace(in.Name), in.PricePaise)
	return c.Status(fiber.StatusCreated).JSON(svc)
}

func (h *servicesHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if in.PricePaise != nil && *in.PricePaise < 0 {
		return validationDetail(c, fieldError{Loc: loc("body", "price_paise"), Msg: "Input should be greater than or equal to 0"})
	}
	svc, ok := h.st.updateService(currentShopID(c), c.Params("id"), in.Name, in.PricePaise, in.Active)
	if !ok {
		return detail(c, fiber.StatusNotFound, "Service not found")
	}
	return c.JSON(svc)
}
