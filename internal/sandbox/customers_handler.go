package sandbox

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
)

// customersHandler manages the shop's customer book. The list endpoint
// serves the paginated envelope; clients that predate it still accept the
// bare-array dialect the older backend spoke.
type customersHandler struct {
	st *state
}

func (h *customersHandler) List(c *fiber.Ctx) error {
	items := h.st.listCustomers(currentShopID(c), c.Query("query"))
	return c.JSON(dto.ListEnvelope[entity.Customer]{
		Items:   items,
		Page:    1,
		Limit:   len(items),
		Total:   len(items),
		HasMore: false,
	})
}

func (h *customersHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(in.Name) == "" {
		return validationDetail(c, fieldError{Loc: loc("body", "name"), Msg: "Field required"})
	}
	cust, ok := h.st.createCustomer(currentShopID(c), strings.TrimSpace(in.Name), strings.TrimSpace(in.Phone), in.Notes)
	if !ok {
		return detail(c, fiber.StatusConflict, "Phone number already registered")
	}
	return c.Status(fiber.StatusCreated).JSON(cust)
}

func (h *customersHandler) GetByID(c *fiber.Ctx) error {
	cust, ok := h.st.customerByID(currentShopID(c), c.Params("id"))
	if !ok {
		return detail(c, fiber.StatusNotFound, "Customer not found")
	}
	return c.JSON(cust)
}

func (h *customersHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	cust, ok := h.st.updateCustomer(currentShopID(c), c.Params("id"), in.Name, in.Phone, in.Notes)
	if !ok {
		return detail(c, fiber.StatusNotFound, "Customer not found")
	}
	return c.JSON(cust)
}
