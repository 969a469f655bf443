package sandbox

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/naayikhata/khata-go/internal/application/dto"
	"github.com/naayikhata/khata-go/internal/domain/entity"
	"github.com/naayikhata/khata-go/pkg/jwt"
)

// authHandler handles register, login, logout, and identity.
type authHandler struct {
	st         *state
	secret     string
	issuer     string
	expMinutes int
}

func (h *authHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var fields []fieldError
	if !strings.Contains(in.Email, "@") {
		fields = append(fields, fieldError{Loc: loc("body", "email"), Msg: "value is not a valid email address"})
	}
	if len(in.Password) < 8 {
		fields = append(fields, fieldError{Loc: loc("body", "password"), Msg: "String should have at least 8 characters"})
	}
	if strings.TrimSpace(in.ShopName) == "" {
		fields = append(fields, fieldError{Loc: loc("body", "shop_name"), Msg: "Field required"})
	}
	if len(fields) > 0 {
		return validationDetail(c, fields...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return detail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	u := h.st.createAccount(in.Email, hash, strings.TrimSpace(in.ShopName), in.PAN)
	if u == nil {
		return detail(c, fiber.StatusConflict, "Email already registered")
	}
	return h.issue(c, u, fiber.StatusCreated)
}

func (h *authHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	u := h.st.userByEmail(in.Email)
	if u == nil {
		return detail(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)); err != nil {
		return detail(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}
	return h.issue(c, u, fiber.StatusOK)
}

func (h *authHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *authHandler) Me(c *fiber.Ctx) error {
	u := h.st.userByID(currentUserID(c))
	if u == nil {
		return detail(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	sh := h.st.shopByID(u.ShopID)
	return c.JSON(entity.Me{ID: u.ID, Email: u.Email, ShopID: u.ShopID, ShopName: sh.Name})
}

// issue signs a token, sets the session cookie, and answers TokenResponse.
func (h *authHandler) issue(c *fiber.Ctx, u *user, status int) error {
	token, err := jwt.Generate(h.secret, u.ID, u.ShopID, h.issuer, h.expMinutes)
	if err != nil {
		return detail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(h.expMinutes) * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Status(status).JSON(dto.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
