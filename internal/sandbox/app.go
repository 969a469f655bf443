package sandbox

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Options configures the sandbox app.
type Options struct {
	AppName       string
	JWTSecret     string
	JWTIssuer     string
	JWTExpMinutes int
}

// New builds the sandbox Fiber app with a fresh empty dataset. The returned
// app is ready to Listen or to drive through app.Test.
func New(opts Options) *fiber.App {
	if opts.AppName == "" {
		opts.AppName = "khata-sandbox"
	}
	if opts.JWTExpMinutes <= 0 {
		opts.JWTExpMinutes = 12 * 60
	}

	st := newState()

	authH := &authHandler{
		st:         st,
		secret:     opts.JWTSecret,
		issuer:     opts.JWTIssuer,
		expMinutes: opts.JWTExpMinutes,
	}
	servicesH := &servicesHandler{st: st}
	customersH := &customersHandler{st: st}
	invoicesH := &invoicesHandler{st: st}
	reportsH := &reportsHandler{st: st}

	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.AppName})
	})

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authH.Register)
	authGroup.Post("/login", authH.Login)
	authGroup.Post("/logout", authH.Logout)

	protected := api.Group("/", authMiddleware(opts.JWTSecret))

	protected.Get("/users/me", authH.Me)

	services := protected.Group("/services")
	services.Get("/", servicesH.List)
	services.Post("/", servicesH.Create)
	services.Patch("/:id", servicesH.Update)

	customers := protected.Group("/customers")
	customers.Get("/", customersH.List)
	customers.Post("/", customersH.Create)
	customers.Get("/:id", customersH.GetByID)
	customers.Patch("/:id", customersH.Update)

	invoices := protected.Group("/invoices")
	invoices.Post("/", invoicesH.Create)
	invoices.Get("/", invoicesH.List)
	invoices.Get("/:id", invoicesH.GetByID)

	reports := protected.Group("/reports")
	reports.Get("/customers", reportsH.Customers)
	reports.Get("/services", reportsH.Services)

	return app
}
