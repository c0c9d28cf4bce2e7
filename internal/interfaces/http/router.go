package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/swaggo/swag"

	"github.com/jhoicas/bazar-api/internal/application/auth"
	"github.com/jhoicas/bazar-api/internal/application/dto"
	"github.com/jhoicas/bazar-api/internal/application/usecase"
	"github.com/jhoicas/bazar-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CatalogUC  *usecase.CatalogUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	UserUC     *usecase.UserUseCase
}

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name     string
	Logger   *logger.Logger
	DocsFile string // swagger.json para la UI en /docs; vacío la desactiva
}

// NewApp crea la aplicación Fiber con middlewares (requestid, log, recover), docs y rutas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(log))
	app.Use(recover.New())

	if cfg.DocsFile != "" {
		// Swagger UI: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.DocsFile,
			Path:     "docs",
			Title:    "Bazar API",
		}))
	}
	// Documento OpenAPI registrado por el paquete docs (swag).
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fiber.ErrNotFound
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/healthcheck", Healthcheck)

	v1 := app.Group("/v1")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := v1.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.AuthUC)
	authGroup.Post("/refresh-token", requireAuth, authHandler.Refresh)

	users := v1.Group("/users", requireAuth)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Put("/me", userHandler.Update)
	users.Delete("/me", userHandler.Delete)

	catalogs := v1.Group("/catalogs", requireAuth)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogs.Get("/", catalogHandler.List)
	catalogs.Post("/", catalogHandler.Create)
	catalogs.Get("/:id", catalogHandler.GetByID)
	catalogs.Put("/:id", catalogHandler.Update)
	catalogs.Delete("/:id", catalogHandler.Delete)

	categories := v1.Group("/categories", requireAuth)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	products := v1.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
}

// Healthcheck godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Router       /healthcheck [get]
func Healthcheck(c *fiber.Ctx) error {
	return c.JSON(dto.StatusResponse{Status: "ok"})
}
