package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auxesia/auxesia-server/internal/api/rest/handler"
	"github.com/auxesia/auxesia-server/internal/api/rest/middleware"
	"github.com/auxesia/auxesia-server/internal/logger"
	"github.com/auxesia/auxesia-server/internal/model"
	"github.com/auxesia/auxesia-server/internal/service"
)

// Router wires HTTP routes to handlers and middleware.
type Router struct {
	authService     *service.Auth
	userService     *service.User
	mealService     *service.Meal
	favoriteService *service.Favorite
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	userService *service.User,
	mealService *service.Meal,
	favoriteService *service.Favorite,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		userService:     userService,
		mealService:     mealService,
		favoriteService: favoriteService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// Register builds the fiber application with all routes and middleware.
// Meal reads are public; every mutation requires a bearer token, and the
// admin group additionally requires the superuser flag.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)
	requireSuperuser := middleware.NewRequireSuperuser(r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)
	mealHandler := handler.NewMeal(r.mealService, r.contextManager, r.logger)
	favoriteHandler := handler.NewFavorite(r.favoriteService, r.contextManager, r.logger)

	app.Use(logging.Handle)

	auth := app.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/signin", authHandler.Signin)
	auth.Get("/verifyemail", authHandler.VerifyEmail)

	users := app.Group("/users", authenticate.Handle)
	users.Get("/me", userHandler.Me)
	users.Get("/me/favorites", favoriteHandler.List)

	meals := app.Group("/meals")
	meals.Get("/", mealHandler.List)
	meals.Get("/:id", mealHandler.Get)
	meals.Post("/", authenticate.Handle, mealHandler.Create)
	meals.Patch("/:id", authenticate.Handle, mealHandler.Update)
	meals.Delete("/:id", authenticate.Handle, mealHandler.Delete)
	meals.Put("/:id/image", authenticate.Handle, mealHandler.UpdateImage)
	meals.Post("/:id/favorite", authenticate.Handle, favoriteHandler.Toggle)

	admin := app.Group("/admin", authenticate.Handle, requireSuperuser.Handle)
	admin.Get("/users", userHandler.List)
	admin.Get("/users/:id", userHandler.Get)
	admin.Patch("/users/:id", userHandler.UpdatePrivileges)
	admin.Get("/meals/pending", mealHandler.ListPending)
	admin.Patch("/meals/:id/status", mealHandler.UpdateStatus)

	return app
}
