package main

import (
	"log"
	"os"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/raobaba/SkillBridge-Pro-sub006/controller"
	"github.com/raobaba/SkillBridge-Pro-sub006/middleware"
	"github.com/raobaba/SkillBridge-Pro-sub006/repository"
	"github.com/raobaba/SkillBridge-Pro-sub006/seeder"
	"github.com/raobaba/SkillBridge-Pro-sub006/service"
	"github.com/raobaba/SkillBridge-Pro-sub006/util"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v (using system environment variables)", err)
	}

	// A service with no signing key must not come up at all
	if err := util.InitAuthKeys(); err != nil {
		log.Fatalf("failed to initialize signing keys: %v", err)
	}

	db := util.InitDB()
	seeder.SeedRoles(db)

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	app := fiber.New()
	setupRoutes(app, userRepo, roleRepo)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Fatal(app.Listen(":" + port))
}

func setupRoutes(app *fiber.App, userRepo repository.UserRepository, roleRepo repository.RoleRepository) {
	app.Use(middleware.TimerMetrics)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authService := service.NewAuthService(userRepo, roleRepo)
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userRepo)
	chatController := controller.NewChatController()

	api := app.Group("/api/v1")

	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Post("/refresh", authController.Refresh)

	users := api.Group("/users", middleware.Authenticate)
	users.Get("/me", userController.Me)

	admin := api.Group("/admin", middleware.Authenticate)
	admin.Get("/users", middleware.AdminOnly, userController.ListUsers)
	admin.Delete("/users/:id", middleware.OwnerOrAdmin, userController.DeleteUser)

	// WebSocket chat: the handshake gate runs once, the connection handler
	// reads identity from connection locals afterwards.
	app.Get("/ws/chat", middleware.SocketAuth, websocket.New(chatController.Socket))
}
