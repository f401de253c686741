package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/crewline/crewline/config"
	"github.com/crewline/crewline/internal/api/middleware"
	"github.com/crewline/crewline/internal/db"
	"github.com/crewline/crewline/internal/db/repos"
	"github.com/crewline/crewline/internal/logger"
	"github.com/crewline/crewline/internal/services"
	"github.com/crewline/crewline/pkg/api/v1/handlers"
	"github.com/crewline/crewline/pkg/api/v1/routes"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	logger.Initialize()

	database, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", db.DefaultHost),
		User:     config.GetEnv("DB_USER", db.DefaultUser),
		Password: config.GetEnv("DB_PASSWORD", db.DefaultPassword),
		DBName:   config.GetEnv("DB_NAME", db.DefaultDBName),
		Port:     config.GetEnvInt("DB_PORT", db.DefaultPort),
	})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	projectRepo := repos.NewProjectRepository(database)
	taskRepo := repos.NewTaskRepository(database)
	userRepo := repos.NewUserRepository(database)
	leaveRepo := repos.NewLeaveRepository(database)

	projectService := services.NewProjectService(projectRepo, taskRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	userService := services.NewUserService(userRepo)
	leaveService := services.NewLeaveService(leaveRepo)
	dashboardService := services.NewDashboardService(projectRepo, taskRepo, userRepo)

	api := handlers.NewAPIHandler(projectService, taskService, userService, leaveService, dashboardService)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Use(middleware.Logger())

	routes.RegisterRoutes(app, api)

	port := config.GetEnv("PORT", routes.DefaultPort)
	logger.Infof("Starting server on port %s", port)
	logger.Fatal(app.Listen(":" + port))
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
