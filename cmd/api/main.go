package main

import (
	"context"
	"log"
	"os"

	_ "fraisreels/api/swagger" // swagger docs
	"fraisreels/internal/database"
	"fraisreels/internal/deduction"
	"fraisreels/internal/handler"
	"fraisreels/internal/repository"
	"fraisreels/internal/service"
	"fraisreels/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Frais Réels API
// @version         1.0
// @description     Tracks real professional expenses (frais réels) for French income tax and computes the annual deduction per declarant.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "fraisreels"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	if err := database.SeedScale(context.Background(), db); err != nil {
		log.Fatalf("Failed to seed mileage scale: %v", err)
	}

	mealCap := loadMealCap()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	householdRepo := repository.NewHouseholdRepository(db)
	personRepo := repository.NewPersonRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	mileageRepo := repository.NewMileageRepository(db)
	mealRepo := repository.NewMealRepository(db)
	otherRepo := repository.NewOtherExpenseRepository(db)
	scaleRepo := repository.NewScaleRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)

	userService := service.NewUserService(userRepo)
	auditService := service.NewAuditService(auditRepo)
	householdService := service.NewHouseholdService(householdRepo, auditRepo, txManager)
	personService := service.NewPersonService(personRepo, householdRepo, auditRepo, txManager)
	vehicleService := service.NewVehicleService(vehicleRepo, personRepo, auditRepo, txManager)
	mileageService := service.NewMileageService(mileageRepo, personRepo, vehicleRepo, auditRepo, txManager, wsHub)
	mealService := service.NewMealService(mealRepo, personRepo, auditRepo, txManager, wsHub)
	otherService := service.NewOtherExpenseService(otherRepo, personRepo, auditRepo, txManager, wsHub)
	scaleService := service.NewScaleService(scaleRepo, auditRepo, txManager, wsHub)
	summaryService := service.NewSummaryService(personRepo, vehicleRepo, mileageRepo, mealRepo, otherRepo, scaleService, txManager, mealCap)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditService)
	householdHandler := handler.NewHouseholdHandler(householdService)
	personHandler := handler.NewPersonHandler(personService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	mileageHandler := handler.NewMileageHandler(mileageService)
	mealHandler := handler.NewMealHandler(mealService)
	otherHandler := handler.NewOtherExpenseHandler(otherService)
	scaleHandler := handler.NewScaleHandler(scaleService)
	summaryHandler := handler.NewSummaryHandler(summaryService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for live dashboard refreshes
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// Register API Routes
	api := router.Group("/api")
	userHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)
	householdHandler.RegisterRoutes(api)
	personHandler.RegisterRoutes(api)
	vehicleHandler.RegisterRoutes(api)
	mileageHandler.RegisterRoutes(api)
	mealHandler.RegisterRoutes(api)
	otherHandler.RegisterRoutes(api)
	scaleHandler.RegisterRoutes(api)
	summaryHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// loadMealCap reads the per-meal floor and ceiling from the environment,
// keeping the published figures when unset or malformed.
func loadMealCap() deduction.MealCap {
	cap := deduction.DefaultMealCap()
	if raw := os.Getenv("MEAL_DAILY_FLOOR"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			cap.DailyFloor = v
		} else {
			log.Printf("Ignoring invalid MEAL_DAILY_FLOOR %q: %v", raw, err)
		}
	}
	if raw := os.Getenv("MEAL_DAILY_CEILING"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			cap.DailyCeiling = v
		} else {
			log.Printf("Ignoring invalid MEAL_DAILY_CEILING %q: %v", raw, err)
		}
	}
	return cap
}
