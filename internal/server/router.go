// Package server assembles the HTTP surface of the API: the gin router with
// its middleware chain, the CORS wrapper and the http.Server lifecycle.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"moneyhub/internal/auth"
	_ "moneyhub/internal/docs" // registers the swagger spec
	"moneyhub/internal/handlers"
	"moneyhub/internal/middleware"
	"moneyhub/internal/services"
)

// Deps holds everything the router needs to serve requests.
type Deps struct {
	Users        services.UserServicer
	Goals        services.GoalServicer
	Transactions services.TransactionServicer
	Dashboard    services.DashboardServicer
	Audit        services.AuditServicer
	Tokens       *auth.TokenIssuer
}

// NewDeps wires the gorm-backed services around a single database handle.
// A nil clock means time.Now.
func NewDeps(db *gorm.DB, tokens *auth.TokenIssuer, now func() time.Time) Deps {
	goals := services.NewGoalService(db)
	return Deps{
		Users:        services.NewUserService(db),
		Goals:        goals,
		Transactions: services.NewTransactionService(db, goals),
		Dashboard:    services.NewDashboardService(db, now),
		Audit:        services.NewAuditService(db),
		Tokens:       tokens,
	}
}

// NewRouter builds the gin engine with every route mounted under /api.
func NewRouter(d Deps) *gin.Engine {
	authHandler := handlers.NewAuthHandler(d.Users, d.Tokens, d.Audit)
	transactionHandler := handlers.NewTransactionHandler(d.Transactions, d.Audit)
	goalHandler := handlers.NewGoalHandler(d.Goals, d.Transactions, d.Audit)
	dashboardHandler := handlers.NewDashboardHandler(d.Dashboard)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/health", handlers.HealthCheck)

	// Public routes
	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(d.Tokens, d.Users))

	protected.GET("/auth/me", authHandler.GetMe)
	protected.DELETE("/auth/me", authHandler.DeleteMe)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetUserGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.GET("/:id/transactions", goalHandler.GetGoalTransactions)

	protected.GET("/dashboard", dashboardHandler.GetDashboard)
	protected.GET("/summary", dashboardHandler.GetSummary)
	protected.GET("/summary/categories", dashboardHandler.GetCategorySummary)

	return router
}

// WithCORS wraps h so browsers on the allowed origins can call the API.
func WithCORS(h http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})(h)
}
