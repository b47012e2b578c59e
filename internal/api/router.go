package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	apigraphql "github.com/staffdesk/employee-api/internal/api/graphql"
	"github.com/staffdesk/employee-api/internal/api/middleware"
	"github.com/staffdesk/employee-api/internal/core/ports"
	"github.com/staffdesk/employee-api/internal/core/service"
	"github.com/staffdesk/employee-api/internal/infrastructure/http/handlers"
)

// Deps bundles the wired dependencies the router needs.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client // nil disables the throttle readiness entry
	Employees ports.EmployeeService
	Auth      ports.AuthService
	Tokens    *service.TokenIssuer
	Users     ports.UserRepository
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("employee_api"))

	schema := apigraphql.NewSchema(deps.Employees, deps.Auth, deps.Logger)

	// Identity resolution is fail-open: anonymous requests reach the
	// resolvers and are rejected there only where a guard demands a user.
	e.POST("/graphql", schema.Handler, middleware.Identity(deps.Tokens, deps.Users))

	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
