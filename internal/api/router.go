package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/fieldgate/fieldgate/docs"
	"github.com/fieldgate/fieldgate/internal/api/handler"
	"github.com/fieldgate/fieldgate/internal/api/middleware"
	"github.com/fieldgate/fieldgate/internal/auth"
	"github.com/fieldgate/fieldgate/internal/auth/token"
	"github.com/fieldgate/fieldgate/internal/core/ports"
	"github.com/fieldgate/fieldgate/internal/core/service"
	"github.com/fieldgate/fieldgate/internal/graph"
	"github.com/fieldgate/fieldgate/internal/infrastructure/config"
)

const version = "0.1.0"

// NewRouter builds the Echo instance with the full operation surface wired:
// credential issuance routes, the rewritten field schema behind /graph, and
// the operational endpoints. db and rdb may be nil when those backends are
// not configured; they are only used for readiness checks.
func NewRouter(cfg *config.Config, repo ports.PrincipalRepository, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("fieldgate"))

	// --- Auth core ---
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	issuer := service.NewAuthService(repo, codec, cfg.MinPasswordLength, cfg.AdminEmails, log)
	resolver := auth.NewIdentityResolver(codec, repo, log)
	interceptor := auth.NewInterceptor(log)

	e.Use(middleware.Identity(resolver))

	// --- Field schema: declared once, rewritten once, frozen ---
	registry := graph.NewRegistry()
	registry.MustRegister(graph.CoreFields(repo, version)...)
	schema := graph.Build(registry, interceptor)
	log.Info().Strs("fields", registry.FieldNames()).Msg("field registry frozen")

	// --- Routes ---
	authHandler := handler.NewAuthHandler(issuer)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	graphHandler := handler.NewGraphHandler(schema)
	e.POST("/graph", graphHandler.Execute)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
