// Package router assembles the Echo instances for the three services. Each
// router wires repositories, services and handlers and installs the shared
// middleware stack: recovery, request ids, request logging, Prometheus HTTP
// metrics and the single error translation point.
package router

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/labworks/clinical-labs-api/internal/api"
	"github.com/labworks/clinical-labs-api/internal/api/handler"
	"github.com/labworks/clinical-labs-api/internal/api/middleware"
	"github.com/labworks/clinical-labs-api/internal/auth"
	"github.com/labworks/clinical-labs-api/internal/core/domain"
	"github.com/labworks/clinical-labs-api/internal/core/service"
	mongodb "github.com/labworks/clinical-labs-api/internal/infrastructure/db/mongo"
	redisdb "github.com/labworks/clinical-labs-api/internal/infrastructure/db/redis"
)

func newEcho(serviceName string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware(serviceName))
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// NewUsersRouter builds the users service: registration, login, user
// management and the authentication gate.
func NewUsersRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := newEcho("users", log)

	codec := auth.NewCodec(jwtSecret, 24*time.Hour)
	userRepo := mongodb.NewUserRepository(db)
	recovery := redisdb.NewRecoveryTokenStore(rdb)
	userService := service.NewUserService(userRepo, codec, recovery, log)
	userHandler := handler.NewUserHandler(userService)

	// The gate is best-effort: it attaches identity when a valid bearer token
	// is present and otherwise lets the request through unauthenticated.
	e.Use(middleware.Authenticate(codec, userRepo, log))

	g := e.Group("/api/usuarios")

	// Public surface.
	g.POST("/registro", userHandler.Register)
	g.POST("/login", userHandler.Login)
	g.POST("/recuperar-password", userHandler.RecoverPassword)
	g.POST("/restablecer-password", userHandler.ResetPassword)
	g.GET("/health", handler.NewHealthHandler("users").Status)

	// Authenticated surface.
	authed := g.Group("", middleware.RequireAuth())
	authed.GET("", userHandler.List)
	authed.GET("/buscar", userHandler.Search)
	authed.GET("/rol/:rol", userHandler.ListByRole)
	authed.GET("/:id", userHandler.GetByID)
	authed.PUT("/:id", userHandler.Update)
	authed.PUT("/:id/cambiar-password", userHandler.ChangePassword)
	authed.DELETE("/:id", userHandler.SoftDelete)

	// Admin-only surface.
	admin := g.Group("", middleware.RequireRoles(domain.RoleAdmin))
	admin.PATCH("/:id/activar", userHandler.Activate)
	admin.PATCH("/:id/desactivar", userHandler.Deactivate)
	admin.DELETE("/:id/permanente", userHandler.Purge)

	registerHealthProbes(e, db, rdb)
	return e
}

// NewLabsRouter builds the laboratories service: laboratories, the
// analysis-type catalogue, assignments and appointments. Token validation is
// delegated to an upstream gateway, matching the users-service-only gate.
func NewLabsRouter(db *mongo.Database, log zerolog.Logger) *echo.Echo {
	e := newEcho("laboratories", log)

	labRepo := mongodb.NewLaboratoryRepository(db)
	typeRepo := mongodb.NewAnalysisTypeRepository(db)
	assignmentRepo := mongodb.NewAssignmentRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)

	labHandler := handler.NewLaboratoryHandler(service.NewLaboratoryService(labRepo, typeRepo, assignmentRepo, log))
	typeHandler := handler.NewAnalysisTypeHandler(service.NewAnalysisTypeService(typeRepo, log))
	appointmentHandler := handler.NewAppointmentHandler(service.NewAppointmentService(appointmentRepo, labRepo, typeRepo, log))

	labs := e.Group("/api/laboratorios")
	labs.POST("", labHandler.Create)
	labs.GET("", labHandler.List)
	labs.GET("/activos", labHandler.ListActive)
	labs.GET("/especialidad/:especialidad", labHandler.ListBySpecialty)
	labs.GET("/buscar", labHandler.Search)
	labs.GET("/health", handler.NewHealthHandler("laboratories").Status)
	labs.GET("/:id", labHandler.GetByID)
	labs.PUT("/:id", labHandler.Update)
	labs.DELETE("/:id", labHandler.SoftDelete)
	labs.POST("/:id/analisis", labHandler.AssignAnalysis)
	labs.GET("/:id/analisis", labHandler.ListAssignments)

	types := e.Group("/api/tipos-analisis")
	types.POST("", typeHandler.Create)
	types.GET("", typeHandler.List)
	types.GET("/activos", typeHandler.ListActive)
	types.GET("/buscar", typeHandler.Search)
	types.GET("/:id", typeHandler.GetByID)
	types.PUT("/:id", typeHandler.Update)
	types.DELETE("/:id", typeHandler.SoftDelete)

	citas := e.Group("/api/citas")
	citas.POST("", appointmentHandler.Create)
	citas.GET("", appointmentHandler.List)
	citas.GET("/paciente/:id", appointmentHandler.ListByPatient)
	citas.GET("/laboratorio/:id", appointmentHandler.ListByLab)
	citas.GET("/laboratorio/:id/proximas", appointmentHandler.ListUpcomingByLab)
	citas.GET("/estado/:estado", appointmentHandler.ListByStatus)
	citas.GET("/:id", appointmentHandler.GetByID)
	citas.PUT("/:id", appointmentHandler.Update)
	citas.PUT("/:id/estado", appointmentHandler.ChangeStatus)
	citas.DELETE("/:id", appointmentHandler.Delete)

	registerHealthProbes(e, db, nil)
	return e
}

// NewResultsRouter builds the results service.
func NewResultsRouter(db *mongo.Database, log zerolog.Logger) *echo.Echo {
	e := newEcho("results", log)

	resultRepo := mongodb.NewResultRepository(db)
	resultHandler := handler.NewResultHandler(service.NewResultService(resultRepo, log))

	g := e.Group("/api/resultados")
	g.POST("", resultHandler.Create)
	g.GET("", resultHandler.List)
	g.GET("/cita/:id", resultHandler.GetByAppointment)
	g.GET("/laboratorista/:id", resultHandler.ListByTechnician)
	g.GET("/estado/:estado", resultHandler.ListByStatus)
	g.GET("/health", handler.NewHealthHandler("results").Status)
	g.GET("/:id", resultHandler.GetByID)
	g.PUT("/:id", resultHandler.Update)
	g.PATCH("/:id/estado", resultHandler.ChangeStatus)
	g.DELETE("/:id", resultHandler.Delete)

	registerHealthProbes(e, db, nil)
	return e
}

func registerHealthProbes(e *echo.Echo, db *mongo.Database, rdb *redis.Client) {
	health := handler.NewHealthHandler("")
	ready := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", health.Liveness)       // liveness  - is the process alive?
	e.GET("/health/ready", ready.Readiness) // readiness - are dependencies up?
}
