package handler

import (
	"log/slog"
	"net/http"

	"school-reservations/internal/domain/user"
	"school-reservations/internal/handler/api"
	"school-reservations/internal/handler/middleware"
	"school-reservations/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth         *api.AuthHandler
	Reservation  *api.ReservationHandler
	Availability *api.AvailabilityHandler
	Equipment    *api.EquipmentHandler
	Teacher      *api.TeacherHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware, rdb *redis.Client) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware, middleware.RateLimit(rdb, cfg.RateLimit))
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(logger, "/health"))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, rateLimit gin.HandlerFunc) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.List},
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create, Mw: []gin.HandlerFunc{rateLimit}},
				{Method: http.MethodGet, Path: "/series", Handler: h.Reservation.ListGrouped},
				{Method: http.MethodPost, Path: "/series", Handler: h.Reservation.CreateSeries, Mw: []gin.HandlerFunc{rateLimit}},
				{Method: http.MethodDelete, Path: "/series/:seriesId", Handler: h.Reservation.CancelSeries, Mw: []gin.HandlerFunc{rateLimit}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Reservation.Update, Mw: []gin.HandlerFunc{rateLimit}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Reservation.ChangeStatus, Mw: []gin.HandlerFunc{rateLimit}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservation.Delete, Mw: []gin.HandlerFunc{rateLimit}},
			})
		}

		availability := apiGroup.Group("/availability")
		availability.Use(authMiddleware.RequireAuth())
		{
			addRoutes(availability, []route{
				{Method: http.MethodGet, Path: "/occupied", Handler: h.Availability.Occupied},
				{Method: http.MethodGet, Path: "/free", Handler: h.Availability.Free},
				{Method: http.MethodPost, Path: "/check", Handler: h.Availability.Check},
				{Method: http.MethodPost, Path: "/series-preview", Handler: h.Availability.PreviewSeries},
			})
		}

		schedule := apiGroup.Group("/schedule")
		schedule.Use(authMiddleware.RequireAuth())
		{
			addRoutes(schedule, []route{
				{Method: http.MethodGet, Path: "/modules", Handler: h.Availability.Schedule},
			})
		}

		equipment := apiGroup.Group("/equipment")
		equipment.Use(authMiddleware.RequireAuth())
		{
			addRoutes(equipment, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Equipment.List},
				{Method: http.MethodPost, Path: "", Handler: h.Equipment.Create, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Equipment.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Equipment.Update, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Equipment.Delete, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodGet, Path: "/:id/stats", Handler: h.Equipment.Stats},
			})
		}

		teachers := apiGroup.Group("/teachers")
		teachers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(teachers, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Teacher.List},
				{Method: http.MethodPost, Path: "", Handler: h.Teacher.Create, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Teacher.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Teacher.Update, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Teacher.Delete, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
