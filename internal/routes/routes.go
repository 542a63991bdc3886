package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"staffing-backend/internal/config"
	"staffing-backend/internal/handlers"
	"staffing-backend/internal/middleware"
	"staffing-backend/internal/timeclock"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "staffing-backend"})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine := timeclock.NewEngine(cfg.ReportLocation())
	service := timeclock.NewService(timeclock.NewGormStore(db), engine)

	authHandler := handlers.NewAuthHandler(db, cfg)
	staffHandler := handlers.NewStaffHandler(db)
	positionHandler := handlers.NewPositionHandler(db)
	eventHandler := handlers.NewEventHandler(db)
	shiftHandler := handlers.NewShiftHandler(db)
	applicantHandler := handlers.NewApplicantHandler(db)
	timeclockHandler := handlers.NewTimeclockHandler(db, service, engine)
	dashboardHandler := handlers.NewDashboardHandler(db)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)
		api.POST("/applicants", applicantHandler.Create)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		protected.GET("/me", authHandler.Me)
		protected.PUT("/me/password", authHandler.ChangePassword)
		protected.GET("/dashboard", middleware.RequireAnyRole("admin", "manager"), dashboardHandler.Get)

		protected.GET("/staff", staffHandler.List)
		protected.POST("/staff", middleware.RequireAnyRole("admin", "manager"), staffHandler.Create)
		protected.PUT("/staff/:id", middleware.RequireAnyRole("admin", "manager"), staffHandler.Update)
		protected.DELETE("/staff/:id", middleware.RequireAnyRole("admin"), staffHandler.Delete)
		protected.POST("/staff/:id/user", middleware.RequireAnyRole("admin", "manager"), staffHandler.CreateUser)

		protected.GET("/positions", positionHandler.List)
		protected.POST("/positions", middleware.RequireAnyRole("admin", "manager"), positionHandler.Create)
		protected.PUT("/positions/:id", middleware.RequireAnyRole("admin", "manager"), positionHandler.Update)
		protected.DELETE("/positions/:id", middleware.RequireAnyRole("admin"), positionHandler.Delete)

		protected.GET("/events", eventHandler.List)
		protected.POST("/events", middleware.RequireAnyRole("admin", "manager"), eventHandler.Create)
		protected.PUT("/events/:id", middleware.RequireAnyRole("admin", "manager"), eventHandler.Update)
		protected.DELETE("/events/:id", middleware.RequireAnyRole("admin"), eventHandler.Delete)

		protected.GET("/shifts", middleware.RequireAnyRole("admin", "manager", "staff"), shiftHandler.List)
		protected.POST("/shifts", middleware.RequireAnyRole("admin", "manager"), shiftHandler.Create)
		protected.PATCH("/shifts/:id/status", middleware.RequireAnyRole("admin", "manager", "staff"), shiftHandler.UpdateStatus)
		protected.DELETE("/shifts/:id", middleware.RequireAnyRole("admin", "manager"), shiftHandler.Delete)

		protected.GET("/applicants", middleware.RequireAnyRole("admin", "manager"), applicantHandler.List)
		protected.PATCH("/applicants/:id/status", middleware.RequireAnyRole("admin", "manager"), applicantHandler.UpdateStatus)
		protected.DELETE("/applicants/:id", middleware.RequireAnyRole("admin"), applicantHandler.Delete)

		protected.GET("/timeclock", middleware.RequireAnyRole("admin", "manager"), timeclockHandler.List)
		protected.POST("/timeclock/clock-in", middleware.RequireAnyRole("admin", "manager", "staff"), timeclockHandler.ClockIn)
		protected.POST("/timeclock/clock-out", middleware.RequireAnyRole("admin", "manager", "staff"), timeclockHandler.ClockOut)
		protected.GET("/timeclock/my", middleware.RequireAnyRole("admin", "manager", "staff"), timeclockHandler.My)
		protected.GET("/timeclock/report", middleware.RequireAnyRole("admin", "manager", "staff"), timeclockHandler.Report)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
