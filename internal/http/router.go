package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Djberg2/GrndWrkv0/internal/config"
	"github.com/Djberg2/GrndWrkv0/internal/http/handlers"
	"github.com/Djberg2/GrndWrkv0/internal/http/middleware"

	_ "github.com/Djberg2/GrndWrkv0/docs"
)

func Router(cfg config.Config, h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(h.Logger, h.Metrics))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.AdminKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins()
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	r.GET("/photos/:key", h.Photo)

	api := r.Group("/api")

	public := api.Group("")
	public.Use(middleware.NewRateLimiter(cfg.PublicRateLimitPerMin, cfg.PublicRateBurst).Middleware())
	{
		public.POST("/schedule-appointment", h.ScheduleAppointment)
		public.POST("/submit-quote", h.SubmitQuote)
		public.POST("/upload-quote-photo", h.UploadQuotePhoto)
		public.POST("/estimate", h.Estimate)
		public.GET("/availability", h.Availability)
		public.GET("/services", h.Services)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/update-lead-status", h.UpdateLeadStatus)
		admin.POST("/status-update", h.UpdateLeadStatus)
		admin.POST("/update-lead-notes", h.UpdateLeadNotes)

		admin.GET("/leads", h.LeadsList)
		admin.GET("/leads/export", h.LeadsExport)
		admin.GET("/leads/inbox", h.LeadsInbox)
		admin.GET("/leads/:id", h.LeadGet)
		admin.POST("/leads/:id/status", h.LeadSetStatus)
		admin.POST("/leads/:id/assignment", h.LeadSetAssignment)
		admin.POST("/leads/:id/notes", h.LeadSetNotes)
		admin.GET("/leads/:id/service-area", h.LeadServiceArea)
		admin.GET("/calendar", h.Calendar)
		admin.GET("/estimators", h.Estimators)
		admin.GET("/analytics", h.Analytics)

		admin.GET("/settings/pricing", h.GetPricing)
		admin.PUT("/settings/pricing", h.PutPricing)
		admin.GET("/settings/business", h.GetBusiness)
		admin.PUT("/settings/business", h.PutBusiness)
		admin.GET("/settings/availability", h.GetAvailability)
		admin.PUT("/settings/availability", h.PutAvailability)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
