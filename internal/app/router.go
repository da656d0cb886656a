package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/schedlume-api/internal/handler"
	"github.com/noah-isme/schedlume-api/internal/middleware"
	"github.com/noah-isme/schedlume-api/pkg/config"
	"github.com/noah-isme/schedlume-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/schedlume-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/schedlume-api/pkg/middleware/requestid"
)

// NewRouter builds the HTTP API over svc.
func NewRouter(cfg *config.Config, svc *Services, logr *zap.Logger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svc.Metrics))
	r.Use(middleware.WithResponseMeta())

	ops := handler.NewMetricsHandler(svc.Metrics, svc.Health)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	schedules := handler.NewScheduleHandler(svc.Import, svc.Export)
	timetable := handler.NewTimetableHandler(svc.Timetable, svc.Export, cfg.Location())
	overrides := handler.NewOverrideHandler(svc.Overrides)
	notes := handler.NewNoteHandler(svc.ClassNotes, svc.GeneralNotes)
	settings := handler.NewSettingsHandler(svc.Settings, svc.Reminders, svc.Backup)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/schedules", schedules.List)
		api.POST("/schedules/import", schedules.Import)
		api.POST("/schedules/validate", schedules.Validate)
		api.GET("/schedules/export.csv", schedules.ExportCSV)
		api.GET("/schedules/template.csv", schedules.Template)
		api.GET("/schedules/export.pdf", schedules.ExportPDF)

		api.GET("/timetable/days/:date", timetable.Day)
		api.GET("/timetable/weeks/:date", timetable.Week)
		api.GET("/timetable/months/:month", timetable.Month)
		api.GET("/timetable/calendar.ics", timetable.Calendar)

		api.GET("/overrides", overrides.List)
		api.POST("/overrides", overrides.Create)
		api.GET("/overrides/:id", overrides.Get)
		api.PUT("/overrides/:id", overrides.Update)
		api.DELETE("/overrides/:id", overrides.Delete)

		api.GET("/notes/:instanceKey", notes.GetClassNote)
		api.PUT("/notes/:instanceKey", notes.SaveClassNote)
		api.DELETE("/notes/:instanceKey", notes.DeleteClassNote)

		api.GET("/general-notes", notes.ListGeneralNotes)
		api.GET("/general-notes/dates", notes.GeneralNoteDates)
		api.POST("/general-notes", notes.CreateGeneralNote)
		api.GET("/general-notes/:id", notes.GetGeneralNote)
		api.PUT("/general-notes/:id", notes.UpdateGeneralNote)
		api.DELETE("/general-notes/:id", notes.DeleteGeneralNote)

		api.GET("/reminders", settings.Reminders)
		api.GET("/settings", settings.Get)
		api.PUT("/settings", settings.Update)
		api.GET("/backup", settings.Backup)
		api.DELETE("/data", settings.ClearData)
	}

	return r
}
