package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/abhijitabd5/sti-academy/internal/cache"
	"github.com/abhijitabd5/sti-academy/internal/config"
	coursedomain "github.com/abhijitabd5/sti-academy/internal/course/domain"
	"github.com/abhijitabd5/sti-academy/internal/document"
	documentdomain "github.com/abhijitabd5/sti-academy/internal/document/domain"
	"github.com/abhijitabd5/sti-academy/internal/enrollment"
	enrollmentdomain "github.com/abhijitabd5/sti-academy/internal/enrollment/domain"
	"github.com/abhijitabd5/sti-academy/internal/observability"
	"github.com/abhijitabd5/sti-academy/internal/providers"
	"github.com/abhijitabd5/sti-academy/internal/providers/pdf"
	"github.com/abhijitabd5/sti-academy/internal/ratelimit"
)

var Module = fx.Module("server",
	cache.Module,
	enrollment.Module,
	document.Module,
	providers.Module,
	ratelimit.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *observability.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log))
	r.Use(httpMetrics.Middleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", httpMetrics.Handler())

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	genID  *snowflake.Node

	gst           *config.GSTConfigHolder
	courseSvc     coursedomain.Service
	enrollmentSvc enrollmentdomain.Service
	documentSvc   documentdomain.Service
	pdfProvider   pdf.Provider
	quoteLimiter  *ratelimit.QuoteLimiter
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	GenID         *snowflake.Node
	GST           *config.GSTConfigHolder
	CourseSvc     coursedomain.Service
	EnrollmentSvc enrollmentdomain.Service
	DocumentSvc   documentdomain.Service
	PDFProvider   pdf.Provider
	QuoteLimiter  *ratelimit.QuoteLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		genID:         p.GenID,
		gst:           p.GST,
		courseSvc:     p.CourseSvc,
		enrollmentSvc: p.EnrollmentSvc,
		documentSvc:   p.DocumentSvc,
		pdfProvider:   p.PDFProvider,
		quoteLimiter:  p.QuoteLimiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Courses --------
	api.GET("/courses", s.ListCourses)
	api.POST("/courses", s.CreateCourse)
	api.GET("/courses/:id", s.GetCourseByID)
	api.PATCH("/courses/:id", s.UpdateCourse)
	api.DELETE("/courses/:id", s.DeactivateCourse)

	// -------- Enrollments --------
	api.POST("/enrollments/quote", s.QuoteRateLimit(), s.QuoteEnrollment)
	api.POST("/enrollments", s.CreateEnrollment)
	api.GET("/enrollments", s.ListEnrollments)
	api.GET("/enrollments/:id", s.GetEnrollmentByID)
	api.GET("/enrollments/:id/receipt", s.GetEnrollmentReceipt)

	// -------- Documents --------
	api.POST("/enrollments/:id/documents", s.UploadEnrollmentDocument)
	api.GET("/enrollments/:id/documents", s.ListEnrollmentDocuments)
	api.GET("/documents/:id", s.DownloadDocument)
}
