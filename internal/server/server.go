package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	admindomain "github.com/passgate/passgate/internal/admin/domain"
	authdomain "github.com/passgate/passgate/internal/auth/domain"
	"github.com/passgate/passgate/internal/auth/session"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/config"
	eventdomain "github.com/passgate/passgate/internal/event/domain"
	"github.com/passgate/passgate/internal/observability"
	"github.com/passgate/passgate/internal/observability/logger"
	"github.com/passgate/passgate/internal/observability/metrics"
	"github.com/passgate/passgate/internal/observability/tracing"
	paymentdomain "github.com/passgate/passgate/internal/payment/domain"
	"github.com/passgate/passgate/internal/payment/webhook"
	"github.com/passgate/passgate/internal/providers/image"
	"github.com/passgate/passgate/internal/providers/paystack"
	"github.com/passgate/passgate/internal/providers/pdf"
	"github.com/passgate/passgate/internal/ratelimit"
	settingsdomain "github.com/passgate/passgate/internal/sitesettings/domain"
	ticketdomain "github.com/passgate/passgate/internal/ticket/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

type EngineParams struct {
	fx.In

	Config  config.Config
	Obs     observability.Config
	Log     *zap.Logger
	Metrics *metrics.HTTPMetrics
}

// NewEngine builds the gin engine with the shared middleware stack and
// the operational endpoints.
func NewEngine(p EngineParams) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		Log:             p.Log.Named("http"),
		Debug:           p.Obs.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	engine.Use(tracing.GinMiddleware())
	engine.Use(metrics.GinMiddleware(p.Metrics))
	engine.Use(ErrorHandlingMiddleware())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}

type ServerParams struct {
	fx.In

	Config   config.Config
	Engine   *gin.Engine
	Log      *zap.Logger
	Clock    clock.Clock
	Sessions *session.Manager

	Auth     authdomain.Service
	Events   eventdomain.Service
	Payments paymentdomain.Service
	Tickets  ticketdomain.Service
	Admins   admindomain.Service
	Settings settingsdomain.Service

	Webhook  *webhook.Processor
	Paystack *paystack.Client
	Images   image.Provider
	PDF      pdf.Provider
	Limiter  *ratelimit.PublicLimiter
}

type Server struct {
	cfg      config.Config
	engine   *gin.Engine
	log      *zap.Logger
	clock    clock.Clock
	sessions *session.Manager

	auth     authdomain.Service
	events   eventdomain.Service
	payments paymentdomain.Service
	tickets  ticketdomain.Service
	admins   admindomain.Service
	settings settingsdomain.Service

	webhook  *webhook.Processor
	paystack *paystack.Client
	images   image.Provider
	pdf      pdf.Provider
	limiter  *ratelimit.PublicLimiter

	loginAttempts *attemptLimiter
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		cfg:           p.Config,
		engine:        p.Engine,
		log:           p.Log.Named("http.server"),
		clock:         p.Clock,
		sessions:      p.Sessions,
		auth:          p.Auth,
		events:        p.Events,
		payments:      p.Payments,
		tickets:       p.Tickets,
		admins:        p.Admins,
		settings:      p.Settings,
		webhook:       p.Webhook,
		paystack:      p.Paystack,
		images:        p.Images,
		pdf:           p.PDF,
		limiter:       p.Limiter,
		loginAttempts: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow, p.Clock),
	}

	s.registerPublicRoutes()
	s.registerAuthRoutes()
	s.registerAdminRoutes()

	return s
}

func (s *Server) registerPublicRoutes() {
	public := s.engine.Group("/api/public")
	public.Use(s.sweepStatuses())
	{
		public.GET("/events", s.listPublicEvents)
		public.GET("/events/featured", s.listFeaturedEvents)
		public.GET("/events/:id", s.getPublicEvent)
		public.GET("/site-settings", s.getSiteSettings)
	}

	payments := s.engine.Group("/api/payments/paystack")
	{
		payments.POST("/initiate", s.publicRateLimit(), s.initiatePayment)
		payments.GET("/verify/:reference", s.publicRateLimit(), s.verifyPayment)
		payments.POST("/webhook", s.handlePaystackWebhook)
	}

	s.engine.GET("/api/tickets/lookup", s.publicRateLimit(), s.lookupTicket)
	s.engine.GET("/api/tickets/render/:code", s.publicRateLimit(), s.renderTicket)
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")
	{
		auth.POST("/login", s.login)
		auth.POST("/logout", s.logout)
		auth.GET("/me", s.AuthRequired(), s.me)
	}
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/api/admin")
	admin.Use(s.AuthRequired(), s.sweepStatuses())

	events := admin.Group("/events")
	{
		events.GET("", s.RequirePermission(permManageEvents, permViewDashboard), s.listEvents)
		events.POST("", s.RequirePermission(permManageEvents), s.createEvent)
		events.GET("/:id", s.RequirePermission(permManageEvents, permViewDashboard), s.getEvent)
		events.PUT("/:id", s.RequirePermission(permManageEvents), s.updateEvent)
		events.DELETE("/:id", s.RequirePermission(permManageEvents), s.deleteEvent)
		events.POST("/update-status", s.RequirePermission(permManageEvents), s.sweepEventStatuses)
	}

	admin.GET("/payments", s.RequirePermission(permViewPayments), s.listPayments)

	tickets := admin.Group("/tickets")
	{
		tickets.POST("/validate", s.RequirePermission(permScanTickets), s.validateTicket)
		tickets.POST("/bulk-validate", s.RequirePermission(permScanTickets), s.bulkValidateTickets)
		tickets.GET("/scan-stats/:eventId", s.RequirePermission(permScanTickets), s.scanStats)
		tickets.GET("/checkin-list/:eventId", s.RequirePermission(permAccessCheckinLists), s.checkinList)
		tickets.GET("/event/:eventId", s.RequirePermission(permManageTickets), s.listEventTickets)
	}

	admins := admin.Group("/admins", s.RequirePermission(permManageAdmins))
	{
		admins.GET("", s.listAdmins)
		admins.POST("", s.createAdmin)
		admins.GET("/:id", s.getAdmin)
		admins.PUT("/:id", s.updateAdmin)
		admins.DELETE("/:id", s.deleteAdmin)
	}
	admin.GET("/permissions", s.RequirePermission(permManageAdmins), s.listPermissions)

	admin.POST("/upload", s.RequirePermission(permViewDesignTools, permManageEvents), s.uploadImage)

	admin.GET("/settings", s.getSiteSettings)
	admin.PUT("/settings", s.RequirePermission(permViewDesignTools), s.updateSiteSettings)

	admin.GET("/dashboard", s.RequirePermission(permViewDashboard), s.dashboard)
}

func run(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: engine,
	}
	log = log.Named("http")

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				log.Info("listening", zap.String("addr", cfg.ListenAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
