// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gig-web/config"
	"gig-web/controllers"
	"gig-web/logger"
	"gig-web/middleware"
	"gig-web/models"
	"gig-web/services"
	"gig-web/templates"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// dependencies are the long-lived services shared by every request.
type dependencies struct {
	API     services.GigAPI
	Auth    services.Authenticator
	Metrics services.Metrics
	Tracker *services.SubmissionTracker

	// Registry is set when metrics are served to Prometheus.
	Registry *prometheus.Registry
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.InitLogger(cfg.LogDir); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	logger.SetLogLevel(cfg.Env)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, err := buildDependencies(cfg)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}

	stopSweep := make(chan struct{})
	deps.Tracker.SweepEvery(cfg.SubmissionTTL, stopSweep)
	defer close(stopSweep)

	router, err := setupRouter(cfg, deps)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	var handler http.Handler = router
	if cfg.TracingEnabled {
		handler = xray.Handler(xray.NewFixedSegmentNamer("gig-web"), router)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info.Printf("Starting server on %s (env=%s, api=%s)", srv.Addr, cfg.Env, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info.Println("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error.Printf("Server shutdown failed: %v", err)
	}
	if closer, ok := deps.Metrics.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Error.Printf("Metrics flush failed: %v", err)
		}
	}
}

// buildDependencies wires the API client, authenticator and metrics from cfg.
func buildDependencies(cfg *config.Config) (*dependencies, error) {
	client := &http.Client{Timeout: cfg.APITimeout}
	if cfg.TracingEnabled {
		client = xray.Client(client)
	}

	var (
		metrics  services.Metrics = services.NoopMetrics{}
		registry *prometheus.Registry
	)
	switch cfg.MetricsBackend {
	case config.MetricsCloudWatch:
		cw, err := services.NewCloudWatchMetrics(cfg.MetricsNamespace)
		if err != nil {
			return nil, fmt.Errorf("cloudwatch metrics: %w", err)
		}
		metrics = cw
	case config.MetricsPrometheus:
		registry = prometheus.NewRegistry()
		metrics = services.NewPrometheusMetrics(registry, cfg.MetricsNamespace)
	}

	var auth services.Authenticator
	switch cfg.AuthMode {
	case config.AuthModeLocal:
		local, err := services.LoadLocalUsers(cfg.LocalUsersFile)
		if err != nil {
			return nil, fmt.Errorf("local users: %w", err)
		}
		auth = local
	default:
		auth = services.NewAPIAuthenticator(cfg.APIBaseURL, client, cfg.JWTSecret)
	}

	return &dependencies{
		API:      services.NewHTTPGigAPI(cfg.APIBaseURL, client, cfg.APIRetryAttempts, metrics),
		Auth:     auth,
		Metrics:  metrics,
		Tracker:  services.NewSubmissionTracker(cfg.SubmissionTTL),
		Registry: registry,
	}, nil
}

// setupRouter registers every page and its access rules.
func setupRouter(cfg *config.Config, deps *dependencies) (*gin.Engine, error) {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Frame-Options", "SAMEORIGIN")
		c.Next()
	})

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Initialize session store, signed and encrypted
	hashKey, blockKey, err := cfg.SessionKeys()
	if err != nil {
		return nil, err
	}
	store := cookie.NewStore(hashKey, blockKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(cfg.SessionName, store))

	router.GET("/health", controllers.Health)
	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry})))
	}

	// Public routes
	auth := controllers.NewAuthController(deps.Auth)
	router.GET("/", controllers.Index)
	router.GET("/login", auth.ShowLogin)
	router.POST("/login", auth.Login)
	router.GET("/logout", controllers.Logout)
	router.POST("/logout", controllers.Logout)

	// Signed-in routes
	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.POST("/nav/profile-menu", controllers.ToggleProfileMenu)
	}

	gigs := controllers.NewGigController(deps.API, deps.Tracker, deps.Metrics)
	gigs.UpdateKeys = services.UpdateKeys(cfg.UpdateKeyStyle)
	gigs.ApplicationURL = cfg.ApplicationURL
	gigs.MaxUploadBytes = cfg.MaxUploadBytes()

	// Seller routes
	admin := router.Group("/", middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/add", gigs.ShowAdd)
		admin.POST("/add", gigs.CreateGig)
		admin.GET("/edit/:id", gigs.ShowEdit)
		admin.POST("/edit/:id", gigs.UpdateGig)
		admin.GET("/my-gigs", gigs.MyGigs)
		admin.GET("/gigs/:id/qrcode", gigs.GigQRCode)
	}

	return router, nil
}
