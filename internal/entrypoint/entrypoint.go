package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/config"
	http_controllers "github.com/mrlokans/librarydesk/internal/http"
	"github.com/mrlokans/librarydesk/internal/metrics"
	"github.com/mrlokans/librarydesk/internal/scheduler"
	"github.com/mrlokans/librarydesk/internal/security"
	"github.com/mrlokans/librarydesk/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it
// down gracefully.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT. SIGKILL can't be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Background work is stopped after the last request has been answered
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// Run wires every component from cfg and serves until stopped.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library Desk v%s", version)

	core, err := NewCore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer core.Close()

	sqlDB, err := core.DB.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := security.NewSessionManager(sqlDB, security.SessionConfig{
		Lifetime:      cfg.Session.Lifetime,
		SecureCookies: cfg.Session.SecureCookies,
	})
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}
	defer sessionManager.Close()

	var csrfSecret []byte
	if cfg.Security.CSRFEnabled {
		csrfSecret, err = security.ResolveSecret(cfg.Security.CSRFSecret)
		if err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		if cfg.Security.CSRFSecret == "" {
			log.Printf("Generated CSRF secret (set CSRF_SECRET to persist)")
		}
	} else {
		log.Printf("WARNING: CSRF protection is disabled")
	}

	if cfg.Global.ReadOnly {
		log.Printf("Read-only mode enabled - write operations will be blocked")
	}

	var rateLimiter *security.RateLimiter
	if cfg.Security.WriteRateLimitPerMinute > 0 {
		rlCfg := security.DefaultRateLimitConfig()
		rlCfg.PerMinute = cfg.Security.WriteRateLimitPerMinute
		if cfg.Security.WriteRateLimitBurst > 0 {
			rlCfg.Burst = cfg.Security.WriteRateLimitBurst
		}
		rateLimiter = security.NewRateLimiter(rlCfg)
		defer rateLimiter.Stop()
	}

	routerCfg := http_controllers.RouterConfig{
		Library:        core.Library,
		Database:       core.DB,
		AuditService:   core.Audit,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Session.SecureCookies,
		ReadOnly:       cfg.Global.ReadOnly,
		RateLimiter:    rateLimiter,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		StatusRecorder: core.Metrics,
		MetricsHandler: metrics.Handler(core.Registry),
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Version:        version,
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:            cfg.Tasks.Workers,
			ReleaseAfter:       cfg.Tasks.ReleaseAfter,
			CleanupInterval:    cfg.Tasks.CleanupInterval,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		scanner := tasks.NewOverdueScanner(core.Library, core.Metrics, core.Audit)
		taskClient.Register(
			scanner.Queue(),
			tasks.NewCleanupAuditEventsQueue(core.Audit, cfg.Audit.RetentionDays),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		taskClient.Start(taskCtx)

		// Left nil when tasks are disabled so the routes are not mounted
		routerCfg.TaskQueue = taskClient

		maintenance = scheduler.NewMaintenanceScheduler(taskClient, scheduler.MaintenanceConfig{
			Enabled:            cfg.Maintenance.Enabled,
			Schedule:           cfg.Maintenance.Schedule,
			AuditRetentionDays: cfg.Audit.RetentionDays,
		})
		if err := maintenance.Start(taskCtx); err != nil {
			log.Printf("WARNING: Failed to start maintenance scheduler: %v", err)
		}
	} else if cfg.Maintenance.Enabled {
		log.Printf("WARNING: Maintenance needs the task queue. Set TASKS_ENABLED=true to enable it.")
	}

	router, err := http_controllers.NewRouter(routerCfg)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			if !taskClient.Stop(ctx) {
				log.Printf("Task queue did not drain before the shutdown timeout")
			}
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
