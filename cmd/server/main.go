package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fractionsarcade/internal/catalog"
	"fractionsarcade/internal/config"
	"fractionsarcade/internal/handlers"
	"fractionsarcade/internal/kvstore"
	"fractionsarcade/internal/profile"
	"fractionsarcade/internal/progress"
	"fractionsarcade/internal/report"
	"fractionsarcade/internal/scoped"
	"fractionsarcade/internal/security"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the physical store (supports sqlite, postgres, mysql, memory)
	backend, err := kvstore.Open(cfg.StoreBackend, kvstore.DialectConfig{
		Path: cfg.StorePath,
		URL:  cfg.StoreURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer backend.Close()

	log.Printf("Store connection established (type: %s)", cfg.StoreBackend)

	physical := kvstore.NewSafe(backend)

	// Core subsystems
	registry := catalog.Default()
	profiles := profile.NewStore(physical)
	profiles.Load()
	recon := progress.NewReconciler(profiles)
	store := scoped.New(physical, profiles, recon, registry)

	gate, err := security.NewGate(cfg.GateSecret, cfg.ParentPIN)
	if err != nil {
		log.Fatalf("Failed to initialize parental gate: %v", err)
	}

	mailer, err := report.NewMailer(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.ReportToEmail, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize report mailer: %v", err)
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(gate)
	unlockLimiter := security.NewRateLimiter(10, time.Minute)

	storageHandler := handlers.NewStorageHandler(store)
	profileHandler := handlers.NewProfileHandler(profiles, store, registry)
	dashboardHandler := handlers.NewDashboardHandler(profiles, registry)
	gateHandler := handlers.NewGateHandler(gate, unlockLimiter)
	manifestHandler := handlers.NewManifestHandler(cfg.CacheVersion, registry)
	reportHandler := handlers.NewReportHandler(profiles, registry, mailer)

	// Setup routes
	mux := http.NewServeMux()

	// Static activity pages and app shell
	mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticFilesPath)))

	// Storage API used by activity pages
	mux.HandleFunc("GET /api/storage/{key}", storageHandler.Get)
	mux.HandleFunc("PUT /api/storage/{key}", storageHandler.Put)
	mux.HandleFunc("DELETE /api/storage/{key}", storageHandler.Delete)

	// Profile API
	mux.HandleFunc("GET /api/profiles", profileHandler.List)
	mux.HandleFunc("POST /api/profiles", profileHandler.Create)
	mux.HandleFunc("GET /api/profiles/active", profileHandler.Active)
	mux.HandleFunc("GET /api/profiles/suggest-name", profileHandler.SuggestName)
	mux.HandleFunc("POST /api/profiles/{id}/switch", profileHandler.Switch)
	mux.HandleFunc("POST /api/profiles/avatar", profileHandler.SetAvatar)
	mux.HandleFunc("POST /api/activities/{id}/launch", profileHandler.RecordLaunch)

	// Dashboard and offline manifest
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.Dashboard)
	mux.HandleFunc("GET /api/cache-manifest", manifestHandler.Manifest)

	// Parental gate and gated destructive actions
	mux.HandleFunc("GET /api/gate/challenge", gateHandler.Challenge)
	mux.HandleFunc("POST /api/gate/unlock", gateHandler.Unlock)
	mux.HandleFunc("DELETE /api/profiles/{id}", middleware.RequireGate(profileHandler.Delete))
	mux.HandleFunc("POST /api/progress/reset", middleware.RequireGate(profileHandler.ResetProgress))
	mux.HandleFunc("POST /api/report/send", middleware.RequireGate(reportHandler.Send))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
