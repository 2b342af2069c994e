package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/gestion-pro/internal/config"
	"github.com/diewo77/gestion-pro/internal/db"
	"github.com/diewo77/gestion-pro/internal/messaging"
	"github.com/diewo77/gestion-pro/internal/server"
	"github.com/diewo77/gestion-pro/internal/services"
	"github.com/diewo77/gestion-pro/internal/store"

	"github.com/joho/godotenv"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	if migrateOnlyFlag != nil && *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(); err != nil {
			log.Fatalf("migrate-only failed: %v", err)
		}
		log.Println("migrations completed; exiting as requested")
		return
	}
	cfg := config.Load()
	dbConn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatalf("Erreur connexion DB: %v", err)
	}
	log.Printf("Starting server env=%s port=%s", cfg.Env, cfg.Port)

	repo := store.NewRepository(dbConn, store.LogReporter{})
	sender := messaging.NewFunctionClient(cfg.EmailFunctionURL, cfg.SMSFunctionURL)
	suiviSvc := services.NewSuiviService(dbConn, sender, sender)
	centre := services.NewCentre()
	refresh := services.NewRafraichisseur(repo, centre, cfg.RefreshInterval)

	rootCtx, stopRefresh := context.WithCancel(context.Background())
	go refresh.Run(rootCtx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(repo, suiviSvc, refresh, centre),
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	stopRefresh()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
