package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/threewin/bmc-mentor/backend/internal/config"
	"github.com/threewin/bmc-mentor/backend/internal/handler"
	authservice "github.com/threewin/bmc-mentor/backend/internal/service/auth"
	designservice "github.com/threewin/bmc-mentor/backend/internal/service/design"
	mentorservice "github.com/threewin/bmc-mentor/backend/internal/service/mentor"
	"github.com/threewin/bmc-mentor/backend/internal/service/session"
	"github.com/threewin/bmc-mentor/backend/internal/service/textgen"
	"github.com/threewin/bmc-mentor/backend/internal/storage"
	"github.com/threewin/bmc-mentor/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer repo.Close()

	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload directory: %v", err)
	}

	sessions := session.NewStore()
	sessions.StartSweeper(ctx, cfg.Session.SweepInterval, cfg.Session.TTL)

	generator := buildGenerator(ctx, cfg.TextGen)

	mentorSvc := mentorservice.NewService(sessions, generator)
	designSvc := designservice.NewService(sessions, generator)
	authSvc := authservice.NewService(repo, cfg.Auth.Secret)

	router := handler.NewRouter(handler.Deps{
		Sessions:  sessions,
		MentorSvc: mentorSvc,
		DesignSvc: designSvc,
		AuthSvc:   authSvc,
		Repo:      repo,
		Files:     files,
		Provider:  cfg.TextGen.Provider,
	})

	startServer(ctx, cfg.Server, router)
}

// buildGenerator resolves the configured provider behind the retry policy.
// Returns nil when no provider is configured, in which case every assistant
// serves its static fallback content.
func buildGenerator(ctx context.Context, cfg config.TextGenConfig) mentorservice.Generator {
	if !cfg.Enabled() {
		log.Println("no text-generation provider configured, serving fallback content only")
		return nil
	}

	var client textgen.Client
	switch cfg.Provider {
	case "groq":
		client = textgen.NewGroqClient(textgen.GroqConfig{
			APIKey:  cfg.GroqAPIKey,
			Model:   cfg.GroqModel,
			BaseURL: cfg.GroqBaseURL,
		})
	case "ark":
		arkClient, err := textgen.NewArkClient(ctx, textgen.ArkConfig{
			APIKey:  cfg.ArkAPIKey,
			Model:   cfg.ArkModel,
			BaseURL: cfg.ArkBaseURL,
			Region:  cfg.ArkRegion,
		})
		if err != nil {
			log.Printf("warning: failed to initialize ark provider: %v", err)
			log.Println("continuing with fallback content only")
			return nil
		}
		client = arkClient
	}

	log.Printf("text-generation provider %q initialized", cfg.Provider)
	return textgen.NewRetryer(client, cfg.MaxAttempts)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("BMC mentor backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
