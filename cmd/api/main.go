package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nakliye-kontrol-api/internal/config"
	"github.com/nakliye-kontrol-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/nakliye-kontrol-api/internal/infrastructure/jwt"
	s3infra "github.com/nakliye-kontrol-api/internal/infrastructure/s3"
	"github.com/nakliye-kontrol-api/internal/infrastructure/smtp"
	"github.com/nakliye-kontrol-api/internal/infrastructure/sns"
	"github.com/nakliye-kontrol-api/internal/infrastructure/wkhtml"
	transporthttp "github.com/nakliye-kontrol-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Without a signing secret no tokens can be minted or accepted, so
	// refuse to start rather than run an API nobody can log in to.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// S3 store for generated reports and backups.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:     dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		CodeRepo:     dynamo.NewCodeRepo(dynamoClient, cfg.DynamoTables.VerificationCodes),
		NakliyeRepo:  dynamo.NewNakliyeRepo(dynamoClient, cfg.DynamoTables.NakliyeRecords),
		DepositRepo:  dynamo.NewDepositRepo(dynamoClient, cfg.DynamoTables.DepositRecords),
		TempFileRepo: dynamo.NewTempFileRepo(dynamoClient, cfg.DynamoTables.TempFiles),
		S3Store:      s3Store,
		Mailer:       mailer,
		SMSSender:    smsSender,
		JWTProvider:  jwtProvider,
		Renderer:     wkhtml.NewRenderer(cfg),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
