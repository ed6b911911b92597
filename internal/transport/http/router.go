package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/nakliye-kontrol-api/internal/application/account"
	"github.com/nakliye-kontrol-api/internal/application/deposit"
	"github.com/nakliye-kontrol-api/internal/application/report"
	"github.com/nakliye-kontrol-api/internal/application/shipment"
	"github.com/nakliye-kontrol-api/internal/config"
	"github.com/nakliye-kontrol-api/internal/transport/http/handler"
	appmiddleware "github.com/nakliye-kontrol-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	accountSvc := account.NewService(account.ServiceDeps{
		UserRepo:   deps.UserRepo,
		CodeRepo:   deps.CodeRepo,
		Mailer:     deps.Mailer,
		SMSSender:  deps.SMSSender,
		Signer:     deps.JWTProvider,
		AutoVerify: cfg.AutoVerifyUsers,
	})
	nakliyeSvc := shipment.NewService(deps.NakliyeRepo)
	yatanSvc := deposit.NewService(deps.DepositRepo)
	reportSvc := report.NewService(report.ServiceDeps{
		Renderer:      deps.Renderer,
		ObjectStore:   deps.S3Store,
		TempFileRepo:  deps.TempFileRepo,
		NakliyeRepo:   deps.NakliyeRepo,
		DepositRepo:   deps.DepositRepo,
		PublicBaseURL: cfg.PublicBaseURL,
		TempFileTTL:   time.Duration(cfg.TempFileTTLMinutes) * time.Minute,
		RenderWorkers: cfg.RenderWorkers,
	})

	authH := handler.NewAuthHandler(accountSvc)
	nakliyeH := handler.NewNakliyeHandler(nakliyeSvc)
	yatanH := handler.NewYatanTutarHandler(yatanSvc)
	reportH := handler.NewReportHandler(reportSvc)

	r.Get("/", handler.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", handler.Root)

		r.Route("/nakliye", func(r chi.Router) {
			r.Post("/", nakliyeH.Create)
			r.Get("/", nakliyeH.List)
			r.Get("/search/{query}", nakliyeH.Search)
			r.Get("/{id}", nakliyeH.Get)
			r.Put("/{id}", nakliyeH.Update)
			r.Delete("/{id}", nakliyeH.Delete)
		})

		r.Route("/yatan-tutar", func(r chi.Router) {
			r.Post("/", yatanH.Create)
			r.Get("/", yatanH.List)
			r.Get("/{id}", yatanH.Get)
			r.Put("/{id}", yatanH.Update)
			r.Delete("/{id}", yatanH.Delete)
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(sensitiveRL.Limit).Post("/register", authH.Register)
			r.With(sensitiveRL.Limit).Post("/login", authH.Login)
			r.Post("/verify", authH.Verify)
			r.With(sensitiveRL.Limit).Post("/forgot-password", authH.ForgotPassword)
			r.Post("/reset-password", authH.ResetPassword)
			r.With(sensitiveRL.Limit).Post("/resend-verification", authH.ResendVerification)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.Auth(deps.JWTProvider))
				r.Get("/me", authH.Me)
			})
		})

		r.Post("/generate-pdf-qr", reportH.GeneratePDF)
		r.Post("/generate-backup-qr", reportH.GenerateBackup)
		r.Get("/download-temp/{fileID}", reportH.DownloadTemp)
	})

	return r
}
