package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "loan-office/docs"

	"loan-office/internal/api/handler"
	mw "loan-office/internal/api/middleware"
	"loan-office/internal/config"
	"loan-office/internal/domain/customer"
	"loan-office/internal/domain/guarantor"
	"loan-office/internal/domain/loan"
	"loan-office/internal/domain/modmin"
	"loan-office/internal/report"
)

type Services struct {
	Loan      loan.LoanService
	Customer  customer.CustomerService
	Guarantor guarantor.GuarantorService
	Modmin    modmin.ModminService
	Exporter  *report.Exporter
}

func SetupRouter(svcs Services, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, redisClient, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, svcs, cfg, logger)
	setupCustomerRoutes(router, svcs, cfg, logger)
	setupGuarantorRoutes(router, svcs, cfg, logger)
	setupLoanRoutes(router, svcs, cfg, logger)
	setupCategoryRoutes(router, svcs, cfg, logger)
	setupReportRoutes(router, svcs, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, redisClient, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, svcs Services, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewAuthHandler(svcs.Modmin, cfg.Server.Auth, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
	})

	router.Route("/moderators", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Use(mw.RequireAdmin(logger))
		r.Post("/", h.AddModerator)
		r.Get("/", h.ListModerators)
		r.Patch("/{modminID}/status", h.ToggleModeratorStatus)
	})
}

func setupCustomerRoutes(router *chi.Mux, svcs Services, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svcs.Customer, logger)
	gh := handler.NewGuarantorHandler(svcs.Guarantor, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateCustomer)
		r.Get("/", h.ListCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeleteCustomer)
			r.Get("/guarantors", gh.ListCustomerGuarantors)
		})
	})
}

func setupGuarantorRoutes(router *chi.Mux, svcs Services, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewGuarantorHandler(svcs.Guarantor, logger)

	router.Route("/guarantors", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.AddGuarantor)
		r.Get("/", h.ListGuarantors)
		r.Route("/{guarantorID}", func(r chi.Router) {
			r.Get("/", h.GetGuarantor)
			r.Put("/", h.UpdateGuarantor)
			r.Delete("/", h.DeleteGuarantor)
		})
	})
}

func setupLoanRoutes(router *chi.Mux, svcs Services, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewLoanHandler(svcs.Loan, logger)

	router.Route("/loans", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.ApplyLoan)
		r.Get("/", h.ListLoans)
		r.Route("/{loanID}", func(r chi.Router) {
			r.Get("/", h.GetLoan)
			r.Put("/", h.EditLoan)
			r.Delete("/", h.DeleteLoan)
			r.Patch("/installments/{installmentID}", h.ToggleInstallment)
		})
	})
}

func setupCategoryRoutes(router *chi.Mux, svcs Services, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewCategoryHandler(svcs.Loan, logger)

	router.Route("/loan-categories", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.AddCategory)
		r.Get("/", h.ListCategories)
		r.Route("/{categoryID}", func(r chi.Router) {
			r.Get("/", h.GetCategory)
			r.Put("/", h.EditCategory)
			r.Delete("/", h.DeleteCategory)
		})
	})
}

func setupReportRoutes(router *chi.Mux, svcs Services, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewReportHandler(svcs.Exporter, logger)

	router.Route("/reports", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/loans", h.ExportLoans)
		r.Get("/loans/{loanID}", h.ExportLoan)
	})
}
