package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig carries everything NewRouter mounts
type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration

	Health   *HealthHandler
	Products *ProductHandler
	Records  *RecordHandler
}

// NewRouter builds the HTTP routing tree. Paths match the ones the admin
// client already calls.
func NewRouter(cfg RouterConfig) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", cfg.Health.ServeHTTP)

	// Products
	r.Get("/products", cfg.Products.ListProducts)
	r.Delete("/products", cfg.Products.DeleteProducts)
	r.Get("/products/report", cfg.Products.Report)
	r.Get("/products/report.xlsx", cfg.Products.ReportXLSX)
	r.Post("/products/import", cfg.Products.ImportProducts)
	r.Put("/products/{id}", cfg.Products.UpdateProduct)
	r.Post("/product/add", cfg.Products.CreateProduct)

	// Employee records
	r.Get("/record", cfg.Records.ListRecords)
	r.Get("/record/{id}", cfg.Records.GetRecord)
	r.Post("/record/add", cfg.Records.CreateRecord)
	r.Post("/update/{id}", cfg.Records.UpdateRecord)
	r.Delete("/{id}", cfg.Records.DeleteRecord)

	return r
}
