package main

//go:generate swag init

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sidharthv/invoicing/db"
	_ "github.com/sidharthv/invoicing/docs"
	"github.com/sidharthv/invoicing/handlers"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed static/*
var staticFiles embed.FS

// @title           Invoicing API
// @version         1.0.0
// @description     API for managing clients, products, and invoices, with dashboard and report statistics.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.basic  BasicAuth

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	// Configure structured logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Open database
	database, err := db.Open()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Set shared DB for handlers
	handlers.DB = database

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// API routes with basic auth
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handlers.BasicAuth)

		// Clients
		r.Get("/clients", handlers.ListClients)
		r.Post("/clients", handlers.CreateClient)
		r.Get("/clients/{id}", handlers.GetClient)
		r.Put("/clients/{id}", handlers.UpdateClient)
		r.Delete("/clients/{id}", handlers.DeleteClient)

		// Products
		r.Get("/products", handlers.ListProducts)
		r.Post("/products", handlers.CreateProduct)
		r.Get("/products/{id}", handlers.GetProduct)
		r.Put("/products/{id}", handlers.UpdateProduct)
		r.Delete("/products/{id}", handlers.DeleteProduct)

		// Invoices
		r.Get("/invoices", handlers.ListInvoices)
		r.Post("/invoices", handlers.CreateInvoice)
		r.Get("/invoices/{id}", handlers.GetInvoice)
		r.Put("/invoices/{id}", handlers.UpdateInvoice)
		r.Delete("/invoices/{id}", handlers.DeleteInvoice)
		r.Get("/invoices/{id}/items", handlers.ListInvoiceItems)
		r.Post("/invoices/{id}/send", handlers.SendInvoice)

		// Dashboard
		r.Get("/dashboard", handlers.GetDashboard)

		// Reports
		r.Get("/reports/summary", handlers.GetSummaryReport)
		r.Get("/reports/sales-by-month", handlers.GetSalesByMonth)
		r.Get("/reports/status", handlers.GetStatusReport)
		r.Get("/reports/top-clients", handlers.GetTopClients)
	})

	// Serve static files (UI)
	staticFS, _ := fs.Sub(staticFiles, "static")
	r.Handle("/*", http.FileServer(http.FS(staticFS)))

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := fmt.Sprintf(":%s", port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
