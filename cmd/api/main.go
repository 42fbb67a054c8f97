package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	godotenv.Load()

	// Sem banco não tem lead: falha na subida, não no primeiro request
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("❌ DATABASE_URL não configurada")
	}

	db, err := database.NewDBConnection(dbURL)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no Postgres: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		getEnv("RABBITMQ_USER", "user"),
		getEnv("RABBITMQ_PASS", "password"),
		getEnv("RABBITMQ_HOST", "localhost"),
		getEnv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	chatRepo := database.NewChatHistoryRepository(db)
	interactionRepo := database.NewInteractionRepository(db)

	// 2. Gateways e Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)
	whatsappClient := whatsapp.NewClient()

	// 3. Worker (consome a fila e avisa o time de vendas)
	worker := queue.NewWorker(
		rabbitMQ.Ch,
		mailSender,
		whatsappClient,
		os.Getenv("SALES_INBOX"),
		os.Getenv("SALES_PHONE"),
	)
	go worker.Start(queue.QueueName)

	// 4. UseCases
	captureLeadUC := usecase.NewCaptureLeadUseCase(leadRepo, chatRepo, interactionRepo, producer)
	recordChatUC := usecase.NewRecordChatMessageUseCase(chatRepo)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(captureLeadUC)
	chatHandler := handlers.NewChatHandler(recordChatUC, chatRepo)
	interactionHandler := handlers.NewInteractionHandler(interactionRepo)
	adminHandler := handlers.NewAdminLeadHandler(leadRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// API pública (site + widget de chat)
	r.Post("/api/leads", leadHandler.CaptureLead)
	r.Post("/api/chat/message", chatHandler.HandlePostMessage)
	r.Get("/api/chat/history/{sessionId}", chatHandler.HandleGetHistory)
	r.Post("/api/interactions", interactionHandler.HandleLog)

	// API do painel admin
	r.Route("/api/admin/leads", func(r chi.Router) {
		r.Get("/", adminHandler.HandleList)
		r.Get("/export", adminHandler.HandleExportCSV)
		r.Patch("/{id}", adminHandler.HandleUpdate)
		r.Delete("/{id}", adminHandler.HandleDelete)
	})

	port := ":" + getEnv("PORT", "8080")
	log.Printf("🔥 Server LigueLeads rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
