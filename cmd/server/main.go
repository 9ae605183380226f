package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sahay.app/support-backend/internal/api"
	"sahay.app/support-backend/internal/config"
	"sahay.app/support-backend/internal/core"
	"sahay.app/support-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if cfg.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Command line flag for knowledge-base ingestion
	ingestDataFlag := flag.Bool("ingest", false, "Ingest the knowledge base from the data file and exit")
	flag.Parse()

	// Initialize database store
	dbStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStore.Close()

	// All collaborator clients are constructed here, before the server
	// accepts any traffic.
	llmService, err := core.NewLLMService(context.Background(), cfg.GeminiAPIKey, cfg.LLMTimeout)
	if err != nil {
		log.Fatalf("Failed to initialize LLM service: %v", err)
	}
	defer llmService.Close()

	if *ingestDataFlag {
		log.Println("Starting knowledge-base ingestion...")
		numIngested, err := dbStore.IngestKnowledgeFromFile(cfg.DataFile, func(text string) ([]float32, error) {
			return llmService.Embed(context.Background(), text)
		})
		if err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}
		log.Printf("Ingestion complete. Ingested %d chunks. Exiting.", numIngested)
		os.Exit(0)
	}

	ragService, err := core.NewRAGService(dbStore, llmService, cfg.RetrievalK)
	if err != nil {
		log.Fatalf("Failed to initialize RAG service: %v", err)
	}

	chatService := core.NewChatService(dbStore, ragService, llmService, cfg.HistoryWindow)
	sentimentAnalyzer := core.NewSentimentAnalyzer(llmService)
	journalService := core.NewJournalService(dbStore, llmService, sentimentAnalyzer, cfg.JournalCandidateCap)

	apiHandler := api.NewAPIHandler(chatService, journalService)
	router := api.NewRouter(apiHandler)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give active connections time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
