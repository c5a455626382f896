package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"studytoolsai/internal/api"
	"studytoolsai/internal/api/handlers"
	"studytoolsai/internal/extract"
	"studytoolsai/internal/gemini"
	"studytoolsai/internal/upload"
	"studytoolsai/internal/youtube"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables first; a missing .env file just means we
	// rely on the system environment.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("FATAL: Error loading .env file: %v", err)
		}
		log.Println("Warning: .env file not found. Relying on system environment variables.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Upload store: fixed uploads directory created at process start.
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	maxFileSize := int64(upload.DefaultMaxFileSize)
	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			log.Fatalf("FATAL: Invalid MAX_FILE_SIZE value %q", v)
		}
		maxFileSize = n
	}
	store, err := upload.NewStore(uploadDir, maxFileSize)
	if err != nil {
		log.Fatalf("Failed to initialize upload store: %v", err)
	}
	log.Printf("INFO: Upload store ready at %s (max file size %d bytes)", uploadDir, maxFileSize)

	// Initialize Gemini client
	geminiClient, err := gemini.NewClient(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	extractor := extract.NewService()

	// Set up Gin router and API handlers
	router := gin.Default()
	handler := handlers.NewHandler(store, extractor, geminiClient, youtube.NewClient())
	api.SetupRoutes(router, handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
