package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shop-reconciliation/internal/gateway"
	"shop-reconciliation/internal/server"
	"shop-reconciliation/internal/usecase"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	uri := envOr("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOr("MONGO_DB", "nukkad_reports")
	addr := envOr("ADDR", ":8080")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB at %s: %v", uri, err)
	}

	// Manual wiring: repository and parser into the usecase, usecase into the
	// router. Small enough that a DI container would only obscure it.
	repo := gateway.NewMongoShopRepository(client.Database(dbName))
	parser := gateway.NewLedgerParser()
	uc := usecase.NewReconciliationUseCase(repo, parser, logger)

	r := server.NewRouter(logger, uc, "templates/*.html")

	logger.Info("listening", "addr", addr, "db", dbName)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
