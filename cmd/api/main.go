package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"swap-market/internal/config"
	"swap-market/internal/delivery/http/route"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title           swap-market API
// @version         1.0
// @description     Marketplace with monetary sales and item-for-item barter negotiation.
// @BasePath        /api
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to open postgres:", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("failed to ping postgres:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("failed to connect to mongo:", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatal("failed to ping mongo:", err)
	}

	app := gin.Default()
	route.SetupRoute(app, db, mongoClient, cfg.MongoDB)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, corsHandler.Handler(app)))
}
