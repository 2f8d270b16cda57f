package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/youruser/cardforge/internal/api"
	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/config"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CARDFORGE_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	// Load decks at startup (best-effort)
	if _, err := cards.LoadDecksFromDataDir(cfg.DataDir); err != nil {
		log.Println("Warning: failed to load decks at startup:", err)
	}

	srv, err := api.NewServer(cfg)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	api.RegisterRoutes(r, srv)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("starting server on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
