package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/arnavshah/shelter-scheduler-go/internal/config"
	"github.com/arnavshah/shelter-scheduler-go/internal/logging"
	"github.com/arnavshah/shelter-scheduler-go/pkg/database"
	"github.com/arnavshah/shelter-scheduler-go/pkg/handlers"
)

var r *gin.Engine

func init() {
	// .env is only present under vercel dev
	_ = godotenv.Load(".env")
	cfg := config.FromEnv()

	logger := logging.Must(cfg.LogLevel)
	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	h := handlers.New(db, cfg, logger)
	_ = h.Auth.EnsureAdminExists(context.Background(), db, cfg.AdminUsername, cfg.AdminPassword, logger)

	gin.SetMode(gin.ReleaseMode)
	r = handlers.NewRouter(h)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
