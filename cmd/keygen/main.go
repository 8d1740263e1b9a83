package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/shelter-scheduler-go/internal/config"
	"github.com/arnavshah/shelter-scheduler-go/pkg/auth"
)

func main() {
	cfg := config.Load()

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <name>")
		os.Exit(1)
	}
	if cfg.APIMasterSecret == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in environment or .env")
		os.Exit(1)
	}

	name := os.Args[1]
	key := auth.NewService(cfg.JWTSecret, cfg.APIMasterSecret).GenerateHMACKey(name)
	fmt.Printf("Generated Key for %s:\n%s\n", name, key)
}
