package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/app"
	"github.com/Shweta-svg-cmd/BiasBusterExtensionApp/internal/config"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app.SetupLogging(cfg)

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("error starting app: %v", err)
	}
	defer a.Close()

	r := a.Router()

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
