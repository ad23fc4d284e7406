package main

import (
	"context"
	"log"

	"github.com/dpatil-neu/skycatalog/internal/scraper"
	"github.com/dpatil-neu/skycatalog/internal/scraper/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := scraper.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
