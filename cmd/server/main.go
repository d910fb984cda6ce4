package main

import (
	"context"
	"log"

	"github.com/famvault/media-gateway/internal/server"
	"github.com/famvault/media-gateway/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
