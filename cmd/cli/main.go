package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/yogatrack/internal/client/cli"
	"github.com/dmitrijs2005/yogatrack/internal/client/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
