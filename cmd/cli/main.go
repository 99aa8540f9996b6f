package main

import (
	"context"
	"log"
	"os"

	"github.com/hospitalapp/client-go/internal/buildinfo"
	"github.com/hospitalapp/client-go/internal/cli"
	"github.com/hospitalapp/client-go/internal/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
