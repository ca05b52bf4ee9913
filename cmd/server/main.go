// Command server runs the pollution reporting HTTP API.
//
// Configuration comes from the environment (and a .env file, if present)
// or from the YAML file named by CONFIG_PATH.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/heartmarshall/pollution-reporter/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
