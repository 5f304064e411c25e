// Command server runs the user records HTTP API.
//
// Configuration comes from config.yaml (or the file named by CONFIG_PATH)
// and environment variables; see internal/config.
package main

import (
	"context"
	"log"

	"github.com/ren-lyn/midterm-lab3/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
