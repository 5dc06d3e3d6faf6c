package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rancho-co/ranchotracker-go/ranchotracker"
	"github.com/strongo/log"
)

func main() {
	ctx := context.Background()

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		log.Errorf(ctx, "GOOGLE_CLOUD_PROJECT is not set")
		os.Exit(1)
	}

	handler, err := ranchotracker.Init(ctx, projectID)
	if err != nil {
		log.Errorf(ctx, "Failed to initialize app: %v", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infof(ctx, "Listening on port %s", port)
	if err = http.ListenAndServe(":"+port, handler); err != nil {
		log.Errorf(ctx, "HTTP server failed: %v", err)
		os.Exit(1)
	}
}
