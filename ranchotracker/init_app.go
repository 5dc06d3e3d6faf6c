package ranchotracker

import (
	"context"
	"net/http"
	"os"

	"github.com/julienschmidt/httprouter"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/api4invites"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/auth"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/facade"
)

// Init connects the document store and mounts the HTTP API.
func Init(ctx context.Context, projectID string) (http.Handler, error) {
	if err := facade.InitFirestore(ctx, projectID); err != nil {
		return nil, err
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		auth.SetSecret(secret)
	}

	router := httprouter.New()
	api4invites.InitApi(router)
	return router, nil
}
