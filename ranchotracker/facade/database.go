package facade

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/dal-go/dalgo2firestore"
	"github.com/rancho-co/ranchotracker-go/ranchotracker/rtdal/invitesdal"
)

const databaseID = "ranchotracker"

// InitFirestore connects to the Firestore project backing the application
// and registers the document-store DAL. Call once at startup; tests register
// dalmocks instead.
func InitFirestore(ctx context.Context, projectID string) error {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to create Firestore client for project %s: %w", projectID, err)
	}
	invitesdal.RegisterDal(dalgo2firestore.NewDatabase(databaseID, client))
	return nil
}
