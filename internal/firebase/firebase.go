package firebase

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Config holds the settings needed to construct the Firebase clients
type Config struct {
	CredentialsPath string
	ProjectID       string
}

// Clients bundles the process-wide Firebase SDK handles. It is built once
// at startup and passed into the repository and dispatcher; both the
// Firestore and Messaging clients are safe for concurrent use.
type Clients struct {
	App       *firebase.App
	Messaging *messaging.Client
	Firestore *firestore.Client
}

// NewClients initializes the Firebase app from the service-account file
// and derives the Messaging and Firestore clients from it.
func NewClients(ctx context.Context, cfg Config) (*Clients, error) {
	if cfg.CredentialsPath == "" {
		return nil, errors.New("firebase credentials file is required")
	}

	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting messaging client: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting firestore client: %w", err)
	}

	return &Clients{
		App:       app,
		Messaging: messagingClient,
		Firestore: firestoreClient,
	}, nil
}

// Close releases the Firestore client's underlying connections. The
// messaging client holds no resources that need closing.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
