package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pushrelay/api/internal/config"
	"github.com/pushrelay/api/internal/firebase"
	"github.com/pushrelay/api/internal/repository"
	"github.com/pushrelay/api/internal/service"
)

func main() {
	// Flags for customization
	title := flag.String("title", "", "Notification title (required)")
	body := flag.String("body", "", "Notification body (required)")
	deviceName := flag.String("device", "", "Only target devices registered under this name")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall dispatch timeout")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *title == "" || *body == "" {
		fmt.Fprintln(os.Stderr, "Error: -title and -body are required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nMake sure GOOGLE_APPLICATION_CREDENTIALS points at a service-account file\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	clients, err := firebase.NewClients(ctx, firebase.Config{
		CredentialsPath: cfg.Firebase.CredentialsPath,
		ProjectID:       cfg.Firebase.ProjectID,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing firebase: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = clients.Close() }()

	tokenRepo := repository.NewTokenRepository(repository.TokenRepositoryConfig{
		Client:     clients.Firestore,
		Collection: cfg.Firebase.TokenCollection,
		MaxTokens:  cfg.Firebase.MaxTokens,
	})

	var tokens []string
	if *deviceName != "" {
		tokens, err = tokenRepo.ListByDeviceName(ctx, *deviceName)
	} else {
		tokens, err = tokenRepo.ListAll(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading device tokens: %v\n", err)
		os.Exit(1)
	}

	pushService := service.NewPushService(service.PushServiceConfig{
		Sender: clients.Messaging,
	})

	result := pushService.Send(ctx, *title, *body, tokens)

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		fmt.Println("Push Dispatch Complete")
		fmt.Println("======================")
		fmt.Printf("Tokens:    %d\n", result.Attempted())
		fmt.Printf("Delivered: %d\n", result.SuccessCount)
		fmt.Printf("Failed:    %d\n", result.FailureCount)
		for _, e := range result.Errors {
			fmt.Printf("  %s: %s\n", e.Token, e.Reason)
		}
	}

	if result.FailureCount > 0 && result.SuccessCount == 0 && result.Attempted() > 0 {
		os.Exit(1)
	}
}
