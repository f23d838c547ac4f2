package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// TokenRepository reads FCM registration tokens from the Firestore
// collection owned by the frontend. This service only ever reads it;
// registration, rotation, and deletion belong to the client that
// registered the token.
type TokenRepository struct {
	client     *firestore.Client
	collection string
	maxTokens  int
}

// TokenRepositoryConfig holds token repository settings
type TokenRepositoryConfig struct {
	Client     *firestore.Client
	Collection string
	MaxTokens  int
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(cfg TokenRepositoryConfig) *TokenRepository {
	if cfg.Collection == "" {
		cfg.Collection = "fcmTokens"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 100
	}
	return &TokenRepository{
		client:     cfg.Client,
		collection: cfg.Collection,
		maxTokens:  cfg.MaxTokens,
	}
}

// ListAll retrieves every registered token, capped at the configured
// per-request limit
func (r *TokenRepository) ListAll(ctx context.Context) ([]string, error) {
	query := r.client.Collection(r.collection).Limit(r.maxTokens)
	return r.collectTokens(ctx, query.Documents(ctx))
}

// ListByDeviceName retrieves the tokens of records whose deviceName field
// equals name exactly. No match yields an empty slice, not an error.
func (r *TokenRepository) ListByDeviceName(ctx context.Context, name string) ([]string, error) {
	query := r.client.Collection(r.collection).
		Where("deviceName", "==", strings.TrimSpace(name)).
		Limit(r.maxTokens)
	return r.collectTokens(ctx, query.Documents(ctx))
}

// collectTokens drains the iterator, extracting the token field from each
// document. Malformed records are skipped rather than failing the whole
// request.
func (r *TokenRepository) collectTokens(ctx context.Context, iter *firestore.DocumentIterator) ([]string, error) {
	defer iter.Stop()

	tokens := make([]string, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating token documents: %w", err)
		}

		token, ok := tokenFromDoc(doc.Data())
		if !ok {
			slog.DebugContext(ctx, "skipping malformed token record",
				slog.String("collection", r.collection),
				slog.String("doc", doc.Ref.ID),
			)
			continue
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

// tokenFromDoc extracts a usable token from raw document data. Records
// without a non-empty string token field are malformed.
func tokenFromDoc(data map[string]interface{}) (string, bool) {
	raw, exists := data["token"]
	if !exists {
		return "", false
	}
	token, ok := raw.(string)
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
