// Package mongodb implements the entity store adapter over three collections:
// users, threads, communities. Every method maps driver errors onto the
// service error taxonomy: missing documents become 404s, transport/deadline
// failures become 503s, anything else bubbles up as-is.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/strand-dev/strand/internal/config"
	internal_errors "github.com/strand-dev/strand/internal/errors"
)

const defaultOpTimeout = 5 * time.Second

type Storage struct {
	client      *mongo.Client
	users       *mongo.Collection
	threads     *mongo.Collection
	communities *mongo.Collection
	opTimeout   time.Duration
}

func New(cfg config.Public) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.Uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.Mongo.Dbname)

	opTimeout := cfg.StoreOpTimeout
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}

	s := &Storage{
		client:      client,
		users:       db.Collection("users"),
		threads:     db.Collection("threads"),
		communities: db.Collection("communities"),
		opTimeout:   opTimeout,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}
	return s, nil
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.threads.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "parentId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "community", Value: 1}}},
	})
	if err != nil {
		return err
	}
	unique := options.Index().SetUnique(true)
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: unique,
	}); err != nil {
		return err
	}
	_, err = s.communities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: unique,
	})
	return err
}

// Ping reports whether the server is reachable, for readiness probes.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Storage) Cleanup() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// opCtx bounds every store call so an external deadline always surfaces
// as StoreUnavailable instead of hanging the request.
func (s *Storage) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func mapErr(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return internal_errors.NotFound(notFoundMsg)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return internal_errors.StoreUnavailable(err)
	}
	return err
}
