package data

import (
	"context"
	"fmt"
	"time"

	"github.com/ncobase/qeonaru/config"
	"github.com/ncobase/qeonaru/data/repository"
	"github.com/ncobase/qeonaru/logging/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoDriver struct{}

func (mongoDriver) Name() string { return config.DriverMongoDB }

// Open connects to MongoDB, verifies the connection and ensures indexes.
func (mongoDriver) Open(ctx context.Context, cfg *config.Data, log *logger.Logger) (Backend, error) {
	if cfg.MongoDB == nil || cfg.MongoDB.URI == "" {
		return nil, fmt.Errorf("mongodb: uri is empty")
	}

	timeout := cfg.MongoDB.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.MongoDB.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info(ctx, "Connected to MongoDB successfully", "database", cfg.MongoDB.Database)

	db := client.Database(cfg.MongoDB.Database)
	return &mongoBackend{
		client:   client,
		users:    repository.NewUserRepository(ctx, db, log),
		posts:    repository.NewPostRepository(ctx, db, log),
		comments: repository.NewCommentRepository(ctx, db, log),
	}, nil
}

type mongoBackend struct {
	client   *mongo.Client
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func (b *mongoBackend) Users() repository.UserRepository       { return b.users }
func (b *mongoBackend) Posts() repository.PostRepository       { return b.posts }
func (b *mongoBackend) Comments() repository.CommentRepository { return b.comments }

func (b *mongoBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx, readpref.Primary())
}

func (b *mongoBackend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

func init() {
	RegisterDriver(mongoDriver{})
}
