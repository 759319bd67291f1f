package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ncobase/qeonaru/logging/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestMongoRepositories runs the repository suite against a live server.
// Set QEONARU_TEST_MONGODB_URI to enable it.
func TestMongoRepositories(t *testing.T) {
	uri := os.Getenv("QEONARU_TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("QEONARU_TEST_MONGODB_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("ping: %v", err)
	}

	db := client.Database("qeonaru_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	log := logger.Discard()
	runRepositorySuite(t, repos{
		users:    NewUserRepository(ctx, db, log),
		posts:    NewPostRepository(ctx, db, log),
		comments: NewCommentRepository(ctx, db, log),
	})
}
