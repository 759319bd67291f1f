package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/qeonaru/logging/logger"
	"github.com/ncobase/qeonaru/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type commentRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewCommentRepository creates a new MongoDB comment repository.
func NewCommentRepository(ctx context.Context, db *mongo.Database, logger *logger.Logger) CommentRepository {
	collection := db.Collection(CommentsCollection)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{Keys: bson.D{{Key: "postId", Value: 1}}}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn(ctx, "failed to create index on postId", "error", err)
	}

	return &commentRepository{
		collection: collection,
		logger:     logger,
	}
}

// Create creates a new comment.
func (r *commentRepository) Create(ctx context.Context, comment *structs.Comment) (*structs.Comment, error) {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	r.logger.Info(ctx, "comment created", "id", comment.ID.Hex(), "post_id", comment.PostID.Hex())
	return comment, nil
}

// FindByID retrieves a comment by ID.
func (r *commentRepository) FindByID(ctx context.Context, id string) (*structs.Comment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var comment structs.Comment
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return &comment, nil
}

// FindByIDs retrieves the comments with the given ids, oldest first.
func (r *commentRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*structs.Comment, error) {
	if len(ids) == 0 {
		return []*structs.Comment{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// FindByPost retrieves every comment of a post, oldest first.
func (r *commentRepository) FindByPost(ctx context.Context, postID primitive.ObjectID) ([]*structs.Comment, error) {
	return r.find(ctx, bson.M{"postId": postID})
}

func (r *commentRepository) find(ctx context.Context, filter bson.M) ([]*structs.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []*structs.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// Delete deletes a comment by ID.
func (r *commentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.logger.Info(ctx, "comment deleted", "id", id.Hex())
	return nil
}

// DeleteByPost deletes every comment of a post.
func (r *commentRepository) DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"postId": postID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete post comments: %w", err)
	}
	return result.DeletedCount, nil
}
