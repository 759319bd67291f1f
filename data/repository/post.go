package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ncobase/qeonaru/logging/logger"
	"github.com/ncobase/qeonaru/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type postRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewPostRepository creates a new MongoDB post repository.
func NewPostRepository(ctx context.Context, db *mongo.Database, logger *logger.Logger) PostRepository {
	collection := db.Collection(PostsCollection)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn(ctx, "failed to create post indexes", "error", err)
	}

	return &postRepository{
		collection: collection,
		logger:     logger,
	}
}

// Create creates a new post.
func (r *postRepository) Create(ctx context.Context, post *structs.Post) (*structs.Post, error) {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.CreatedAt
	}
	post.Normalize()

	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	r.logger.Info(ctx, "post created", "id", post.ID.Hex(), "user_id", post.UserID.Hex())
	return post, nil
}

// FindByID retrieves a post by ID.
func (r *postRepository) FindByID(ctx context.Context, id string) (*structs.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var post structs.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post.Normalize(), nil
}

// Search lists posts whose title or category contains query, newest first.
func (r *postRepository) Search(ctx context.Context, query string) ([]*structs.Post, error) {
	filter := bson.M{}
	if query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"category": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []*structs.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	for _, p := range posts {
		p.Normalize()
	}
	return posts, nil
}

// Update overwrites title, slug, category and content.
func (r *postRepository) Update(ctx context.Context, post *structs.Post) (*structs.Post, error) {
	post.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"title":     post.Title,
			"slug":      post.Slug,
			"category":  post.Category,
			"content":   post.Content,
			"updatedAt": post.UpdatedAt,
		},
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": post.ID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	var updated structs.Post
	if err := result.Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode updated post: %w", err)
	}

	r.logger.Info(ctx, "post updated", "id", post.ID.Hex())
	return updated.Normalize(), nil
}

// Delete deletes a post by ID.
func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.logger.Info(ctx, "post deleted", "id", id.Hex())
	return nil
}

func (r *postRepository) AddComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	return r.update(ctx, postID, bson.M{"$addToSet": bson.M{"comments": commentID}})
}

func (r *postRepository) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	return r.update(ctx, postID, bson.M{"$pull": bson.M{"comments": commentID}})
}

func (r *postRepository) update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
