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

type userRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository creates a new MongoDB user repository.
func NewUserRepository(ctx context.Context, db *mongo.Database, logger *logger.Logger) UserRepository {
	collection := db.Collection(UsersCollection)

	// Create unique index on email
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn(ctx, "failed to create index on email", "error", err)
	}

	return &userRepository{
		collection: collection,
		logger:     logger,
	}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *structs.User) (*structs.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.Normalize()

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info(ctx, "user created", "id", user.ID.Hex())
	return user, nil
}

// FindByID retrieves a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id string) (*structs.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByEmail retrieves a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*structs.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*structs.User, error) {
	var user structs.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user.Normalize(), nil
}

// FindByIDs retrieves the users with the given ids, in no particular order.
func (r *userRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*structs.User, error) {
	if len(ids) == 0 {
		return []*structs.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// List retrieves every user in registration order.
func (r *userRepository) List(ctx context.Context) ([]*structs.User, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *userRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*structs.User, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []*structs.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	for _, u := range users {
		u.Normalize()
	}
	return users, nil
}

func (r *userRepository) AddPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.update(ctx, userID, bson.M{"$addToSet": bson.M{"posts": postID}})
}

func (r *userRepository) RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.update(ctx, userID, bson.M{"$pull": bson.M{"posts": postID}})
}

func (r *userRepository) AddComment(ctx context.Context, userID, commentID primitive.ObjectID) error {
	return r.update(ctx, userID, bson.M{"$addToSet": bson.M{"comments": commentID}})
}

func (r *userRepository) RemoveComment(ctx context.Context, userID, commentID primitive.ObjectID) error {
	return r.update(ctx, userID, bson.M{"$pull": bson.M{"comments": commentID}})
}

// RemoveComments prunes the given comment ids from every user.
func (r *userRepository) RemoveComments(ctx context.Context, commentIDs []primitive.ObjectID) error {
	if len(commentIDs) == 0 {
		return nil
	}
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"comments": bson.M{"$in": commentIDs}},
		bson.M{"$pull": bson.M{"comments": bson.M{"$in": commentIDs}}},
	)
	if err != nil {
		return fmt.Errorf("failed to prune user comments: %w", err)
	}
	return nil
}

func (r *userRepository) update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
