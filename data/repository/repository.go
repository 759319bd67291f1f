// Package repository persists users, posts and comments.
//
// Two implementations share the interfaces below: a MongoDB one
// (NewUserRepository, NewPostRepository, NewCommentRepository) and an
// in-process MemoryStore. Both report missing documents with ErrNotFound
// and unique-key violations with ErrDuplicate; malformed ids are reported
// as ErrNotFound.
package repository

import (
	"context"
	"errors"

	"github.com/ncobase/qeonaru/structs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)

// Collection names.
const (
	UsersCollection    = "users"
	PostsCollection    = "posts"
	CommentsCollection = "comments"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *structs.User) (*structs.User, error)
	FindByID(ctx context.Context, id string) (*structs.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*structs.User, error)
	FindByEmail(ctx context.Context, email string) (*structs.User, error)
	List(ctx context.Context) ([]*structs.User, error)
	AddPost(ctx context.Context, userID, postID primitive.ObjectID) error
	RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error
	AddComment(ctx context.Context, userID, commentID primitive.ObjectID) error
	RemoveComment(ctx context.Context, userID, commentID primitive.ObjectID) error
	// RemoveComments prunes the given comment ids from every user.
	RemoveComments(ctx context.Context, commentIDs []primitive.ObjectID) error
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *structs.Post) (*structs.Post, error)
	FindByID(ctx context.Context, id string) (*structs.Post, error)
	// Search matches query as a case-insensitive literal substring of the
	// title or category, newest first. An empty query matches every post.
	Search(ctx context.Context, query string) ([]*structs.Post, error)
	// Update overwrites the editable fields and the update time.
	Update(ctx context.Context, post *structs.Post) (*structs.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddComment(ctx context.Context, postID, commentID primitive.ObjectID) error
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error
}

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *structs.Comment) (*structs.Comment, error)
	FindByID(ctx context.Context, id string) (*structs.Comment, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*structs.Comment, error)
	FindByPost(ctx context.Context, postID primitive.ObjectID) ([]*structs.Comment, error)
	// Delete removes one comment. ErrNotFound means nothing was deleted.
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error)
}

// parseID converts a hex id, reporting malformed ids as ErrNotFound.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}
