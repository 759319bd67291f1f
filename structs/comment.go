package structs

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a plain-text reply to a post.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Clone returns a copy of the comment.
func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}

// CommentView is a comment with its author expanded.
type CommentView struct {
	ID        primitive.ObjectID `json:"id"`
	User      *User              `json:"userId"`
	PostID    primitive.ObjectID `json:"postId"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"createdAt"`
}

// NewCommentView expands c with its author.
func NewCommentView(c *Comment, author *User) *CommentView {
	return &CommentView{
		ID:        c.ID,
		User:      author,
		PostID:    c.PostID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
