package structs

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a formatted article owned by one user.
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"userId" json:"userId"`
	Title     string               `bson:"title" json:"title"`
	Slug      string               `bson:"slug,omitempty" json:"slug,omitempty"`
	Category  string               `bson:"category" json:"category"`
	Content   Content              `bson:"content" json:"content"`
	Comments  []primitive.ObjectID `bson:"comments" json:"comments"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// Normalize replaces nil lists with empty ones.
func (p *Post) Normalize() *Post {
	if p.Comments == nil {
		p.Comments = []primitive.ObjectID{}
	}
	if p.Content == nil {
		p.Content = Content{}
	}
	return p
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Content = p.Content.Clone()
	c.Comments = append([]primitive.ObjectID{}, p.Comments...)
	return &c
}

// PostView is a post with its owner and comments expanded.
type PostView struct {
	ID        primitive.ObjectID `json:"id"`
	User      *User              `json:"userId"`
	Title     string             `json:"title"`
	Slug      string             `json:"slug,omitempty"`
	Category  string             `json:"category"`
	Content   Content            `json:"content"`
	Comments  []*CommentView     `json:"comments"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewPostView expands p with its owner and comments.
func NewPostView(p *Post, owner *User, comments []*CommentView) *PostView {
	if comments == nil {
		comments = []*CommentView{}
	}
	content := p.Content
	if content == nil {
		content = Content{}
	}
	return &PostView{
		ID:        p.ID,
		User:      owner,
		Title:     p.Title,
		Slug:      p.Slug,
		Category:  p.Category,
		Content:   content,
		Comments:  comments,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
