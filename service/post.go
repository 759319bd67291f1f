package service

import (
	"context"
	"errors"

	"github.com/gosimple/slug"
	"github.com/ncobase/qeonaru/data"
	"github.com/ncobase/qeonaru/data/repository"
	"github.com/ncobase/qeonaru/ecode"
	"github.com/ncobase/qeonaru/logging/logger"
	"github.com/ncobase/qeonaru/structs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService handles post-related business logic.
type PostService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewPostService creates a new post service.
func NewPostService(d *data.Data, logger *logger.Logger) *PostService {
	return &PostService{
		data:   d,
		logger: logger,
	}
}

// CreatePost creates a post owned by actor and records it on the actor.
func (s *PostService) CreatePost(ctx context.Context, actor *structs.User, body *structs.PostBody) (*structs.Post, error) {
	post, err := s.data.Posts.Create(ctx, &structs.Post{
		UserID:   actor.ID,
		Title:    body.Title,
		Slug:     slug.Make(body.Title),
		Category: body.Category,
		Content:  body.Content.Normalize(),
	})
	if err != nil {
		return nil, internal(err)
	}

	if err := s.data.Users.AddPost(ctx, actor.ID, post.ID); err != nil {
		return nil, internal(err)
	}
	return post, nil
}

// UpdatePost overwrites the editable fields of a post owned by actor.
func (s *PostService) UpdatePost(ctx context.Context, actor *structs.User, postID string, body *structs.PostBody) (*structs.Post, error) {
	post, err := s.ownedPost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	post.Title = body.Title
	post.Slug = slug.Make(body.Title)
	post.Category = body.Category
	post.Content = body.Content.Normalize()

	updated, err := s.data.Posts.Update(ctx, post)
	if err != nil {
		return nil, notFound(err, MsgPostNotFound)
	}
	return updated, nil
}

// DeletePost deletes a post owned by actor together with its comments.
//
// Comments go first and are pruned from their authors, then the post is
// removed from its owner and deleted. The steps are not atomic.
func (s *PostService) DeletePost(ctx context.Context, actor *structs.User, postID string) error {
	post, err := s.ownedPost(ctx, actor, postID)
	if err != nil {
		return err
	}

	comments, err := s.data.Comments.FindByPost(ctx, post.ID)
	if err != nil {
		return internal(err)
	}
	ids := make([]primitive.ObjectID, 0, len(comments)+len(post.Comments))
	ids = append(ids, post.Comments...)
	for _, c := range comments {
		ids = append(ids, c.ID)
	}

	deleted, err := s.data.Comments.DeleteByPost(ctx, post.ID)
	if err != nil {
		return internal(err)
	}
	if err := s.data.Users.RemoveComments(ctx, ids); err != nil {
		return internal(err)
	}
	if err := ignoreNotFound(s.data.Users.RemovePost(ctx, post.UserID, post.ID)); err != nil {
		return internal(err)
	}
	if err := s.data.Posts.Delete(ctx, post.ID); err != nil {
		return notFound(err, MsgPostNotFound)
	}

	s.logger.Info(ctx, "post deleted with comments", "post_id", post.ID.Hex(), "comments", deleted)
	return nil
}

// GetPost retrieves a post with owner and comments expanded.
func (s *PostService) GetPost(ctx context.Context, postID string) (*structs.PostView, error) {
	post, err := s.data.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, MsgPostNotFound)
	}
	views, err := populate(ctx, s.data, []*structs.Post{post})
	if err != nil {
		return nil, internal(err)
	}
	return views[0], nil
}

// SearchPosts lists posts whose title or category contains query, ignoring
// case, newest first and expanded like GetPost.
func (s *PostService) SearchPosts(ctx context.Context, query string) ([]*structs.PostView, error) {
	posts, err := s.data.Posts.Search(ctx, query)
	if err != nil {
		return nil, internal(err)
	}
	views, err := populate(ctx, s.data, posts)
	if err != nil {
		return nil, internal(err)
	}
	return views, nil
}

// ownedPost loads a post and requires actor to own it.
func (s *PostService) ownedPost(ctx context.Context, actor *structs.User, postID string) (*structs.Post, error) {
	post, err := s.data.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, MsgPostNotFound)
	}
	if post.UserID != actor.ID {
		return nil, ecode.AccessDeniedError(MsgAccessDenied)
	}
	return post, nil
}

// isNotFound reports whether err is the repository's not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
