package service

import (
	"context"

	"github.com/ncobase/qeonaru/data"
	"github.com/ncobase/qeonaru/ecode"
	"github.com/ncobase/qeonaru/logging/logger"
	"github.com/ncobase/qeonaru/structs"
)

// CommentService handles comment-related business logic.
type CommentService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(d *data.Data, logger *logger.Logger) *CommentService {
	return &CommentService{
		data:   d,
		logger: logger,
	}
}

// CreateComment adds a comment by actor to a post and records it on both.
func (s *CommentService) CreateComment(ctx context.Context, actor *structs.User, postID, content string) (*structs.Comment, error) {
	post, err := s.data.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, MsgPostNotFound)
	}

	comment, err := s.data.Comments.Create(ctx, &structs.Comment{
		UserID:  actor.ID,
		PostID:  post.ID,
		Content: content,
	})
	if err != nil {
		return nil, internal(err)
	}

	if err := s.data.Posts.AddComment(ctx, post.ID, comment.ID); err != nil {
		if isNotFound(err) {
			// The post was deleted meanwhile.
			if derr := s.data.Comments.Delete(ctx, comment.ID); derr != nil && !isNotFound(derr) {
				s.logger.Error(ctx, "failed to remove orphaned comment", "comment_id", comment.ID.Hex(), "error", derr)
			}
			return nil, ecode.NotFoundError(MsgPostNotFound)
		}
		return nil, internal(err)
	}
	if err := s.data.Users.AddComment(ctx, actor.ID, comment.ID); err != nil {
		return nil, internal(err)
	}
	return comment, nil
}

// DeleteComment deletes a comment of postID written by actor.
//
// The comment document is deleted before the reference lists are pruned so
// that of two concurrent deletes exactly one succeeds.
func (s *CommentService) DeleteComment(ctx context.Context, actor *structs.User, postID, commentID string) error {
	comment, err := s.data.Comments.FindByID(ctx, commentID)
	if err != nil {
		return notFound(err, MsgCommentNotFound)
	}
	if comment.PostID.Hex() != postID {
		return ecode.NotFoundError(MsgCommentNotFound)
	}
	if comment.UserID != actor.ID {
		return ecode.AccessDeniedError(MsgAccessDenied)
	}

	if err := s.data.Comments.Delete(ctx, comment.ID); err != nil {
		return notFound(err, MsgCommentNotFound)
	}
	if err := ignoreNotFound(s.data.Posts.RemoveComment(ctx, comment.PostID, comment.ID)); err != nil {
		return internal(err)
	}
	if err := ignoreNotFound(s.data.Users.RemoveComment(ctx, comment.UserID, comment.ID)); err != nil {
		return internal(err)
	}
	return nil
}
