// Package service contains the business rules of the forum: credentials,
// ownership checks, reference-list maintenance and population of nested
// documents.
//
// Every method returns either a value or an *ecode.Error; anything else
// reaching a caller is an unexpected fault.
package service

import (
	"errors"

	"github.com/ncobase/qeonaru/config"
	"github.com/ncobase/qeonaru/data"
	"github.com/ncobase/qeonaru/data/repository"
	"github.com/ncobase/qeonaru/ecode"
	"github.com/ncobase/qeonaru/logging/logger"
	"github.com/ncobase/qeonaru/security/jwt"
)

// Client-visible failure messages.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmailInUse         = "Email is already in use"
	MsgInvalidToken       = "Invalid or expired token"
	MsgAccessDenied       = "Access denied"
	MsgUserNotFound       = "User not found"
	MsgPostNotFound       = "Post not found"
	MsgCommentNotFound    = "Comment not found"
)

// Service aggregates all business logic services.
type Service struct {
	Auth    *AuthService
	User    *UserService
	Post    *PostService
	Comment *CommentService
}

// NewService creates a new service instance with all sub-services initialized.
func NewService(d *data.Data, auth *config.Auth, logger *logger.Logger) *Service {
	tm := jwt.NewTokenManager(auth.JWT.Secret, auth.JWT.Expire)
	return &Service{
		Auth:    NewAuthService(d, tm, auth.BcryptCost, logger),
		User:    NewUserService(d),
		Post:    NewPostService(d, logger),
		Comment: NewCommentService(d, logger),
	}
}

// notFound maps repository.ErrNotFound to a 404 carrying message and wraps
// any other failure as an internal error.
func notFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ecode.NotFoundError(message)
	}
	return internal(err)
}

func internal(err error) error {
	if _, ok := ecode.FromError(err); ok {
		return err
	}
	return ecode.InternalError("", err)
}

// ignoreNotFound drops ErrNotFound from list maintenance on documents that
// may already be gone.
func ignoreNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}
