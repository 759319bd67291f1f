package service

import (
	"context"
	"errors"

	"github.com/ncobase/qeonaru/crypto"
	"github.com/ncobase/qeonaru/data"
	"github.com/ncobase/qeonaru/data/repository"
	"github.com/ncobase/qeonaru/ecode"
	"github.com/ncobase/qeonaru/logging/logger"
	"github.com/ncobase/qeonaru/security/jwt"
	"github.com/ncobase/qeonaru/structs"
)

// AuthService handles credentials and session tokens.
type AuthService struct {
	data       *data.Data
	tokens     *jwt.TokenManager
	bcryptCost int
	logger     *logger.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(d *data.Data, tokens *jwt.TokenManager, bcryptCost int, logger *logger.Logger) *AuthService {
	return &AuthService{
		data:       d,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Session is the result of a successful login.
type Session struct {
	Token    string
	Username string
	Email    string
}

// Login verifies the credentials and issues a session token.
// Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, body *structs.LoginBody) (*Session, error) {
	user, err := s.data.Users.FindByEmail(ctx, body.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ecode.AuthError(MsgInvalidCredentials)
		}
		return nil, internal(err)
	}

	if !crypto.ComparePassword(user.Password, body.Password) {
		return nil, ecode.AuthError(MsgInvalidCredentials)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, internal(err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID.Hex())
	return &Session{Token: token, Username: user.Username, Email: user.Email}, nil
}

// Register creates a new non-admin user.
func (s *AuthService) Register(ctx context.Context, body *structs.RegisterBody) (*structs.User, error) {
	if _, err := s.data.Users.FindByEmail(ctx, body.Email); err == nil {
		return nil, ecode.ConflictError(MsgEmailInUse)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, internal(err)
	}

	hash, err := crypto.HashPassword(ctx, body.Password, s.bcryptCost)
	if err != nil {
		return nil, internal(err)
	}

	user, err := s.data.Users.Create(ctx, &structs.User{
		Username: body.Username,
		Email:    body.Email,
		Password: hash,
		Bio:      body.Bio,
		IsAdmin:  false,
	})
	if err != nil {
		// A concurrent registration won the unique index.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ecode.ConflictError(MsgEmailInUse)
		}
		return nil, internal(err)
	}
	return user, nil
}

// Authenticate verifies a session token and loads the acting user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*structs.User, error) {
	claims, err := s.tokens.DecodeToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrNeedSigningKey) {
			return nil, internal(err)
		}
		return nil, ecode.AuthError(MsgInvalidToken)
	}

	user, err := s.data.Users.FindByID(ctx, claims.ID)
	if err != nil {
		return nil, notFound(err, MsgUserNotFound)
	}
	return user, nil
}

// TokenManager returns the manager used to sign session tokens.
func (s *AuthService) TokenManager() *jwt.TokenManager {
	return s.tokens
}
