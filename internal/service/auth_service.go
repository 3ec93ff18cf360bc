package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/request"
	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/logger"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
	"github.com/Rahul-Chotaliya/tradehub/internal/repository"
	"github.com/Rahul-Chotaliya/tradehub/internal/validation"
)

// AuthService manages users and the fernet tokens that authenticate them.
// A token's plaintext is the user id; the fernet timestamp bounds its lifetime.
type AuthService struct {
	userRepo *repository.UserRepository
	key      *fernet.Key
	ttl      time.Duration
	hashCost int
}

// NewAuthService creates a new AuthService signing tokens with key that are valid for ttl.
func NewAuthService(userRepo *repository.UserRepository, key *fernet.Key, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		key:      key,
		ttl:      ttl,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost returns a copy of the service hashing new passwords at the given bcrypt cost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	c := *s
	c.hashCost = cost
	return &c
}

// LoadKey decodes a base64 fernet key. An empty secret produces a fresh random key and
// generated is set, in which case issued tokens stop working on restart.
func LoadKey(secret string) (key *fernet.Key, generated bool, err error) {
	if secret == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, false, fmt.Errorf("failed to generate auth key: %w", err)
		}
		return key, true, nil
	}

	key, err = fernet.DecodeKey(secret)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode AUTH_SECRET: %w", err)
	}
	return key, false, nil
}

// CreateUser registers a user with a bcrypt-hashed password.
// Returns ErrDuplicateUsername if the username is taken.
func (s *AuthService) CreateUser(ctx context.Context, req request.CreateUserRequest) (*model.User, error) {
	if err := validation.ValidateCreateUser(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user created")
	return user, nil
}

// IssueToken checks the credentials and returns a new token for the user.
// Unknown usernames and wrong passwords both fail with ErrInvalidCredentials.
func (s *AuthService) IssueToken(ctx context.Context, req request.LoginRequest) (model.Token, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return model.Token{}, apperrors.ErrInvalidCredentials
		}
		return model.Token{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.Token{}, apperrors.ErrInvalidCredentials
	}

	tok, err := fernet.EncryptAndSign([]byte(user.ID), s.key)
	if err != nil {
		return model.Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return model.Token{Token: string(tok)}, nil
}

// ResolveToken verifies a token and returns the user it was issued to.
// Tampered, expired and orphaned tokens fail with ErrInvalidToken.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (model.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.User{}, apperrors.ErrMissingToken
	}

	msg := fernet.VerifyAndDecrypt([]byte(token), s.ttl, []*fernet.Key{s.key})
	if msg == nil {
		return model.User{}, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByID(ctx, string(msg))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return model.User{}, apperrors.ErrInvalidToken
		}
		return model.User{}, err
	}

	return user, nil
}
