package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
	"github.com/solemart/solemart/internal/domain/repository"
	pkgAuth "github.com/solemart/solemart/internal/pkg/auth"
)

const minPasswordLength = 6

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new user account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, password, firstName, lastName string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	ve := &domainErrors.ValidationError{}
	if !ValidateEmail(email) {
		ve.Add("email", "must be a valid email address")
	}
	if len(password) < minPasswordLength {
		ve.Add("password", "must be at least 6 characters")
	}
	if strings.TrimSpace(firstName) == "" {
		ve.Add("firstName", "is required")
	}
	if strings.TrimSpace(lastName) == "" {
		ve.Add("lastName", "is required")
	}
	if ve.HasErrors() {
		return nil, "", ve
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         model.RoleUser,
		IsActive:     true,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Role: string(usr.Role)})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !usr.IsActive {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Role: string(usr.Role)})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts identity claims from the provided token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Claims, error) {
	if token == "" {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// ListUsers returns a page of registered users for back-office views.
func (u *AuthUseCase) ListUsers(ctx context.Context, page, limit int) ([]model.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return u.users.List(ctx, page, limit)
}
