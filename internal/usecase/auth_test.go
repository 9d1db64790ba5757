package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/solemart/solemart/internal/domain/errors"
	"github.com/solemart/solemart/internal/domain/model"
	pkgAuth "github.com/solemart/solemart/internal/pkg/auth"
	testhelpers "github.com/solemart/solemart/internal/test"
)

func newAuthFixture() (*AuthUseCase, *testhelpers.UserRepositoryStub) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{
		IssueFn: func(claims pkgAuth.Claims) (string, error) {
			return "token-for-user", nil
		},
	})
	return uc, users
}

func TestRegisterSuccess(t *testing.T) {
	uc, users := newAuthFixture()

	user, token, err := uc.Register(context.Background(), "Ann@Example.com", "secret1", "Ann", "Lee")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token != "token-for-user" {
		t.Fatalf("unexpected token %q", token)
	}
	if user.Email != "ann@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != model.RoleUser || !user.IsActive {
		t.Fatalf("expected active customer account, got %+v", user)
	}
	if stored := users.ByEmail["ann@example.com"]; stored == nil || stored.PasswordHash != "hash:secret1" {
		t.Fatalf("expected hashed password stored")
	}
}

func TestRegisterValidation(t *testing.T) {
	uc, _ := newAuthFixture()

	tests := []struct {
		name      string
		email     string
		password  string
		firstName string
		lastName  string
	}{
		{"bad email", "not-an-email", "secret1", "Ann", "Lee"},
		{"short password", "ann@example.com", "12345", "Ann", "Lee"},
		{"missing first name", "ann@example.com", "secret1", "", "Lee"},
		{"missing last name", "ann@example.com", "secret1", "Ann", " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := uc.Register(context.Background(), tt.email, tt.password, tt.firstName, tt.lastName)
			if _, ok := domainErrors.AsValidation(err); !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newAuthFixture()
	if _, _, err := uc.Register(context.Background(), "ann@example.com", "secret1", "Ann", "Lee"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := uc.Register(context.Background(), "ann@example.com", "secret2", "Ann", "Lee")
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	uc, users := newAuthFixture()
	if _, _, err := uc.Register(context.Background(), "ann@example.com", "secret1", "Ann", "Lee"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, token, err := uc.Authenticate(context.Background(), "ANN@example.com", "secret1"); err != nil || token == "" {
		t.Fatalf("authenticate: token %q err %v", token, err)
	}

	if _, _, err := uc.Authenticate(context.Background(), "ann@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "missing@example.com", "secret1"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	users.ByEmail["ann@example.com"].IsActive = false
	if _, _, err := uc.Authenticate(context.Background(), "ann@example.com", "secret1"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for deactivated user, got %v", err)
	}
}

func TestParseTokenEmpty(t *testing.T) {
	uc, _ := newAuthFixture()
	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseTokenCarriesRole(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{
		ParseFn: func(token string) (pkgAuth.Claims, error) {
			return pkgAuth.Claims{UserID: 9, Role: "admin"}, nil
		},
	})

	claims, err := uc.ParseToken("some-token")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 9 || claims.Role != "admin" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestListUsersNormalizesPaging(t *testing.T) {
	uc, _ := newAuthFixture()
	if _, _, err := uc.Register(context.Background(), "ann@example.com", "secret1", "Ann", "Lee"); err != nil {
		t.Fatalf("register: %v", err)
	}

	users, total, err := uc.ListUsers(context.Background(), 0, -5)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if total != 1 || len(users) != 1 {
		t.Fatalf("expected one user, got %d/%d", len(users), total)
	}
}
