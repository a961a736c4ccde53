package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/domain"
	"github.com/planta-io/planta/internal/pkg/crypto"
	"github.com/planta-io/planta/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	users      map[string]*domain.User
	nextID     int64
	createErr  error
	getErr     error
	tokenCalls int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[user.Username]; exists {
		return domain.ErrUserAlreadyExists
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, exists := m.users[username]; exists {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByAccessToken(ctx context.Context, token string) (*domain.User, error) {
	m.tokenCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.AccessToken == token {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	_, exists := m.users[username]
	return exists, nil
}

func (m *MockUserRepository) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.User], error) {
	result := &repository.ListResult[domain.User]{
		Offset: opts.Offset,
		Limit:  opts.Limit,
		Total:  int64(len(m.users)),
	}
	for _, u := range m.users {
		result.Items = append(result.Items, u)
	}
	return result, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	for name, u := range m.users {
		if u.ID == id {
			delete(m.users, name)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// =============================================================================
// Tests
// =============================================================================

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     RegisterInput
		wantErr   error
		setupRepo func(*MockUserRepository)
	}{
		{
			name: "success",
			input: RegisterInput{
				Username: "ada",
				Email:    "ada@example.com",
				Password: "correct horse",
			},
			wantErr: nil,
		},
		{
			name: "free-form email accepted",
			input: RegisterInput{
				Username: "ada",
				Email:    "plant-lover",
				Password: "correct horse",
			},
			wantErr: nil,
		},
		{
			name: "missing username",
			input: RegisterInput{
				Username: "",
				Email:    "ab@example.com",
				Password: "correct horse",
			},
			wantErr: ErrUsernameRequired,
		},
		{
			name: "missing email",
			input: RegisterInput{
				Username: "ada",
				Email:    "",
				Password: "correct horse",
			},
			wantErr: ErrEmailRequired,
		},
		{
			name: "password too short",
			input: RegisterInput{
				Username: "ada",
				Email:    "ada@example.com",
				Password: "short",
			},
			wantErr: ErrInvalidPassword,
		},
		{
			name: "username taken",
			input: RegisterInput{
				Username: "taken",
				Email:    "taken@example.com",
				Password: "correct horse",
			},
			wantErr: ErrUserAlreadyExists,
			setupRepo: func(m *MockUserRepository) {
				m.users["taken"] = &domain.User{ID: 1, Username: "taken"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockUserRepository()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}

			svc := NewUserService(repo, zerolog.Nop())

			output, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			user := output.User
			if user.ID == 0 {
				t.Error("expected user ID to be assigned")
			}
			if user.Username != tt.input.Username {
				t.Errorf("expected username %s, got %s", tt.input.Username, user.Username)
			}
			if user.PasswordHash == tt.input.Password {
				t.Error("password stored in plaintext")
			}
			if len(user.AccessToken) != crypto.AccessTokenLength {
				t.Errorf("expected access token of length %d, got %d", crypto.AccessTokenLength, len(user.AccessToken))
			}
		})
	}
}

func TestUserService_Register_TokenIsStable(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo, zerolog.Nop())

	output, err := svc.Register(context.Background(), RegisterInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Logging in again must hand back the same token issued at
	// registration, not a fresh one.
	user, err := svc.Login(context.Background(), "ada", "correct horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.AccessToken != output.User.AccessToken {
		t.Error("expected the registration token to survive login")
	}
}

func TestUserService_Login(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.Register(context.Background(), RegisterInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "success", username: "ada", password: "correct horse"},
		{name: "unknown username", username: "ghost", password: "correct horse", wantErr: ErrInvalidCredentials},
		{name: "wrong password", username: "ada", password: "wrong horse", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Username != tt.username {
				t.Errorf("expected username %s, got %s", tt.username, user.Username)
			}
			if user.AccessToken == "" {
				t.Error("expected access token on login")
			}
		})
	}
}
