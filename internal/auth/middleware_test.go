package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/domain"
)

// mockResolver resolves tokens from a fixed map.
type mockResolver struct {
	users map[string]*domain.User
	err   error
}

func (m *mockResolver) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if user, ok := m.users[token]; ok {
		return user, nil
	}
	return nil, ErrUnknownToken
}

func TestMiddleware(t *testing.T) {
	alice := &domain.User{ID: 1, Username: "alice", AccessToken: "token-alice"}

	tests := []struct {
		name        string
		header      string
		resolver    *mockResolver
		wantStatus  int
		wantHandler bool
	}{
		{
			name:        "valid token",
			header:      "token-alice",
			resolver:    &mockResolver{users: map[string]*domain.User{"token-alice": alice}},
			wantStatus:  http.StatusOK,
			wantHandler: true,
		},
		{
			name:        "missing header",
			header:      "",
			resolver:    &mockResolver{users: map[string]*domain.User{"token-alice": alice}},
			wantStatus:  http.StatusUnauthorized,
			wantHandler: false,
		},
		{
			name:        "unknown token",
			header:      "nope",
			resolver:    &mockResolver{users: map[string]*domain.User{"token-alice": alice}},
			wantStatus:  http.StatusUnauthorized,
			wantHandler: false,
		},
		{
			name:        "store unavailable looks like unknown token",
			header:      "token-alice",
			resolver:    &mockResolver{err: ErrBackendUnavailable},
			wantStatus:  http.StatusUnauthorized,
			wantHandler: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerRan := false
			var seenUser *domain.User

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerRan = true
				seenUser, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			mw := Middleware(tt.resolver, zerolog.Nop())

			req := httptest.NewRequest(http.MethodGet, "/plants", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if handlerRan != tt.wantHandler {
				t.Errorf("expected handlerRan=%v, got %v", tt.wantHandler, handlerRan)
			}
			if tt.wantHandler {
				if seenUser == nil || seenUser.ID != alice.ID {
					t.Errorf("expected resolved user %d in context, got %+v", alice.ID, seenUser)
				}
			}
			if !tt.wantHandler {
				if !strings.Contains(rec.Body.String(), `"success":false`) {
					t.Errorf("expected rejection envelope, got %q", rec.Body.String())
				}
			}
		})
	}
}

func TestUserFromContext_Absent(t *testing.T) {
	if _, ok := UserFromContext(context.Background()); ok {
		t.Error("expected no user in an empty context")
	}
}
